// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package binding resolves component property values against a
// surface's data model.
//
// A property value is either a plain literal or a bound-value object
// (see schema.DecodeBoundValue): a literal, a path reference, or a
// seed-then-read combination. Resolution is scoped: a [Resolver]
// carries the data model plus a base path, and template expansion
// derives child resolvers whose base path points at one collection
// entry, so per-item bindings like {"path": "name"} resolve against
// the right item.
//
// Resolution has no side effects beyond the documented seed write of
// [schema.BoundSeedThenRead].
package binding

import "github.com/cklxx/canvas/lib/schema"

// Resolver resolves bound property values against a data model from
// a given base path. The zero value resolves literals only.
type Resolver struct {
	// Model is the surface's data model. Seed writes mutate it in
	// place.
	Model map[string]any

	// BasePath is the scope for relative path references. "/" for
	// the surface root.
	BasePath string
}

// Child returns a resolver scoped to one collection entry: the base
// path extends by "/" + entryKey. entryKey is an array index ("0",
// "1", ...) or an object key.
func (r Resolver) Child(entryKey string) Resolver {
	return Resolver{Model: r.Model, BasePath: JoinPath(r.BasePath, entryKey)}
}

// Resolve decodes raw as a bound value and resolves it. The boolean
// is false only when a path reference does not resolve; a literal nil
// resolves true.
func (r Resolver) Resolve(raw any) (any, bool) {
	return r.ResolveBound(schema.DecodeBoundValue(raw))
}

// ResolveBound resolves an already-decoded bound value.
//
// Literals return as-is. Path references resolve absolute (leading
// "/") or relative to BasePath and report false when absent. Seed-
// then-read writes the literal at the resolved path only if nothing
// is there yet, then reads the path back — so an existing model value
// wins over the literal.
func (r Resolver) ResolveBound(bound schema.BoundValue) (any, bool) {
	switch bound.Kind {
	case schema.BoundPath:
		return Get(r.Model, JoinPath(r.BasePath, bound.Path))
	case schema.BoundSeedThenRead:
		target := JoinPath(r.BasePath, bound.Path)
		if _, exists := Get(r.Model, target); !exists {
			Set(r.Model, target, bound.Literal)
		}
		return Get(r.Model, target)
	default:
		return bound.Literal, true
	}
}

// String resolves raw and coerces the result to a string. Non-string
// resolutions and unresolved paths report false.
func (r Resolver) String(raw any) (string, bool) {
	value, ok := r.Resolve(raw)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}
