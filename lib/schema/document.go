// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Document is the live, renderable model both protocol builders
// produce: a root element, an index of every reachable element by
// key, and the data model bindings resolve against. The render-tree
// protocol leaves DataModel and Styles nil.
type Document struct {
	// Root is the tree root. Nil means there is nothing to render
	// (an empty document, not an error).
	Root *Element

	// RootKey is the key the producer named as the root. When Root
	// is nil but RootKey is set, the named element does not exist
	// and renderers surface that as a fallback instead of an empty
	// page.
	RootKey string

	// Elements indexes every reachable element by key. After the
	// indexing pass this lookup succeeds for all of Root's
	// descendants.
	Elements map[string]*Element

	// DataModel is the surface's scoped data model. May be nil.
	DataModel map[string]any

	// Styles is the surface-level style block from beginRendering.
	// May be nil. Its interpretation belongs to the renderer backend.
	Styles map[string]any
}

// Lookup resolves an element by key. A nil document resolves nothing.
func (d *Document) Lookup(key string) (*Element, bool) {
	if d == nil || d.Elements == nil {
		return nil, false
	}
	element, ok := d.Elements[key]
	return element, ok
}
