// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package rendertree builds one {root, elements} document from
// render-tree protocol payloads: a full snapshot, an element map, or
// an ordered list of JSON-Pointer-style patches.
//
// The typical flow:
//
//  1. payload.Parse: raw text → parsed objects
//  2. [Builder.Build]: classify and fold the objects into the
//     carried {root, elements} state
//  3. render the returned document
//
// Classification is an explicit step (see [Classify]) with a fixed
// priority order, so "wrapper vs. tree vs. element" ambiguity is
// policy, never an error. After every build a pre-order indexing pass
// assigns deterministic "node-N" keys to unkeyed nodes and hoists
// inline child objects into the element map, guaranteeing key lookups
// succeed for every node reachable from the root.
//
// A Builder retains its joint state across calls so that patch-only
// payloads mutate the previously built tree. Use the package-level
// [Build] for stateless one-shot parsing.
package rendertree

import (
	"encoding/json"

	"github.com/cklxx/canvas/lib/schema"
)

// Class is the payload classification decided by [Classify].
type Class int

const (
	// ClassEmpty is anything that fits no other class; it yields an
	// empty tree.
	ClassEmpty Class = iota
	// ClassWrapperEnvelope is an object carrying a "messages" array
	// (the host chat envelope); its entries form an element array.
	ClassWrapperEnvelope
	// ClassTreeDocument is an object carrying "root" and/or
	// "elements" — the native tree shape.
	ClassTreeDocument
	// ClassSingleElement is a lone element-shaped object, used as
	// the root.
	ClassSingleElement
)

// Classify decides how a single payload object is interpreted, in
// fixed priority order: wrapper envelope, then tree document, then
// single element, then empty.
func Classify(object map[string]any) Class {
	if _, ok := object["messages"].([]any); ok {
		return ClassWrapperEnvelope
	}
	if _, ok := object["root"]; ok {
		return ClassTreeDocument
	}
	if _, ok := object["elements"]; ok {
		return ClassTreeDocument
	}
	if schema.IsElementShaped(object) {
		return ClassSingleElement
	}
	return ClassEmpty
}

// Builder folds render-tree payloads into a carried {root, elements}
// state. The zero value is ready to use.
type Builder struct {
	// joint is the raw {root, elements} state patches apply against.
	// Kept as plain JSON values so pointer paths address it directly;
	// the typed document is rebuilt from it after every change.
	joint map[string]any
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build folds one batch of parsed payload objects into the carried
// state and returns the resulting document.
//
// Objects with string "op" and "path" fields are patches; everything
// else is a document. When a batch carries documents, they replace
// the carried state first (one document is classified individually;
// several form an element array under a synthesized Column root);
// patches then apply cumulatively, in arrival order, against the
// result. Objects that fail to decode are skipped.
func (b *Builder) Build(messages []json.RawMessage) *schema.Document {
	var (
		documents []map[string]any
		patches   []schema.Patch
	)
	for _, raw := range messages {
		var object map[string]any
		if err := json.Unmarshal(raw, &object); err != nil {
			continue
		}
		if patch, ok := schema.DecodePatch(object); ok {
			patches = append(patches, patch)
			continue
		}
		documents = append(documents, object)
	}

	if len(documents) > 0 {
		b.joint = assemble(documents)
	}
	for _, patch := range patches {
		b.joint = applyPatch(b.joint, patch)
	}
	// Index the raw state too, so hoisted nodes are addressable by
	// their assigned keys in later patch-only batches.
	hoist(b.joint)

	return b.Document()
}

// Document normalizes the carried state into a typed, fully indexed
// document. Safe to call at any time; an untouched builder yields an
// empty document.
func (b *Builder) Document() *schema.Document {
	return normalize(b.joint)
}

// Build is the stateless form: it interprets messages as one complete
// payload with no carried-over state.
func Build(messages []json.RawMessage) *schema.Document {
	return NewBuilder().Build(messages)
}

// assemble converts a batch of non-patch documents into a joint
// {root, elements} value.
func assemble(documents []map[string]any) map[string]any {
	if len(documents) > 1 {
		// Several standalone documents in one payload: an element
		// array. Synthesize a Column root holding them in order.
		children := make([]any, len(documents))
		for index, document := range documents {
			children[index] = any(document)
		}
		return map[string]any{
			"root": map[string]any{"type": "Column", "children": children},
		}
	}

	document := documents[0]
	switch Classify(document) {
	case ClassWrapperEnvelope:
		entries := document["messages"].([]any)
		return map[string]any{
			"root": map[string]any{"type": "Column", "children": entries},
		}
	case ClassTreeDocument:
		joint := map[string]any{}
		if root, ok := document["root"]; ok {
			joint["root"] = root
		}
		if elements, ok := document["elements"]; ok {
			joint["elements"] = elements
		}
		return joint
	case ClassSingleElement:
		return map[string]any{"root": document}
	default:
		return map[string]any{}
	}
}

// Marshal serializes a normalized document back to the wire tree
// shape: {"root": "<root key>", "elements": {...}}. Re-parsing the
// result through Build reproduces an equal document.
func Marshal(document *schema.Document) ([]byte, error) {
	wire := map[string]any{}
	if document != nil {
		if document.Root != nil {
			wire["root"] = document.Root.Key
		} else if document.RootKey != "" {
			wire["root"] = document.RootKey
		}
		if len(document.Elements) > 0 {
			wire["elements"] = document.Elements
		}
	}
	return json.Marshal(wire)
}
