// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package rendertree

import (
	"strconv"

	"github.com/cklxx/canvas/lib/schema"
)

// normalize converts a joint {root, elements} value into a typed
// document and runs the indexing pass over everything reachable from
// the root.
func normalize(joint map[string]any) *schema.Document {
	document := &schema.Document{Elements: make(map[string]*schema.Element)}
	if len(joint) == 0 {
		return document
	}

	if elements, ok := joint["elements"].(map[string]any); ok {
		for key, value := range elements {
			element := schema.DecodeElement(value, key)
			// The map key is authoritative even when the element
			// carries its own (possibly conflicting) key.
			element.Key = key
			document.Elements[key] = element
		}
	}

	switch root := joint["root"].(type) {
	case string:
		document.RootKey = root
		if element, ok := document.Elements[root]; ok {
			document.Root = element
		}
	case nil:
	default:
		element := schema.DecodeElement(root, "")
		document.Root = element
	}

	index(document)
	return document
}

// index walks the tree from the root in pre-order, assigning
// deterministic keys to unkeyed nodes and hoisting inline child
// objects into the element map. After indexing, every reachable
// node's children are strings: element keys, or literal text for
// strings that name no element.
func index(document *schema.Document) {
	if document.Root == nil {
		return
	}
	visitor := &indexer{document: document, visited: make(map[*schema.Element]bool)}
	visitor.visit(document.Root)
}

// indexer threads the key counter through an explicit pre-order
// traversal. Traversal order alone determines assigned keys, so an
// unchanged tree shape re-indexes to identical keys.
type indexer struct {
	document *schema.Document
	counter  int
	visited  map[*schema.Element]bool
}

func (ix *indexer) visit(element *schema.Element) {
	if ix.visited[element] {
		return
	}
	ix.visited[element] = true

	if element.Key == "" {
		element.Key = ix.nextKey()
	}
	if _, ok := ix.document.Elements[element.Key]; !ok {
		ix.document.Elements[element.Key] = element
	}

	for position, child := range element.Children {
		switch typed := child.(type) {
		case string:
			// A key reference into the element map; descend so the
			// referenced subtree gets indexed too. Strings that name
			// no element are literal text and stay as they are.
			if referenced, ok := ix.document.Elements[typed]; ok {
				ix.visit(referenced)
			}
		default:
			inline := schema.DecodeElement(typed, "")
			ix.visit(inline)
			element.Children[position] = inline.Key
		}
	}
}

// nextKey returns the next free "node-N" key. Skipping occupied keys
// keeps assignment collision-free when a producer mixes explicit
// "node-N" keys with unkeyed elements.
func (ix *indexer) nextKey() string {
	for {
		key := "node-" + strconv.Itoa(ix.counter)
		ix.counter++
		if _, taken := ix.document.Elements[key]; !taken {
			return key
		}
	}
}

// hoist rewrites the joint state in place after a build step: every
// inline child object reachable from the root moves into
// joint["elements"] under an explicit key, with its array slot
// replaced by that key. Unkeyed objects get the same deterministic
// pre-order "node-N" keys the typed indexer would assign, so later
// patch-only batches address hoisted nodes by the keys the rendered
// document shows. The root keeps its original shape (string reference
// or inline object), preserving the paths producers patch against.
// Hoisting is idempotent.
func hoist(joint map[string]any) {
	if len(joint) == 0 {
		return
	}
	elements, ok := joint["elements"].(map[string]any)
	if !ok {
		elements = map[string]any{}
	}
	h := &hoister{elements: elements, visited: make(map[string]bool)}

	switch root := joint["root"].(type) {
	case string:
		h.visitKey(root)
	case map[string]any:
		h.visited[h.ensureKey(root)] = true
		h.visitChildren(root)
	}

	if len(elements) > 0 {
		joint["elements"] = elements
	}
}

// hoister threads the key counter through the raw-map traversal, in
// the same pre-order as the typed indexer.
type hoister struct {
	elements map[string]any
	counter  int
	visited  map[string]bool
}

// visitKey follows a string reference into the element map. Strings
// naming no element are literal text and left alone.
func (h *hoister) visitKey(key string) {
	if h.visited[key] {
		return
	}
	h.visited[key] = true
	object, ok := h.elements[key].(map[string]any)
	if !ok {
		return
	}
	h.visitChildren(object)
}

// ensureKey returns the object's key, writing the next free "node-N"
// into it when it carries none.
func (h *hoister) ensureKey(object map[string]any) string {
	if key, ok := object["key"].(string); ok && key != "" {
		return key
	}
	if id, ok := object["id"].(string); ok && id != "" {
		return id
	}
	for {
		key := "node-" + strconv.Itoa(h.counter)
		h.counter++
		_, taken := h.elements[key]
		// The root stays inline, so its assigned key shows up in
		// visited rather than in the element map.
		if !taken && !h.visited[key] {
			object["key"] = key
			return key
		}
	}
}

// visitChildren moves inline child objects into the element map and
// replaces their slots with key references. Scalar children stay as
// they are; the renderer treats them as literal text.
func (h *hoister) visitChildren(object map[string]any) {
	children, ok := object["children"].([]any)
	if !ok {
		return
	}
	for position, child := range children {
		switch typed := child.(type) {
		case string:
			if _, ok := h.elements[typed]; ok {
				h.visitKey(typed)
			}
		case map[string]any:
			key := h.ensureKey(typed)
			h.visited[key] = true
			if _, exists := h.elements[key]; !exists {
				h.elements[key] = typed
			}
			h.visitChildren(typed)
			children[position] = key
		}
	}
}
