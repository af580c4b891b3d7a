// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strconv"
)

// Element is one node of a widget tree: a type tag, a property map,
// and an ordered child list. Both protocols normalize into this shape.
//
// After normalization (lib/rendertree), Children holds only string
// keys; inline child objects are hoisted into the tree's element map
// under assigned keys. Before normalization, Children may also hold
// raw inline objects and literal text.
type Element struct {
	// Key uniquely identifies the element within its tree. Empty
	// until the indexing pass assigns a deterministic key.
	Key string `json:"key,omitempty"`

	// Type is the component type tag ("Text", "Column", ...). The
	// renderer dispatch table is keyed by it; unknown types still
	// parse and only fall back at render time.
	Type string `json:"type"`

	// Props holds the element's properties. Values may be plain
	// literals or bound-value objects (see [DecodeBoundValue]).
	Props map[string]any `json:"props,omitempty"`

	// Children is the ordered child list: element keys, inline
	// element objects, or literal text.
	Children []any `json:"children,omitempty"`

	// Weight is the flex sizing hint within the parent container.
	// Zero means equal sizing.
	Weight float64 `json:"weight,omitempty"`
}

// elementFields are the recognized top-level keys of an element
// object. Anything else folds into Props.
var elementFields = map[string]bool{
	"key": true, "id": true, "type": true, "props": true,
	"children": true, "weight": true,
}

// DecodeElement converts one JSON value into an Element.
//
// An object with a string "type" is element-shaped: key (or id),
// props, children, and weight map to their fields, and every other
// top-level key folds into Props. Any other value — a typeless
// object, a scalar, an array — becomes a synthetic Text element whose
// props.text is the value's string form, so stray content renders as
// text instead of vanishing.
//
// fallbackKey is applied only when the value carries no key of its
// own; pass "" to leave unkeyed elements for the indexing pass.
func DecodeElement(value any, fallbackKey string) *Element {
	object, ok := value.(map[string]any)
	if !ok {
		return syntheticText(value, fallbackKey)
	}
	elementType, ok := object["type"].(string)
	if !ok || elementType == "" {
		return syntheticText(value, fallbackKey)
	}

	element := &Element{Type: elementType}

	if key, ok := object["key"].(string); ok && key != "" {
		element.Key = key
	} else if id, ok := object["id"].(string); ok && id != "" {
		element.Key = id
	} else {
		element.Key = fallbackKey
	}

	if props, ok := object["props"].(map[string]any); ok {
		element.Props = make(map[string]any, len(props))
		for name, propValue := range props {
			element.Props[name] = propValue
		}
	}

	if children, ok := object["children"].([]any); ok {
		// Copied so that the indexing pass can rewrite child slots
		// without mutating the decoded input.
		element.Children = append(make([]any, 0, len(children)), children...)
	}

	if weight, ok := toNumber(object["weight"]); ok {
		element.Weight = weight
	}

	// Extra top-level keys always fold into props. Several observed
	// producers emit {"type": "Text", "text": "Hi"} with no props
	// object at all.
	for name, extraValue := range object {
		if elementFields[name] {
			continue
		}
		if element.Props == nil {
			element.Props = make(map[string]any)
		}
		if _, exists := element.Props[name]; !exists {
			element.Props[name] = extraValue
		}
	}

	return element
}

// IsElementShaped reports whether value is an object carrying a
// non-empty string "type" — the shape [DecodeElement] accepts without
// synthesizing a Text wrapper.
func IsElementShaped(value any) bool {
	object, ok := value.(map[string]any)
	if !ok {
		return false
	}
	elementType, ok := object["type"].(string)
	return ok && elementType != ""
}

// syntheticText wraps a non-element value in a Text element so it
// still renders. Objects without a type stringify via fmt for
// debuggability rather than round-tripping.
func syntheticText(value any, fallbackKey string) *Element {
	var text string
	switch typed := value.(type) {
	case string:
		text = typed
	case nil:
		text = ""
	case float64:
		text = strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		text = strconv.FormatBool(typed)
	default:
		text = fmt.Sprintf("%v", typed)
	}
	return &Element{
		Key:   fallbackKey,
		Type:  "Text",
		Props: map[string]any{"text": text},
	}
}

// toNumber coerces a decoded JSON value to float64. JSON numbers
// decode as float64 already; strings are accepted for producers that
// quote weights.
func toNumber(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case string:
		parsed, err := strconv.ParseFloat(typed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
