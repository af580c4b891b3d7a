// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "encoding/json"

// DefaultSurfaceID is the surface addressed by messages that omit
// surfaceId. Hosts that only ever show one surface never need to name
// it.
const DefaultSurfaceID = "default"

// MessageKind identifies which arm of the surface-protocol message
// union is populated.
type MessageKind int

const (
	// KindUnknown marks a message whose single top-level key matched
	// no known kind. Builders skip these silently.
	KindUnknown MessageKind = iota
	// KindSurfaceUpdate upserts components into a surface.
	KindSurfaceUpdate
	// KindDataModelUpdate writes into a surface's data model.
	KindDataModelUpdate
	// KindBeginRendering marks a surface ready to render and names
	// its root component.
	KindBeginRendering
	// KindDeleteSurface destroys a surface.
	KindDeleteSurface
)

// Message is the surface-protocol tagged union. On the wire each
// message is a JSON object with a single top-level key naming the
// kind:
//
//	{"surfaceUpdate": {"surfaceId": "s1", "components": [...]}}
//	{"beginRendering": {"surfaceId": "s1", "root": "c1"}}
//
// Exactly one field is non-nil after a successful decode; [Message.Kind]
// reports which. Objects with extra keys decode whatever arms they
// carry — kind validation is the builder's job, not the decoder's.
type Message struct {
	SurfaceUpdate   *SurfaceUpdate   `json:"surfaceUpdate,omitempty"`
	DataModelUpdate *DataModelUpdate `json:"dataModelUpdate,omitempty"`
	BeginRendering  *BeginRendering  `json:"beginRendering,omitempty"`
	DeleteSurface   *DeleteSurface   `json:"deleteSurface,omitempty"`
}

// Kind reports which union arm is populated. When several arms are
// set (malformed input), the first in declaration order wins.
func (m Message) Kind() MessageKind {
	switch {
	case m.SurfaceUpdate != nil:
		return KindSurfaceUpdate
	case m.DataModelUpdate != nil:
		return KindDataModelUpdate
	case m.BeginRendering != nil:
		return KindBeginRendering
	case m.DeleteSurface != nil:
		return KindDeleteSurface
	default:
		return KindUnknown
	}
}

// DecodeMessage decodes one parsed payload object into a Message.
// A decode failure or an object carrying no known kind returns a
// Message with Kind() == KindUnknown; callers skip those.
func DecodeMessage(raw json.RawMessage) Message {
	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		return Message{}
	}
	return message
}

// SurfaceUpdate upserts components into a surface, creating the
// surface on first reference.
type SurfaceUpdate struct {
	// SurfaceID names the target surface. Empty means
	// [DefaultSurfaceID].
	SurfaceID string `json:"surfaceId,omitempty"`

	// Components is the list of component upserts, applied in order.
	Components []ComponentEntry `json:"components,omitempty"`
}

// ComponentEntry is one component upsert within a SurfaceUpdate. The
// component type is carried as the single key of the Component object:
//
//	{"id": "c1", "component": {"Text": {"text": {"literalString": "Hi"}}}}
//
// Entries without a string id or without a single-key component object
// are malformed and skipped by the builder.
type ComponentEntry struct {
	ID        string         `json:"id,omitempty"`
	Component map[string]any `json:"component,omitempty"`

	// Weight is a flex sizing hint for the component within its
	// parent container. Nil means equal sizing.
	Weight *float64 `json:"weight,omitempty"`
}

// TypeAndProps extracts the component type (the single key) and its
// property map from the entry. Reports false when the entry is
// malformed: missing id, no single-key component object, or a
// non-object property value. A null property value is valid and
// yields an empty map.
func (entry ComponentEntry) TypeAndProps() (string, map[string]any, bool) {
	if entry.ID == "" || len(entry.Component) != 1 {
		return "", nil, false
	}
	for componentType, value := range entry.Component {
		switch props := value.(type) {
		case map[string]any:
			return componentType, props, true
		case nil:
			return componentType, map[string]any{}, true
		default:
			return "", nil, false
		}
	}
	return "", nil, false
}

// DataModelUpdate writes into a surface's data model at a
// '/'-delimited path. An empty or "/" path replaces the whole model.
type DataModelUpdate struct {
	SurfaceID string `json:"surfaceId,omitempty"`
	Path      string `json:"path,omitempty"`

	// Contents is either a list of {key, valueX} entries (the typed
	// wire encoding, decoded by [DecodeDataValue]) or an
	// already-plain JSON object passed through as-is.
	Contents any `json:"contents,omitempty"`
}

// BeginRendering marks a surface ready to render and names its root
// component. Root and catalog updates are non-destructive: an absent
// or empty value keeps whatever was set before, so a host can send
// beginRendering again to refresh styles without re-stating the root.
type BeginRendering struct {
	SurfaceID string         `json:"surfaceId,omitempty"`
	Root      string         `json:"root,omitempty"`
	CatalogID string         `json:"catalogId,omitempty"`
	Styles    map[string]any `json:"styles,omitempty"`
}

// DeleteSurface destroys a surface and removes it from the surface
// order. Deleting an absent surface is a no-op.
type DeleteSurface struct {
	SurfaceID string `json:"surfaceId,omitempty"`
}

// DecodeDataValue converts the wire encoding of data-model contents
// into plain JSON-like Go values. The wire encoding tags values by
// type:
//
//	[{"key": "name", "valueString": "Ada"},
//	 {"key": "tags", "valueList": [{"valueString": "a"}]},
//	 {"key": "address", "valueMap": [{"key": "city", "valueString": "X"}]}]
//
// A list whose entries all carry a "key" decodes to a map; valueMap
// and valueList recurse. Values that are already plain (objects,
// scalars, untagged lists) pass through unchanged.
func DecodeDataValue(value any) any {
	switch typed := value.(type) {
	case []any:
		if isEntryList(typed) {
			result := make(map[string]any, len(typed))
			for _, item := range typed {
				entry := item.(map[string]any)
				key, _ := entry["key"].(string)
				if key == "" {
					continue
				}
				result[key] = decodeEntryValue(entry)
			}
			return result
		}
		result := make([]any, 0, len(typed))
		for _, item := range typed {
			if entry, ok := item.(map[string]any); ok && hasValueTag(entry) {
				result = append(result, decodeEntryValue(entry))
				continue
			}
			result = append(result, DecodeDataValue(item))
		}
		return result
	default:
		return value
	}
}

// valueTags are the typed wire keys for data-model entry values, in
// recognition order.
var valueTags = []string{
	"valueString", "valueNumber", "valueBoolean",
	"valueMap", "valueList", "valueNull",
}

// isEntryList reports whether every element of list is an object
// carrying a "key" field, i.e. the typed map encoding.
func isEntryList(list []any) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := entry["key"].(string); !ok {
			return false
		}
	}
	return true
}

// hasValueTag reports whether the object carries one of the typed
// value keys.
func hasValueTag(entry map[string]any) bool {
	for _, tag := range valueTags {
		if _, ok := entry[tag]; ok {
			return true
		}
	}
	return false
}

// decodeEntryValue extracts the tagged value from one {key, valueX}
// entry. valueMap and valueList recurse through DecodeDataValue.
// An entry with no recognized tag decodes to nil.
func decodeEntryValue(entry map[string]any) any {
	for _, tag := range valueTags {
		value, ok := entry[tag]
		if !ok {
			continue
		}
		switch tag {
		case "valueMap", "valueList":
			return DecodeDataValue(value)
		case "valueNull":
			return nil
		default:
			return value
		}
	}
	return nil
}
