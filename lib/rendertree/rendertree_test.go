// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package rendertree

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/cklxx/canvas/lib/payload"
	"github.com/cklxx/canvas/lib/schema"
)

// build parses a payload and folds it through a fresh builder.
func build(t *testing.T, input string) *schema.Document {
	t.Helper()
	messages, err := payload.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return Build(messages)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		object map[string]any
		want   Class
	}{
		{
			name:   "wrapper_envelope",
			object: map[string]any{"type": "ui", "messages": []any{}},
			want:   ClassWrapperEnvelope,
		},
		{
			name:   "wrapper_outranks_element_shape",
			object: map[string]any{"type": "Text", "messages": []any{}},
			want:   ClassWrapperEnvelope,
		},
		{
			name:   "tree_with_root",
			object: map[string]any{"root": "a"},
			want:   ClassTreeDocument,
		},
		{
			name:   "tree_with_elements_only",
			object: map[string]any{"elements": map[string]any{}},
			want:   ClassTreeDocument,
		},
		{
			name:   "tree_outranks_element_shape",
			object: map[string]any{"type": "Text", "root": "a"},
			want:   ClassTreeDocument,
		},
		{
			name:   "single_element",
			object: map[string]any{"type": "Text", "text": "Hi"},
			want:   ClassSingleElement,
		},
		{
			name:   "empty",
			object: map[string]any{"whatever": true},
			want:   ClassEmpty,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.object); got != test.want {
				t.Errorf("Classify = %v, want %v", got, test.want)
			}
		})
	}
}

func TestBuildWrapperEnvelope(t *testing.T) {
	document := build(t, `{"type": "ui", "messages": [{"type": "Text", "text": "Hello"}]}`)

	if document.Root == nil || document.Root.Type != "Column" {
		t.Fatalf("root = %v, want synthesized Column", document.Root)
	}
	if len(document.Root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(document.Root.Children))
	}
	childKey, ok := document.Root.Children[0].(string)
	if !ok {
		t.Fatalf("child not hoisted to a key: %v", document.Root.Children[0])
	}
	child, ok := document.Lookup(childKey)
	if !ok {
		t.Fatalf("child key %q not in element map", childKey)
	}
	if child.Type != "Text" || child.Props["text"] != "Hello" {
		t.Errorf("child = %+v, want Text with text Hello", child)
	}
}

func TestBuildSingleElement(t *testing.T) {
	document := build(t, `{"type": "Card", "children": [{"type": "Text", "text": "inner"}]}`)
	if document.Root == nil || document.Root.Type != "Card" {
		t.Fatalf("root = %v, want Card", document.Root)
	}
}

func TestBuildMultipleDocumentsFormColumn(t *testing.T) {
	document := build(t, `
{"type": "Text", "text": "one"}
{"type": "Text", "text": "two"}
`)
	if document.Root == nil || document.Root.Type != "Column" {
		t.Fatalf("root = %v, want synthesized Column", document.Root)
	}
	if len(document.Root.Children) != 2 {
		t.Errorf("root has %d children, want 2", len(document.Root.Children))
	}
}

func TestBuildTreeDocument(t *testing.T) {
	document := build(t, `
{"root": "a", "elements": {
  "a": {"type": "Column", "children": ["b", "missing"]},
  "b": {"type": "Text", "text": "x"}
}}
`)
	if document.Root == nil || document.Root.Key != "a" {
		t.Fatalf("root = %v, want element a", document.Root)
	}
	if _, ok := document.Lookup("b"); !ok {
		t.Error("element b missing from index")
	}
	// A child string naming no element stays as literal text.
	if got := document.Root.Children[1]; got != "missing" {
		t.Errorf("dangling child = %v, want literal string kept", got)
	}
}

func TestIndexAssignsDeterministicKeys(t *testing.T) {
	input := `{"type": "Column", "children": [
  {"type": "Text", "text": "a"},
  {"type": "Row", "children": [{"type": "Text", "text": "b"}]}
]}`

	first := build(t, input)
	second := build(t, input)

	keys := func(document *schema.Document) []string {
		found := make([]string, 0, len(document.Elements))
		for key := range document.Elements {
			found = append(found, key)
		}
		return found
	}
	if len(keys(first)) != len(keys(second)) {
		t.Fatalf("key counts differ: %v vs %v", keys(first), keys(second))
	}
	for key := range first.Elements {
		other, ok := second.Lookup(key)
		if !ok {
			t.Fatalf("key %q missing on re-parse", key)
		}
		if first.Elements[key].Type != other.Type {
			t.Errorf("key %q types differ: %s vs %s",
				key, first.Elements[key].Type, other.Type)
		}
	}

	// Pre-order: the root gets node-0, its first child node-1.
	if first.Root.Key != "node-0" {
		t.Errorf("root key = %q, want node-0", first.Root.Key)
	}
	if got := first.Root.Children[0]; got != "node-1" {
		t.Errorf("first child key = %v, want node-1", got)
	}
}

func TestIndexSkipsOccupiedKeys(t *testing.T) {
	document := build(t, `{"type": "Column", "children": [
  {"key": "node-1", "type": "Text", "text": "explicit"},
  {"type": "Text", "text": "unkeyed"}
]}`)

	// Root takes node-0; the second child must not collide with the
	// producer's explicit node-1.
	explicit, ok := document.Lookup("node-1")
	if !ok || explicit.Props["text"] != "explicit" {
		t.Fatalf("explicit node-1 = %+v", explicit)
	}
	unkeyed, ok := document.Lookup("node-2")
	if !ok || unkeyed.Props["text"] != "unkeyed" {
		t.Errorf("unkeyed child = %+v, want node-2", unkeyed)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	original := build(t, `{"type": "ui", "messages": [{"type": "Text", "text": "Hello"}]}`)

	wire, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	reparsed := build(t, string(wire))

	if !reflect.DeepEqual(original.Root, reparsed.Root) {
		t.Errorf("roots differ after round trip:\n%+v\n%+v", original.Root, reparsed.Root)
	}
	if !reflect.DeepEqual(original.Elements, reparsed.Elements) {
		t.Errorf("element maps differ after round trip")
	}
}

func TestBuilderCarriesStateAcrossBatches(t *testing.T) {
	builder := NewBuilder()

	first := mustParse(t, `{"root": "a", "elements": {"a": {"type": "Text", "text": "v1"}}}`)
	document := builder.Build(first)
	if document.Root.Props["text"] != "v1" {
		t.Fatalf("initial text = %v", document.Root.Props["text"])
	}

	second := mustParse(t, `{"op": "replace", "path": "/elements/a/text", "value": "v2"}`)
	document = builder.Build(second)
	if document.Root.Props["text"] != "v2" {
		t.Errorf("patched text = %v, want v2", document.Root.Props["text"])
	}
}

func TestBuilderCarriesInlineChildren(t *testing.T) {
	builder := NewBuilder()

	first := mustParse(t, `{"type": "Column", "children": [{"type": "Text", "text": "Hi"}]}`)
	document := builder.Build(first)
	childKey, ok := document.Root.Children[0].(string)
	if !ok {
		t.Fatalf("child slot = %T, want assigned key", document.Root.Children[0])
	}
	if child, ok := document.Lookup(childKey); !ok || child.Props["text"] != "Hi" {
		t.Fatalf("child %q = %+v", childKey, child)
	}

	// A patch against an unrelated path must not sever the hoisted
	// child from the carried state.
	second := mustParse(t, `{"op": "add", "path": "/root/extra", "value": "x"}`)
	document = builder.Build(second)
	if got := document.Root.Children[0]; got != childKey {
		t.Fatalf("child slot after patch = %v, want %q", got, childKey)
	}
	child, ok := document.Lookup(childKey)
	if !ok {
		t.Fatalf("child %q missing after patch", childKey)
	}
	if child.Props["text"] != "Hi" {
		t.Errorf("child text = %v, want Hi", child.Props["text"])
	}

	// Hoisted children are addressable under their assigned keys.
	third := mustParse(t,
		`{"op": "replace", "path": "/elements/`+childKey+`/text", "value": "Bye"}`)
	document = builder.Build(third)
	if child, ok := document.Lookup(childKey); !ok || child.Props["text"] != "Bye" {
		t.Errorf("patched child = %+v, want text Bye", child)
	}
}

func TestDocumentCallIsReadOnly(t *testing.T) {
	builder := NewBuilder()
	builder.Build(mustParse(t, `{"type": "Column", "children": [
  {"type": "Text", "text": "a"},
  {"type": "Row", "children": [{"type": "Text", "text": "b"}]}
]}`))

	first := builder.Document()
	second := builder.Document()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Document calls differ:\n%+v\n%+v", first, second)
	}
}

func mustParse(t *testing.T, input string) []json.RawMessage {
	t.Helper()
	messages, err := payload.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return messages
}
