// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"encoding/json"
	"testing"

	"github.com/cklxx/canvas/lib/binding"
	"github.com/cklxx/canvas/lib/payload"
)

// apply parses a payload and folds it into a fresh state.
func apply(t *testing.T, input string) *State {
	t.Helper()
	messages, err := payload.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	state := NewState()
	state.Apply(messages)
	return state
}

func TestSurfaceStream(t *testing.T) {
	state := apply(t, `
{"surfaceUpdate": {"surfaceId": "s1", "components": [{"id": "c1", "component": {"Text": {"text": {"literalString": "Hi"}}}}]}}
{"beginRendering": {"surfaceId": "s1", "root": "c1"}}
`)

	target, ok := state.Surface("s1")
	if !ok {
		t.Fatal("surface s1 not created")
	}
	if target.RootID != "c1" {
		t.Errorf("RootID = %q, want c1", target.RootID)
	}
	component, ok := target.Components["c1"]
	if !ok {
		t.Fatal("component c1 missing")
	}
	if component.Type != "Text" {
		t.Errorf("component type = %q, want Text", component.Type)
	}

	document := target.Document()
	if document.Root == nil || document.Root.Key != "c1" {
		t.Fatalf("document root = %v, want element c1", document.Root)
	}
	bound, _ := document.Root.Props["text"].(map[string]any)
	if bound["literalString"] != "Hi" {
		t.Errorf("root text prop = %v, want literalString Hi", document.Root.Props["text"])
	}
}

func TestLazySurfaceCreation(t *testing.T) {
	state := apply(t, `{"dataModelUpdate": {"surfaceId": "later", "path": "/n", "contents": 1}}`)
	if _, ok := state.Surface("later"); !ok {
		t.Error("dataModelUpdate did not create the surface")
	}
}

func TestDefaultSurfaceID(t *testing.T) {
	state := apply(t, `{"surfaceUpdate": {"components": [{"id": "c1", "component": {"Divider": {}}}]}}`)
	if _, ok := state.Surface("default"); !ok {
		t.Error("message without surfaceId did not land on the default surface")
	}
	if _, ok := state.Surface(""); !ok {
		t.Error("empty lookup id did not normalize to default")
	}
}

func TestComponentUpsert(t *testing.T) {
	state := apply(t, `
{"surfaceUpdate": {"components": [{"id": "c1", "component": {"Text": {"text": "old"}}}]}}
{"surfaceUpdate": {"components": [{"id": "c1", "component": {"Text": {"text": "new"}}}]}}
`)
	target, _ := state.Surface("")
	if got := target.Components["c1"].Props["text"]; got != "new" {
		t.Errorf("text = %v, want new", got)
	}
}

func TestMalformedComponentEntriesSkipped(t *testing.T) {
	state := apply(t, `
{"surfaceUpdate": {"components": [
  {"component": {"Text": {}}},
  {"id": "bad", "component": {"Text": {}, "Row": {}}},
  {"id": "good", "component": {"Text": {"text": "kept"}}}
]}}
`)
	target, _ := state.Surface("")
	if len(target.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(target.Components))
	}
	if _, ok := target.Components["good"]; !ok {
		t.Error("well-formed entry was not kept")
	}
}

func TestDataModelUpdates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		want  any
	}{
		{
			name:  "root_replace",
			input: `{"dataModelUpdate": {"path": "/", "contents": {"name": "Ada"}}}`,
			path:  "/name",
			want:  "Ada",
		},
		{
			name:  "empty_path_is_root",
			input: `{"dataModelUpdate": {"contents": {"name": "Ada"}}}`,
			path:  "/name",
			want:  "Ada",
		},
		{
			name:  "nested_write",
			input: `{"dataModelUpdate": {"path": "/user/name", "contents": "Ada"}}`,
			path:  "/user/name",
			want:  "Ada",
		},
		{
			name: "typed_entry_list",
			input: `{"dataModelUpdate": {"path": "/",
				"contents": [{"key": "count", "valueNumber": 3}]}}`,
			path: "/count",
			want: 3.0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := apply(t, test.input)
			target, _ := state.Surface("")
			got, ok := binding.Get(target.DataModel, test.path)
			if !ok || got != test.want {
				t.Errorf("model at %s = %v, %v, want %v", test.path, got, ok, test.want)
			}
		})
	}

	t.Run("root_replace_with_scalar_dropped", func(t *testing.T) {
		state := apply(t, `
{"dataModelUpdate": {"path": "/", "contents": {"keep": true}}}
{"dataModelUpdate": {"path": "/", "contents": "not an object"}}
`)
		target, _ := state.Surface("")
		if _, ok := target.DataModel["keep"]; !ok {
			t.Error("scalar root replacement clobbered the model")
		}
	})
}

func TestBeginRenderingNonDestructive(t *testing.T) {
	state := apply(t, `
{"beginRendering": {"surfaceId": "s1", "root": "c1", "catalogId": "cat"}}
{"beginRendering": {"surfaceId": "s1", "styles": {"accent": "blue"}}}
`)
	target, _ := state.Surface("s1")
	if target.RootID != "c1" {
		t.Errorf("RootID = %q, want c1 (empty root must not clear it)", target.RootID)
	}
	if target.CatalogID != "cat" {
		t.Errorf("CatalogID = %q, want cat", target.CatalogID)
	}
	if target.Styles["accent"] != "blue" {
		t.Errorf("Styles = %v, want accent blue", target.Styles)
	}
}

func TestDanglingRootKeptOnDocument(t *testing.T) {
	state := apply(t, `
{"beginRendering": {"surfaceId": "s1", "root": "ghost"}}
`)
	target, _ := state.Surface("s1")
	document := target.Document()
	if document.Root != nil {
		t.Errorf("Root = %+v, want nil for an unregistered root", document.Root)
	}
	if document.RootKey != "ghost" {
		t.Errorf("RootKey = %q, want ghost", document.RootKey)
	}
}

func TestDeleteSurface(t *testing.T) {
	state := apply(t, `
{"surfaceUpdate": {"surfaceId": "a", "components": []}}
{"surfaceUpdate": {"surfaceId": "b", "components": []}}
{"deleteSurface": {"surfaceId": "a"}}
{"deleteSurface": {"surfaceId": "never-existed"}}
`)
	if _, ok := state.Surface("a"); ok {
		t.Error("surface a still present after delete")
	}
	order := state.Order()
	if len(order) != 1 || order[0] != "b" {
		t.Errorf("order = %v, want [b]", order)
	}
}

func TestSurfacesOrder(t *testing.T) {
	state := apply(t, `
{"surfaceUpdate": {"surfaceId": "z", "components": []}}
{"surfaceUpdate": {"surfaceId": "a", "components": []}}
{"surfaceUpdate": {"surfaceId": "z", "components": []}}
`)
	surfaces := state.Surfaces()
	if len(surfaces) != 2 {
		t.Fatalf("got %d surfaces, want 2", len(surfaces))
	}
	if surfaces[0].ID != "z" || surfaces[1].ID != "a" {
		t.Errorf("order = [%s %s], want first-seen [z a]", surfaces[0].ID, surfaces[1].ID)
	}
}

func TestUnknownMessagesSkipped(t *testing.T) {
	state := NewState()
	state.Apply([]json.RawMessage{
		json.RawMessage(`{"futureKind": {"surfaceId": "x"}}`),
		json.RawMessage(`{}`),
	})
	if len(state.Surfaces()) != 0 {
		t.Errorf("unknown messages created surfaces: %v", state.Order())
	}
}
