// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"reflect"
	"testing"
)

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name     string
		basePath string
		path     string
		want     string
	}{
		{"relative_from_root", "/", "user/name", "/user/name"},
		{"relative_from_entry", "/items/2", "done", "/items/2/done"},
		{"absolute_ignores_base", "/items", "/other", "/other"},
		{"empty_base", "", "name", "/name"},
		{"trailing_slash_base", "/items/", "0", "/items/0"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := JoinPath(test.basePath, test.path); got != test.want {
				t.Errorf("JoinPath(%q, %q) = %q, want %q",
					test.basePath, test.path, got, test.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	model := map[string]any{
		"user": map[string]any{"name": "Ada"},
		"tags": []any{"a", "b"},
		"nil":  nil,
	}
	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{"root", "/", model, true},
		{"map_key", "/user/name", "Ada", true},
		{"array_index", "/tags/1", "b", true},
		{"stored_nil", "/nil", nil, true},
		{"missing_key", "/user/email", nil, false},
		{"index_out_of_range", "/tags/5", nil, false},
		{"non_numeric_index", "/tags/x", nil, false},
		{"descend_into_scalar", "/user/name/deeper", nil, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := Get(model, test.path)
			if ok != test.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", test.path, ok, test.wantOK)
			}
			if ok && !reflect.DeepEqual(got, test.want) {
				t.Errorf("Get(%q) = %v, want %v", test.path, got, test.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Run("simple_write", func(t *testing.T) {
		model := map[string]any{}
		Set(model, "/name", "Ada")
		if got := model["name"]; got != "Ada" {
			t.Errorf("model[name] = %v, want Ada", got)
		}
	})

	t.Run("creates_intermediates", func(t *testing.T) {
		model := map[string]any{}
		Set(model, "/user/address/city", "Lund")
		got, ok := Get(model, "/user/address/city")
		if !ok || got != "Lund" {
			t.Errorf("Get after Set = %v, %v", got, ok)
		}
	})

	t.Run("replaces_scalar_obstruction", func(t *testing.T) {
		model := map[string]any{"user": "not a map"}
		Set(model, "/user/name", "Ada")
		got, ok := Get(model, "/user/name")
		if !ok || got != "Ada" {
			t.Errorf("Get after Set = %v, %v", got, ok)
		}
	})

	t.Run("array_index_write", func(t *testing.T) {
		model := map[string]any{"tags": []any{"a", "b"}}
		Set(model, "/tags/1", "z")
		got, _ := Get(model, "/tags/1")
		if got != "z" {
			t.Errorf("tags[1] = %v, want z", got)
		}
	})

	t.Run("root_path_is_noop", func(t *testing.T) {
		model := map[string]any{"keep": true}
		Set(model, "/", map[string]any{"replaced": true})
		if _, ok := model["keep"]; !ok {
			t.Error("root Set modified the model")
		}
	})
}

func TestIsRootPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", true},
		{"/", true},
		{"//", true},
		{"/a", false},
		{"a", false},
	}
	for _, test := range tests {
		if got := IsRootPath(test.path); got != test.want {
			t.Errorf("IsRootPath(%q) = %v, want %v", test.path, got, test.want)
		}
	}
}
