// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"reflect"
	"testing"
)

func TestDecodeElement(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		fallbackKey string
		want        *Element
	}{
		{
			name: "full_shape",
			value: map[string]any{
				"key":      "k1",
				"type":     "Row",
				"props":    map[string]any{"gap": 2.0},
				"children": []any{"a", "b"},
				"weight":   2.0,
			},
			want: &Element{
				Key:      "k1",
				Type:     "Row",
				Props:    map[string]any{"gap": 2.0},
				Children: []any{"a", "b"},
				Weight:   2,
			},
		},
		{
			name:  "id_as_key",
			value: map[string]any{"id": "c7", "type": "Text"},
			want:  &Element{Key: "c7", Type: "Text"},
		},
		{
			name:  "extra_keys_fold_into_props",
			value: map[string]any{"type": "Text", "text": "Hi", "tone": "muted"},
			want: &Element{
				Type:  "Text",
				Props: map[string]any{"text": "Hi", "tone": "muted"},
			},
		},
		{
			name: "props_win_over_folded_keys",
			value: map[string]any{
				"type":  "Text",
				"props": map[string]any{"text": "from props"},
				"text":  "from top level",
			},
			want: &Element{
				Type:  "Text",
				Props: map[string]any{"text": "from props"},
			},
		},
		{
			name:        "fallback_key_applied",
			value:       map[string]any{"type": "Divider"},
			fallbackKey: "node-3",
			want:        &Element{Key: "node-3", Type: "Divider"},
		},
		{
			name:  "quoted_weight",
			value: map[string]any{"type": "Card", "weight": "1.5"},
			want:  &Element{Type: "Card", Weight: 1.5},
		},
		{
			name:  "string_becomes_text",
			value: "loose text",
			want:  &Element{Type: "Text", Props: map[string]any{"text": "loose text"}},
		},
		{
			name:  "number_becomes_text",
			value: 42.0,
			want:  &Element{Type: "Text", Props: map[string]any{"text": "42"}},
		},
		{
			name:  "typeless_object_becomes_text",
			value: map[string]any{"oops": true},
			want:  &Element{Type: "Text", Props: map[string]any{"text": "map[oops:true]"}},
		},
		{
			name:  "nil_becomes_empty_text",
			value: nil,
			want:  &Element{Type: "Text", Props: map[string]any{"text": ""}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := DecodeElement(test.value, test.fallbackKey)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("DecodeElement = %#v, want %#v", got, test.want)
			}
		})
	}
}

func TestIsElementShaped(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"typed_object", map[string]any{"type": "Text"}, true},
		{"empty_type", map[string]any{"type": ""}, false},
		{"numeric_type", map[string]any{"type": 7.0}, false},
		{"typeless_object", map[string]any{"text": "Hi"}, false},
		{"scalar", "Text", false},
		{"nil", nil, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsElementShaped(test.value); got != test.want {
				t.Errorf("IsElementShaped(%v) = %v, want %v", test.value, got, test.want)
			}
		})
	}
}
