// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "strings"

// Patch is one ordered mutation of the joint {root, elements}
// render-tree state, addressed by a '/'-delimited pointer:
//
//	{"op": "add", "path": "/elements/a", "value": {"type": "Text"}}
//	{"op": "remove", "path": "/elements/a/children/0"}
//
// Patches apply strictly in arrival order. Operations other than
// "add" and "remove" (including the common "replace") behave as
// upsert at the target path.
type Patch struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Segments splits the patch path into pointer segments, dropping
// empty segments from leading/trailing slashes. "/elements/a" yields
// ["elements", "a"].
func (p Patch) Segments() []string {
	parts := strings.Split(p.Path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// DecodePatch recognizes a parsed payload object as a patch. A patch
// carries string "op" and "path" fields; anything else is a document,
// not a patch.
func DecodePatch(object map[string]any) (Patch, bool) {
	op, okOp := object["op"].(string)
	path, okPath := object["path"].(string)
	if !okOp || !okPath {
		return Patch{}, false
	}
	return Patch{Op: op, Path: path, Value: object["value"]}, true
}
