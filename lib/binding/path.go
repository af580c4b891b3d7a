// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"strconv"
	"strings"
)

// JoinPath resolves a possibly-relative data-model path against a
// base path. Absolute paths (leading "/") are returned as-is;
// relative paths append to the base with exactly one separator:
//
//	JoinPath("/", "user/name")      → "/user/name"
//	JoinPath("/items/2", "done")    → "/items/2/done"
//	JoinPath("/items", "/other")    → "/other"
func JoinPath(basePath, path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	base := strings.TrimSuffix(basePath, "/")
	if base == "" {
		return "/" + path
	}
	return base + "/" + path
}

// splitPath breaks a '/'-delimited path into segments, dropping the
// empty segments produced by leading, trailing, or doubled slashes.
// "" and "/" both yield no segments (the whole model).
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// IsRootPath reports whether path addresses the whole data model.
func IsRootPath(path string) bool {
	return len(splitPath(path)) == 0
}

// Get reads the value at an absolute '/'-delimited path. Maps descend
// by key; arrays descend by numeric segment. The boolean reports
// whether every segment resolved; a stored nil value resolves true.
func Get(model map[string]any, path string) (any, bool) {
	var current any = model
	for _, segment := range splitPath(path) {
		switch container := current.(type) {
		case map[string]any:
			value, ok := container[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(container) {
				return nil, false
			}
			current = container[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes value at an absolute '/'-delimited path, creating
// intermediate objects as needed. Existing arrays on the way are
// descended by numeric index; any other obstruction (a scalar where a
// container is needed, an out-of-range index) is replaced by a fresh
// object so the write always lands. A root path is a no-op — whole-
// model replacement is the owner's decision, not a path write.
func Set(model map[string]any, path string, value any) {
	segments := splitPath(path)
	if len(segments) == 0 || model == nil {
		return
	}

	var current any = model
	for depth := 0; depth < len(segments)-1; depth++ {
		segment := segments[depth]
		switch container := current.(type) {
		case map[string]any:
			next := container[segment]
			if !isContainer(next) {
				next = map[string]any{}
				container[segment] = next
			}
			current = next
		case []any:
			index, err := strconv.Atoi(segment)
			if err == nil && index >= 0 && index < len(container) {
				if !isContainer(container[index]) {
					container[index] = map[string]any{}
				}
				current = container[index]
				continue
			}
			// Unreachable array slot: nothing sensible to graft the
			// remaining segments onto.
			return
		default:
			return
		}
	}

	last := segments[len(segments)-1]
	switch container := current.(type) {
	case map[string]any:
		container[last] = value
	case []any:
		if index, err := strconv.Atoi(last); err == nil && index >= 0 && index < len(container) {
			container[index] = value
		}
	}
}

func isContainer(value any) bool {
	switch value.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
