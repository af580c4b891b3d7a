// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package rendertree

import (
	"strconv"

	"github.com/cklxx/canvas/lib/schema"
)

// patchTarget distinguishes the two addressing modes a patch segment
// can land on. The kind is decided once per application step, from
// the container actually found at the path.
type patchTarget int

const (
	objectTarget patchTarget = iota
	arrayTarget
)

// applyPatch applies one patch to the joint state and returns the
// (possibly replaced) state. Unapplicable patches — removes of absent
// paths, inserts through scalar obstructions that cannot be rebuilt —
// degrade to no-ops rather than errors.
func applyPatch(joint map[string]any, patch schema.Patch) map[string]any {
	if joint == nil {
		joint = map[string]any{}
	}
	segments := patch.Segments()
	if len(segments) == 0 {
		// A whole-state patch: upsert replaces the joint when the
		// value is an object; remove clears it.
		if patch.Op == "remove" {
			return map[string]any{}
		}
		if replacement, ok := patch.Value.(map[string]any); ok {
			return replacement
		}
		return joint
	}
	result := apply(joint, segments, patch.Op, patch.Value)
	if object, ok := result.(map[string]any); ok {
		return object
	}
	return joint
}

// apply recurses down node following segments and performs op at the
// final segment. It returns the possibly-new node so array splices
// propagate back up through their holders.
func apply(node any, segments []string, op string, value any) any {
	head, rest := segments[0], segments[1:]

	switch container := node.(type) {
	case map[string]any:
		if len(rest) == 0 {
			return applyFinal(container, objectTarget, head, op, value)
		}
		child, exists := container[head]
		if !exists {
			if op == "remove" {
				return container
			}
			child = map[string]any{}
		}
		container[head] = apply(child, rest, op, value)
		return container

	case []any:
		index, err := strconv.Atoi(head)
		if err != nil || index < 0 || index >= len(container) {
			if len(rest) == 0 {
				return applyFinal(container, arrayTarget, head, op, value)
			}
			return container
		}
		if len(rest) == 0 {
			return applyFinal(container, arrayTarget, head, op, value)
		}
		container[index] = apply(container[index], rest, op, value)
		return container

	default:
		// Scalar obstruction mid-path: removes have nothing to do;
		// writes rebuild the spot as an object and continue.
		if op == "remove" {
			return node
		}
		rebuilt := map[string]any{}
		return apply(rebuilt, segments, op, value)
	}
}

// applyFinal performs the operation at the resolved target container.
func applyFinal(container any, target patchTarget, segment, op string, value any) any {
	if target == objectTarget {
		object := container.(map[string]any)
		switch op {
		case "remove":
			delete(object, segment)
		case "add":
			// Add onto an existing array target pushes; everything
			// else upserts the key.
			if existing, ok := object[segment].([]any); ok {
				object[segment] = append(existing, value)
			} else {
				object[segment] = value
			}
		default:
			object[segment] = value
		}
		return object
	}

	array := container.([]any)
	switch op {
	case "remove":
		index, err := strconv.Atoi(segment)
		if err != nil || index < 0 || index >= len(array) {
			return array
		}
		return append(array[:index], array[index+1:]...)
	case "add":
		if segment == "-" {
			return append(array, value)
		}
		index, err := strconv.Atoi(segment)
		if err != nil {
			return array
		}
		if index < 0 {
			index = 0
		}
		if index >= len(array) {
			return append(array, value)
		}
		array = append(array, nil)
		copy(array[index+1:], array[index:])
		array[index] = value
		return array
	default:
		index, err := strconv.Atoi(segment)
		if err != nil || index < 0 {
			return array
		}
		if index >= len(array) {
			return append(array, value)
		}
		array[index] = value
		return array
	}
}
