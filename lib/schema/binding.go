// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// BoundValueKind identifies the arm of the [BoundValue] sum type.
type BoundValueKind int

const (
	// BoundLiteral is a plain value with no data-model involvement.
	BoundLiteral BoundValueKind = iota
	// BoundPath reads the value at a data-model path.
	BoundPath
	// BoundSeedThenRead writes the literal at the path if nothing is
	// there yet, then reads the path back. The model wins over the
	// literal once seeded.
	BoundSeedThenRead
)

// BoundValue is a decoded component property: a literal, a data-model
// path reference, or a seed-then-read combination. It is constructed
// once at decode time so that resolution (lib/binding) is a single
// switch rather than repeated key probing on raw maps.
type BoundValue struct {
	Kind    BoundValueKind
	Literal any
	Path    string
}

// literalTags are the recognized literal keys on a bound-value
// object, in priority order. The first present key wins; the others
// are ignored.
var literalTags = []string{
	"literalString", "literalNumber", "literalBoolean",
	"literalArray", "literalObject", "literalMap", "literalNull",
}

// DecodeBoundValue converts one raw property value into a BoundValue.
//
// Non-object values are literals as-is. An object is inspected for
// one of the literal keys (literalString, literalNumber,
// literalBoolean, literalArray, literalObject, literalMap,
// literalNull — first match wins) and a "path" string:
//
//   - literal only, or neither → [BoundLiteral] (the raw object
//     itself when no literal key is present)
//   - path only → [BoundPath]
//   - both → [BoundSeedThenRead]
func DecodeBoundValue(value any) BoundValue {
	object, ok := value.(map[string]any)
	if !ok {
		return BoundValue{Kind: BoundLiteral, Literal: value}
	}

	literal, hasLiteral := findLiteral(object)
	path, hasPath := object["path"].(string)
	hasPath = hasPath && path != ""

	switch {
	case hasLiteral && hasPath:
		return BoundValue{Kind: BoundSeedThenRead, Literal: literal, Path: path}
	case hasPath:
		return BoundValue{Kind: BoundPath, Path: path}
	case hasLiteral:
		return BoundValue{Kind: BoundLiteral, Literal: literal}
	default:
		return BoundValue{Kind: BoundLiteral, Literal: value}
	}
}

// findLiteral scans the literal tags in priority order. literalNull
// is a present literal whose value is nil.
func findLiteral(object map[string]any) (any, bool) {
	for _, tag := range literalTags {
		value, ok := object[tag]
		if !ok {
			continue
		}
		if tag == "literalNull" {
			return nil, true
		}
		return value, true
	}
	return nil, false
}
