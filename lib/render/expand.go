// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"sort"
	"strconv"

	"github.com/cklxx/canvas/lib/binding"
	"github.com/cklxx/canvas/lib/schema"
)

// Child is one expanded child instance, ready to render. Exactly one
// of Element, Ref, and Text describes it: a resolved element under
// Scope, a dangling key reference, or literal text.
type Child struct {
	Element *schema.Element
	Ref     string
	Text    string
	Scope   binding.Resolver
}

// Expand produces the ordered child instances of an element. Three
// children specs are recognized:
//
//   - a plain array of keys/inline elements/text, in order
//   - {"explicitList": [...]} — the same, wrapped
//   - {"template": {"componentId": ..., "dataBinding": ...}} — one
//     instance of the named component per entry of the bound
//     collection, each under a scope pointing at that entry
//
// The normalized Children field wins over a props["children"] spec
// when both exist. A missing or unrecognizable spec expands to
// nothing.
func Expand(document *schema.Document, element *schema.Element, scope binding.Resolver) []Child {
	spec := childrenSpec(element)
	switch typed := spec.(type) {
	case []any:
		return expandList(document, typed, scope)
	case map[string]any:
		if list, ok := typed["explicitList"].([]any); ok {
			return expandList(document, list, scope)
		}
		if template, ok := typed["template"].(map[string]any); ok {
			return expandTemplate(document, template, scope)
		}
		return nil
	default:
		return nil
	}
}

func childrenSpec(element *schema.Element) any {
	if len(element.Children) > 0 {
		return []any(element.Children)
	}
	if element.Props == nil {
		return nil
	}
	return element.Props["children"]
}

// expandList resolves an explicit child list: strings are element
// keys when they resolve, literal text otherwise; anything else is an
// inline element.
func expandList(document *schema.Document, entries []any, scope binding.Resolver) []Child {
	children := make([]Child, 0, len(entries))
	for _, entry := range entries {
		switch typed := entry.(type) {
		case string:
			if element, ok := document.Lookup(typed); ok {
				children = append(children, Child{Element: element, Scope: scope})
			} else {
				children = append(children, Child{Text: typed, Scope: scope})
			}
		default:
			children = append(children, Child{
				Element: schema.DecodeElement(entry, ""),
				Scope:   scope,
			})
		}
	}
	return children
}

// expandTemplate renders one blueprint component per entry of a bound
// collection. Arrays iterate by index, objects by key (sorted, so
// expansion order is deterministic). A missing or non-collection
// binding expands to nothing — never an error.
func expandTemplate(document *schema.Document, template map[string]any, scope binding.Resolver) []Child {
	componentID, _ := template["componentId"].(string)
	path := bindingPath(template["dataBinding"])
	if componentID == "" || path == "" {
		return nil
	}

	collectionPath := binding.JoinPath(scope.BasePath, path)
	collection, ok := binding.Get(scope.Model, collectionPath)
	if !ok {
		return nil
	}

	var entryKeys []string
	switch typed := collection.(type) {
	case []any:
		entryKeys = make([]string, len(typed))
		for index := range typed {
			entryKeys[index] = strconv.Itoa(index)
		}
	case map[string]any:
		entryKeys = make([]string, 0, len(typed))
		for key := range typed {
			entryKeys = append(entryKeys, key)
		}
		sort.Strings(entryKeys)
	default:
		return nil
	}

	blueprint, found := document.Lookup(componentID)
	collectionScope := binding.Resolver{Model: scope.Model, BasePath: collectionPath}

	children := make([]Child, 0, len(entryKeys))
	for _, entryKey := range entryKeys {
		child := Child{Scope: collectionScope.Child(entryKey)}
		if found {
			child.Element = blueprint
		} else {
			child.Ref = componentID
		}
		children = append(children, child)
	}
	return children
}

// bindingPath extracts the data-model path from a template's
// dataBinding, which producers write either as a bare string or as a
// bound-value object with a "path".
func bindingPath(raw any) string {
	switch typed := raw.(type) {
	case string:
		return typed
	case map[string]any:
		return schema.DecodeBoundValue(typed).Path
	default:
		return ""
	}
}
