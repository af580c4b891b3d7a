// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package render walks a document and produces one self-contained
// output string. Two backends ship: [HTML] for web hosts and
// [Terminal] for styled terminal output.
//
// The walk is format-agnostic and never fails: a backend renders one
// node at a time through an open type→renderer dispatch table, and
// any per-node problem — unsupported type, unresolved child
// reference, a renderer error — becomes a visible, clearly-marked
// fallback node scoped to that node only. Parsing and rendering are
// decoupled on purpose: an unrecognized component type parses fine
// upstream and only degrades here, locally.
//
// All literal text and attribute content is escaped for the output
// format; model-supplied strings cannot inject markup.
package render

import (
	"strconv"

	"github.com/cklxx/canvas/lib/binding"
	"github.com/cklxx/canvas/lib/schema"
)

// maxDepth bounds the render recursion. Documents deeper than this
// (usually a reference cycle routed through template expansion)
// degrade to a fallback node instead of overflowing the stack.
const maxDepth = 64

// NodeFunc renders one element. Returning an error routes the node
// through the backend's fallback; the rest of the tree is unaffected.
type NodeFunc func(ctx *Context, element *schema.Element) (string, error)

// Backend is one output format. Both shipped backends expose their
// dispatch table as a public map, so hosts can register additional
// component types or override built-ins.
type Backend interface {
	// RenderElement dispatches one element by type. An error (for
	// example an unsupported type) triggers the fallback path.
	RenderElement(ctx *Context, element *schema.Element) (string, error)

	// RenderText renders a literal text child, escaped for the
	// output format.
	RenderText(text string) string

	// RenderFallback renders the visible placeholder for a node that
	// could not be rendered. elementType may be empty when the
	// failing node is unknown (a dangling reference).
	RenderFallback(elementType, reason string) string

	// FinishDocument wraps the rendered root into the final
	// self-contained document string.
	FinishDocument(body string, document *schema.Document) string
}

// Render walks document with backend and returns the final document
// string. A nil document or nil root renders an empty (but valid)
// document, not an error.
func Render(document *schema.Document, backend Backend) string {
	scope := binding.Resolver{BasePath: "/"}
	if document != nil {
		scope.Model = document.DataModel
	}
	ctx := &Context{Document: document, Scope: scope, backend: backend}

	body := ""
	switch {
	case document == nil:
	case document.Root != nil:
		body = ctx.Node(document.Root)
	case document.RootKey != "":
		// The producer named a root that was never registered.
		body = backend.RenderFallback("",
			"root "+strconv.Quote(document.RootKey)+" does not resolve")
	}
	return backend.FinishDocument(body, document)
}

// Context carries the per-node render state: the document, the
// binding scope (which template expansion narrows per collection
// entry), and the recursion depth.
type Context struct {
	Document *schema.Document

	// Scope resolves bound property values for the current node.
	Scope binding.Resolver

	backend Backend
	depth   int
}

// Node renders one element with per-node fallback.
func (ctx *Context) Node(element *schema.Element) string {
	if element == nil {
		return ctx.backend.RenderFallback("", "missing element")
	}
	if ctx.depth >= maxDepth {
		return ctx.backend.RenderFallback(element.Type, "nesting depth limit reached")
	}
	output, err := ctx.backend.RenderElement(ctx, element)
	if err != nil {
		return ctx.backend.RenderFallback(element.Type, err.Error())
	}
	return output
}

// RenderedChild is one rendered child plus its flex sizing weight
// (zero means equal sizing).
type RenderedChild struct {
	Output string
	Weight float64
}

// Children expands the element's children (explicit lists and
// templates alike) and renders each under its own scope. Unresolved
// references render as fallback nodes; literal text children render
// escaped.
func (ctx *Context) Children(element *schema.Element) []RenderedChild {
	expanded := Expand(ctx.Document, element, ctx.Scope)
	rendered := make([]RenderedChild, 0, len(expanded))
	for _, child := range expanded {
		switch {
		case child.Element != nil:
			sub := &Context{
				Document: ctx.Document,
				Scope:    child.Scope,
				backend:  ctx.backend,
				depth:    ctx.depth + 1,
			}
			rendered = append(rendered, RenderedChild{
				Output: sub.Node(child.Element),
				Weight: child.Element.Weight,
			})
		case child.Ref != "":
			rendered = append(rendered, RenderedChild{
				Output: ctx.backend.RenderFallback("", "unresolved reference "+child.Ref),
			})
		default:
			rendered = append(rendered, RenderedChild{
				Output: ctx.backend.RenderText(child.Text),
			})
		}
	}
	return rendered
}

// Prop resolves one property through the binding resolver. The
// boolean is false when the property is absent or its path reference
// does not resolve.
func (ctx *Context) Prop(element *schema.Element, name string) (any, bool) {
	if element.Props == nil {
		return nil, false
	}
	raw, ok := element.Props[name]
	if !ok {
		return nil, false
	}
	return ctx.Scope.Resolve(raw)
}

// StringProp resolves a property and coerces scalars to a string.
func (ctx *Context) StringProp(element *schema.Element, name string) (string, bool) {
	value, ok := ctx.Prop(element, name)
	if !ok {
		return "", false
	}
	return coerceString(value)
}

// coerceString converts resolved scalar values to their display
// string. Containers do not coerce.
func coerceString(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// NumberProp resolves a numeric property.
func (ctx *Context) NumberProp(element *schema.Element, name string) (float64, bool) {
	value, ok := ctx.Prop(element, name)
	if !ok {
		return 0, false
	}
	number, ok := value.(float64)
	return number, ok
}

// BoolProp resolves a boolean property.
func (ctx *Context) BoolProp(element *schema.Element, name string) (bool, bool) {
	value, ok := ctx.Prop(element, name)
	if !ok {
		return false, false
	}
	flag, ok := value.(bool)
	return flag, ok
}
