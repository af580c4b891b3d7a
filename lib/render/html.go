// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/cklxx/canvas/lib/schema"
)

// HTML renders a document as one self-contained HTML string: inline
// stylesheet, no scripts, no external assets beyond media URLs the
// payload already carries. All text and attribute content is escaped;
// markdown renders through goldmark with raw HTML disabled.
type HTML struct {
	// Table is the open type→renderer dispatch table. Hosts may add
	// entries or override the built-ins before rendering.
	Table map[string]NodeFunc

	// Title is the document title. Defaults to "Canvas".
	Title string

	// CodeStyle is the Chroma style for Code components.
	CodeStyle string
}

// NewHTML returns an HTML backend with the standard component catalog
// registered.
func NewHTML() *HTML {
	backend := &HTML{
		Title:     "Canvas",
		CodeStyle: "monokai",
	}
	backend.Table = map[string]NodeFunc{
		"Column":      backend.column,
		"Row":         backend.row,
		"List":        backend.list,
		"Card":        backend.card,
		"Text":        backend.text,
		"Heading":     backend.heading,
		"Markdown":    backend.markdownNode,
		"Code":        backend.code,
		"Image":       backend.image,
		"Video":       backend.video,
		"AudioPlayer": backend.audio,
		"Button":      backend.button,
		"TextField":   backend.textField,
		"CheckBox":    backend.checkBox,
		"Slider":      backend.slider,
		"Divider":     backend.divider,
		"Icon":        backend.icon,
	}
	return backend
}

func (h *HTML) RenderElement(ctx *Context, element *schema.Element) (string, error) {
	renderNode, ok := h.Table[element.Type]
	if !ok {
		return "", fmt.Errorf("unsupported component type %q", element.Type)
	}
	return renderNode(ctx, element)
}

func (h *HTML) RenderText(text string) string {
	return `<span class="canvas-text">` + html.EscapeString(text) + `</span>`
}

func (h *HTML) RenderFallback(elementType, reason string) string {
	label := reason
	if elementType != "" {
		label = elementType + ": " + reason
	}
	return `<div class="canvas-fallback" role="note">&#9888; ` +
		html.EscapeString(label) + `</div>`
}

func (h *HTML) FinishDocument(body string, document *schema.Document) string {
	title := h.Title
	if title == "" {
		title = "Canvas"
	}
	var out strings.Builder
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	out.WriteString(html.EscapeString(title))
	out.WriteString("</title>\n<style>\n")
	out.WriteString(documentCSS)
	out.WriteString("</style>\n</head>\n<body>\n")
	out.WriteString(body)
	out.WriteString("\n</body>\n</html>\n")
	return out.String()
}

// documentCSS is the inline stylesheet keeping the output
// self-contained. Fallback nodes stand out without breaking the
// surrounding flex layout.
const documentCSS = `body { font-family: system-ui, sans-serif; margin: 1rem; }
.canvas-column { display: flex; flex-direction: column; gap: 0.5rem; }
.canvas-row { display: flex; flex-direction: row; gap: 0.5rem; align-items: flex-start; }
.canvas-list { display: flex; flex-direction: column; gap: 0.25rem; }
.canvas-card { border: 1px solid #d0d0d0; border-radius: 8px; padding: 0.75rem; }
.canvas-text { margin: 0; }
.canvas-fallback { border: 1px dashed #cc8800; background: #fff7e6; color: #8a5a00; padding: 0.25rem 0.5rem; border-radius: 4px; font-size: 0.875rem; }
.canvas-divider { border: none; border-top: 1px solid #d0d0d0; margin: 0.5rem 0; }
.canvas-code { background: #f5f5f5; padding: 0.5rem; border-radius: 4px; overflow-x: auto; }
.canvas-media { max-width: 100%; }
`

func (h *HTML) column(ctx *Context, element *schema.Element) (string, error) {
	return h.container(ctx, element, "canvas-column"), nil
}

func (h *HTML) row(ctx *Context, element *schema.Element) (string, error) {
	return h.container(ctx, element, "canvas-row"), nil
}

func (h *HTML) list(ctx *Context, element *schema.Element) (string, error) {
	return h.container(ctx, element, "canvas-list"), nil
}

func (h *HTML) card(ctx *Context, element *schema.Element) (string, error) {
	return h.container(ctx, element, "canvas-card"), nil
}

// container renders a flex container; child weights become flex-grow
// factors so proportional sizing survives into the page layout.
func (h *HTML) container(ctx *Context, element *schema.Element, class string) string {
	var out strings.Builder
	out.WriteString(`<div class="` + class + `">`)
	for _, child := range ctx.Children(element) {
		if child.Weight > 0 {
			fmt.Fprintf(&out, `<div style="flex-grow:%g">%s</div>`, child.Weight, child.Output)
		} else {
			out.WriteString(child.Output)
		}
	}
	out.WriteString(`</div>`)
	return out.String()
}

func (h *HTML) text(ctx *Context, element *schema.Element) (string, error) {
	content, _ := ctx.StringProp(element, "text")
	return `<p class="canvas-text">` + html.EscapeString(content) + `</p>`, nil
}

func (h *HTML) heading(ctx *Context, element *schema.Element) (string, error) {
	content, _ := ctx.StringProp(element, "text")
	level := 2
	if number, ok := ctx.NumberProp(element, "level"); ok {
		level = int(number)
	} else if text, ok := ctx.StringProp(element, "level"); ok {
		// Producers write levels as "1".."6" strings too.
		fmt.Sscanf(text, "%d", &level)
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(content), level), nil
}

func (h *HTML) markdownNode(ctx *Context, element *schema.Element) (string, error) {
	content, _ := ctx.StringProp(element, "text")
	var out strings.Builder
	out.WriteString(`<div class="canvas-markdown">`)
	// goldmark's default configuration drops raw HTML blocks, so
	// model-supplied markdown cannot smuggle markup through.
	var converted strings.Builder
	if err := getMarkdownParser().Convert([]byte(content), &converted); err != nil {
		out.WriteString("<p>" + html.EscapeString(content) + "</p>")
	} else {
		out.WriteString(converted.String())
	}
	out.WriteString(`</div>`)
	return out.String(), nil
}

func (h *HTML) code(ctx *Context, element *schema.Element) (string, error) {
	content, ok := ctx.StringProp(element, "code")
	if !ok {
		content, _ = ctx.StringProp(element, "text")
	}
	language, _ := ctx.StringProp(element, "language")

	var highlighted strings.Builder
	if language != "" {
		if err := quick.Highlight(&highlighted, content, language, "html", h.CodeStyle); err == nil {
			return `<div class="canvas-code">` + highlighted.String() + `</div>`, nil
		}
	}
	return `<pre class="canvas-code"><code>` + html.EscapeString(content) + `</code></pre>`, nil
}

func (h *HTML) image(ctx *Context, element *schema.Element) (string, error) {
	url, _ := ctx.StringProp(element, "url")
	alt, _ := ctx.StringProp(element, "alt")
	if !safeMediaURL(url) {
		return h.RenderFallback(element.Type, "unusable media URL"), nil
	}
	return fmt.Sprintf(`<img class="canvas-media" src="%s" alt="%s">`,
		html.EscapeString(url), html.EscapeString(alt)), nil
}

func (h *HTML) video(ctx *Context, element *schema.Element) (string, error) {
	return h.mediaTag(ctx, element, "video")
}

func (h *HTML) audio(ctx *Context, element *schema.Element) (string, error) {
	return h.mediaTag(ctx, element, "audio")
}

func (h *HTML) mediaTag(ctx *Context, element *schema.Element, tag string) (string, error) {
	url, _ := ctx.StringProp(element, "url")
	if !safeMediaURL(url) {
		return h.RenderFallback(element.Type, "unusable media URL"), nil
	}
	return fmt.Sprintf(`<%s class="canvas-media" controls src="%s"></%s>`,
		tag, html.EscapeString(url), tag), nil
}

func (h *HTML) button(ctx *Context, element *schema.Element) (string, error) {
	label, _ := ctx.StringProp(element, "label")
	if label == "" {
		label, _ = ctx.StringProp(element, "text")
	}
	// Event behavior is out of scope; the button renders as inert
	// chrome.
	return `<button type="button" disabled>` + html.EscapeString(label) + `</button>`, nil
}

func (h *HTML) textField(ctx *Context, element *schema.Element) (string, error) {
	label, _ := ctx.StringProp(element, "label")
	value, _ := ctx.StringProp(element, "text")
	placeholder, _ := ctx.StringProp(element, "placeholder")
	return fmt.Sprintf(`<label>%s <input type="text" value="%s" placeholder="%s" readonly></label>`,
		html.EscapeString(label), html.EscapeString(value), html.EscapeString(placeholder)), nil
}

func (h *HTML) checkBox(ctx *Context, element *schema.Element) (string, error) {
	label, _ := ctx.StringProp(element, "label")
	checked, _ := ctx.BoolProp(element, "value")
	mark := ""
	if checked {
		mark = " checked"
	}
	return fmt.Sprintf(`<label><input type="checkbox"%s disabled> %s</label>`,
		mark, html.EscapeString(label)), nil
}

func (h *HTML) slider(ctx *Context, element *schema.Element) (string, error) {
	value, _ := ctx.NumberProp(element, "value")
	minimum, _ := ctx.NumberProp(element, "min")
	maximum, hasMax := ctx.NumberProp(element, "max")
	if !hasMax {
		maximum = 100
	}
	return fmt.Sprintf(`<input type="range" min="%g" max="%g" value="%g" disabled>`,
		minimum, maximum, value), nil
}

func (h *HTML) divider(ctx *Context, element *schema.Element) (string, error) {
	return `<hr class="canvas-divider">`, nil
}

func (h *HTML) icon(ctx *Context, element *schema.Element) (string, error) {
	name, _ := ctx.StringProp(element, "name")
	return `<span class="canvas-icon" title="` + html.EscapeString(name) + `">&#9670;</span>`, nil
}

// safeMediaURL accepts http(s), data URIs, and relative paths.
// Anything with another scheme (javascript:, file:, ...) is refused.
func safeMediaURL(url string) bool {
	if url == "" {
		return false
	}
	lowered := strings.ToLower(strings.TrimSpace(url))
	switch {
	case strings.HasPrefix(lowered, "http://"), strings.HasPrefix(lowered, "https://"):
		return true
	case strings.HasPrefix(lowered, "data:image/"), strings.HasPrefix(lowered, "data:video/"),
		strings.HasPrefix(lowered, "data:audio/"):
		return true
	case strings.Contains(lowered, ":"):
		return false
	default:
		return true
	}
}
