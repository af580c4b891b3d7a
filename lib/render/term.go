// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/cklxx/canvas/lib/schema"
	"github.com/cklxx/canvas/lib/theme"
)

// wrapBreakpoints are the characters ansi.Wrap may break words at.
const wrapBreakpoints = " ,.;-+|"

// Terminal renders a document as lipgloss-styled terminal text. The
// color profile is forced to ANSI256 so output is deterministic in
// test environments and pipelines with no TTY.
type Terminal struct {
	// Table is the open type→renderer dispatch table.
	Table map[string]NodeFunc

	// Width is the output width in cells.
	Width int

	// Theme is the color palette.
	Theme theme.Theme

	styles *lipgloss.Renderer
}

// NewTerminal returns a terminal backend with the standard component
// catalog registered. A non-positive width defaults to 80.
func NewTerminal(palette theme.Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	styles := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	backend := &Terminal{Width: width, Theme: palette, styles: styles}
	backend.Table = map[string]NodeFunc{
		"Column":      backend.column,
		"Row":         backend.row,
		"List":        backend.list,
		"Card":        backend.card,
		"Text":        backend.text,
		"Heading":     backend.heading,
		"Markdown":    backend.markdownNode,
		"Code":        backend.code,
		"Image":       backend.media,
		"Video":       backend.media,
		"AudioPlayer": backend.media,
		"Button":      backend.button,
		"TextField":   backend.textField,
		"CheckBox":    backend.checkBox,
		"Slider":      backend.slider,
		"Divider":     backend.divider,
		"Icon":        backend.icon,
	}
	return backend
}

func (t *Terminal) RenderElement(ctx *Context, element *schema.Element) (string, error) {
	renderNode, ok := t.Table[element.Type]
	if !ok {
		return "", fmt.Errorf("unsupported component type %q", element.Type)
	}
	return renderNode(ctx, element)
}

func (t *Terminal) RenderText(text string) string {
	return t.newStyle().Foreground(t.Theme.NormalText).
		Render(ansi.Wrap(sanitizeTerminal(text), t.Width, wrapBreakpoints))
}

// RenderFallback renders the visible placeholder: a bordered box so
// the gap is distinguishable from intentionally empty content.
func (t *Terminal) RenderFallback(elementType, reason string) string {
	label := reason
	if elementType != "" {
		label = elementType + ": " + reason
	}
	return t.newStyle().
		Foreground(t.Theme.FallbackForeground).
		Background(t.Theme.FallbackBackground).
		Padding(0, 1).
		Render("⚠ " + sanitizeTerminal(label))
}

func (t *Terminal) FinishDocument(body string, document *schema.Document) string {
	return strings.TrimRight(body, "\n")
}

func (t *Terminal) newStyle() lipgloss.Style {
	return t.styles.NewStyle()
}

func (t *Terminal) column(ctx *Context, element *schema.Element) (string, error) {
	children := ctx.Children(element)
	parts := make([]string, 0, len(children))
	for _, child := range children {
		parts = append(parts, child.Output)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
}

// row lays children out side by side. Weights allocate the available
// width proportionally; unweighted children count as weight 1.
func (t *Terminal) row(ctx *Context, element *schema.Element) (string, error) {
	children := ctx.Children(element)
	if len(children) == 0 {
		return "", nil
	}

	const gap = 2
	available := t.Width - gap*(len(children)-1)
	if available < len(children) {
		available = len(children)
	}

	totalWeight := 0.0
	for _, child := range children {
		totalWeight += weightOrOne(child.Weight)
	}

	parts := make([]string, 0, len(children)*2-1)
	for index, child := range children {
		if index > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		columnWidth := int(float64(available) * weightOrOne(child.Weight) / totalWeight)
		if columnWidth < 1 {
			columnWidth = 1
		}
		parts = append(parts, t.newStyle().Width(columnWidth).Render(child.Output))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...), nil
}

func weightOrOne(weight float64) float64 {
	if weight > 0 {
		return weight
	}
	return 1
}

func (t *Terminal) list(ctx *Context, element *schema.Element) (string, error) {
	children := ctx.Children(element)
	parts := make([]string, 0, len(children))
	bullet := t.newStyle().Foreground(t.Theme.Accent).Render("• ")
	for _, child := range children {
		parts = append(parts, indentBlock(child.Output, bullet, "  "))
	}
	if len(parts) == 0 {
		return "", nil
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
}

func (t *Terminal) card(ctx *Context, element *schema.Element) (string, error) {
	inner, err := t.column(ctx, element)
	if err != nil {
		return "", err
	}
	style := t.newStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Theme.Border).
		Padding(0, 1).
		Width(t.Width - 2)
	if title, ok := ctx.StringProp(element, "title"); ok && title != "" {
		heading := t.newStyle().Bold(true).Foreground(t.Theme.Heading).
			Render(sanitizeTerminal(title))
		if inner == "" {
			inner = heading
		} else {
			inner = heading + "\n" + inner
		}
	}
	return style.Render(inner), nil
}

func (t *Terminal) text(ctx *Context, element *schema.Element) (string, error) {
	content, _ := ctx.StringProp(element, "text")
	return t.RenderText(content), nil
}

func (t *Terminal) heading(ctx *Context, element *schema.Element) (string, error) {
	content, _ := ctx.StringProp(element, "text")
	return t.newStyle().Bold(true).Foreground(t.Theme.Heading).
		Render(ansi.Wrap(sanitizeTerminal(content), t.Width, wrapBreakpoints)), nil
}

func (t *Terminal) markdownNode(ctx *Context, element *schema.Element) (string, error) {
	content, _ := ctx.StringProp(element, "text")
	return t.renderMarkdown(content), nil
}

func (t *Terminal) code(ctx *Context, element *schema.Element) (string, error) {
	content, ok := ctx.StringProp(element, "code")
	if !ok {
		content, _ = ctx.StringProp(element, "text")
	}
	language, _ := ctx.StringProp(element, "language")
	return indentBlock(t.highlightCode(content, language), "  ", "  "), nil
}

// highlightCode syntax-highlights code with Chroma, falling back to
// FaintText-styled plain text for unknown languages.
func (t *Terminal) highlightCode(content, language string) string {
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, content, language, "terminal256", t.Theme.CodeStyle); err == nil {
			return strings.TrimRight(highlighted.String(), "\n")
		}
	}
	return t.newStyle().Foreground(t.Theme.FaintText).Render(content)
}

func (t *Terminal) media(ctx *Context, element *schema.Element) (string, error) {
	url, _ := ctx.StringProp(element, "url")
	alt, _ := ctx.StringProp(element, "alt")
	label := alt
	if label == "" {
		label = element.Type
	}
	line := fmt.Sprintf("[%s] %s", label, url)
	return t.newStyle().Foreground(t.Theme.FaintText).
		Render(ansi.Wrap(sanitizeTerminal(line), t.Width, wrapBreakpoints)), nil
}

func (t *Terminal) button(ctx *Context, element *schema.Element) (string, error) {
	label, _ := ctx.StringProp(element, "label")
	if label == "" {
		label, _ = ctx.StringProp(element, "text")
	}
	return t.newStyle().
		Foreground(t.Theme.ControlForeground).
		Background(t.Theme.ControlBackground).
		Padding(0, 1).
		Render(sanitizeTerminal(label)), nil
}

func (t *Terminal) textField(ctx *Context, element *schema.Element) (string, error) {
	label, _ := ctx.StringProp(element, "label")
	value, _ := ctx.StringProp(element, "text")
	if value == "" {
		value, _ = ctx.StringProp(element, "placeholder")
	}
	field := t.newStyle().Underline(true).Foreground(t.Theme.NormalText).
		Render(sanitizeTerminal(value) + strings.Repeat(" ", 4))
	if label == "" {
		return field, nil
	}
	return sanitizeTerminal(label) + ": " + field, nil
}

func (t *Terminal) checkBox(ctx *Context, element *schema.Element) (string, error) {
	label, _ := ctx.StringProp(element, "label")
	checked, _ := ctx.BoolProp(element, "value")
	box := "☐"
	if checked {
		box = "☑"
	}
	return t.newStyle().Foreground(t.Theme.NormalText).
		Render(box + " " + sanitizeTerminal(label)), nil
}

func (t *Terminal) slider(ctx *Context, element *schema.Element) (string, error) {
	value, _ := ctx.NumberProp(element, "value")
	minimum, _ := ctx.NumberProp(element, "min")
	maximum, hasMax := ctx.NumberProp(element, "max")
	if !hasMax || maximum <= minimum {
		maximum = minimum + 100
	}

	barWidth := t.Width / 2
	if barWidth < 10 {
		barWidth = 10
	}
	position := int(float64(barWidth) * (value - minimum) / (maximum - minimum))
	if position < 0 {
		position = 0
	}
	if position > barWidth {
		position = barWidth
	}
	bar := strings.Repeat("━", position) + "●" + strings.Repeat("─", barWidth-position)
	return t.newStyle().Foreground(t.Theme.Accent).Render(bar), nil
}

func (t *Terminal) divider(ctx *Context, element *schema.Element) (string, error) {
	return t.newStyle().Foreground(t.Theme.Border).
		Render(strings.Repeat("─", t.Width)), nil
}

func (t *Terminal) icon(ctx *Context, element *schema.Element) (string, error) {
	name, _ := ctx.StringProp(element, "name")
	return t.newStyle().Foreground(t.Theme.Accent).
		Render("◆ " + sanitizeTerminal(name)), nil
}

// indentBlock prefixes the first line of block with first and every
// following line with rest, keeping multi-line children aligned.
func indentBlock(block, first, rest string) string {
	lines := strings.Split(block, "\n")
	var out strings.Builder
	for index, line := range lines {
		if index == 0 {
			out.WriteString(first)
		} else {
			out.WriteString("\n")
			out.WriteString(rest)
		}
		out.WriteString(line)
	}
	return out.String()
}

// sanitizeTerminal strips control characters from model-supplied text
// so it cannot inject escape sequences into the output stream. Tabs
// and newlines survive; everything else below 0x20 and 0x7f is
// dropped.
func sanitizeTerminal(text string) string {
	if !strings.ContainsFunc(text, isTerminalControl) {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	for _, r := range text {
		if isTerminalControl(r) {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isTerminalControl(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f
}
