// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownParser is shared: the configuration never changes and the
// goldmark parser is safe to reuse across calls.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// renderMarkdown parses markdown and renders it as styled terminal
// text. Soft line breaks become spaces so hard-wrapped source reflows
// at the output width; code blocks keep their formatting and get
// Chroma highlighting.
func (t *Terminal) renderMarkdown(input string) string {
	if input == "" {
		return ""
	}
	source := []byte(sanitizeTerminal(input))
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	walker := &markdownWalker{backend: t, source: source}
	ast.Walk(document, walker.walk)

	return strings.TrimRight(walker.output.String(), "\n")
}

// markdownWalker accumulates inline content per block and flushes it
// word-wrapped when the block closes — the accumulate-then-wrap
// pattern terminal output needs.
type markdownWalker struct {
	backend *Terminal
	source  []byte

	output strings.Builder
	inline strings.Builder

	boldDepth   int
	italicDepth int
	quoteDepth  int
	listStack   []listState
}

type listState struct {
	ordered bool
	index   int
	// marked is set once the item's first block has carried the
	// marker; later blocks in the same item indent instead.
	marked bool
}

func (w *markdownWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch typed := node.(type) {

	case *ast.Heading:
		if entering {
			w.inline.Reset()
		} else {
			content := w.backend.newStyle().Bold(true).
				Foreground(w.backend.Theme.Heading).
				Render(w.inline.String())
			w.writeBlock(content)
			w.inline.Reset()
		}

	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			w.inline.Reset()
		} else if len(w.listStack) > 0 {
			// Tight list items hold their text in a TextBlock, loose
			// ones in a Paragraph; both flush with the item marker.
			w.flushListItem()
		} else {
			w.flushInline()
		}

	case *ast.Text:
		if entering {
			w.inline.WriteString(w.styledText(string(typed.Segment.Value(w.source))))
			if typed.SoftLineBreak() {
				w.inline.WriteString(" ")
			}
			if typed.HardLineBreak() {
				w.inline.WriteString("\n")
			}
		}

	case *ast.Emphasis:
		if typed.Level >= 2 {
			w.boldDepth += delta(entering)
		} else {
			w.italicDepth += delta(entering)
		}

	case *ast.CodeSpan:
		if entering {
			code := string(codeSpanText(typed, w.source))
			w.inline.WriteString(w.backend.newStyle().
				Foreground(w.backend.Theme.Accent).Render(code))
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock:
		if entering {
			language := string(typed.Language(w.source))
			w.writeBlock(w.backend.highlightCode(blockLines(typed, w.source), language))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			w.writeBlock(w.backend.highlightCode(blockLines(typed, w.source), ""))
		}
		return ast.WalkSkipChildren, nil

	case *ast.List:
		if entering {
			w.listStack = append(w.listStack, listState{ordered: typed.IsOrdered(), index: typed.Start})
		} else {
			w.listStack = w.listStack[:len(w.listStack)-1]
		}

	case *ast.ListItem:
		if entering {
			w.inline.Reset()
			if len(w.listStack) > 0 {
				w.listStack[len(w.listStack)-1].marked = false
			}
		} else {
			w.flushListItem()
		}

	case *ast.Blockquote:
		w.quoteDepth += delta(entering)

	case *ast.Link:
		if !entering {
			w.inline.WriteString(w.backend.newStyle().
				Foreground(w.backend.Theme.FaintText).
				Render(" (" + string(typed.Destination) + ")"))
		}

	case *ast.AutoLink:
		if entering {
			w.inline.WriteString(w.backend.newStyle().
				Foreground(w.backend.Theme.Accent).
				Render(string(typed.URL(w.source))))
		}

	case *ast.ThematicBreak:
		if entering {
			w.writeBlock(w.backend.newStyle().
				Foreground(w.backend.Theme.Border).
				Render(strings.Repeat("─", w.backend.Width)))
		}
	}

	return ast.WalkContinue, nil
}

func delta(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

func (w *markdownWalker) styledText(content string) string {
	style := w.backend.newStyle().Foreground(w.backend.Theme.NormalText)
	if w.boldDepth > 0 {
		style = style.Bold(true)
	}
	if w.italicDepth > 0 {
		style = style.Italic(true)
	}
	return style.Render(content)
}

// flushInline word-wraps the accumulated inline content and writes it
// as a block, with blockquote prefixes applied.
func (w *markdownWalker) flushInline() {
	content := w.inline.String()
	w.inline.Reset()
	if content == "" {
		return
	}
	width := w.backend.Width - 2*w.quoteDepth - 2*len(w.listStack)
	if width < 16 {
		width = 16
	}
	w.writeBlock(ansi.Wrap(content, width, wrapBreakpoints))
}

// flushListItem is flushInline with the list marker on the first line.
func (w *markdownWalker) flushListItem() {
	content := w.inline.String()
	w.inline.Reset()
	if content == "" {
		return
	}
	if len(w.listStack) == 0 {
		w.writeBlock(content)
		return
	}
	state := &w.listStack[len(w.listStack)-1]
	marker := "• "
	if state.ordered {
		marker = strconv.Itoa(state.index) + ". "
	}
	indent := strings.Repeat("  ", len(w.listStack)-1)
	rest := indent + strings.Repeat(" ", len(marker))
	first := rest
	if !state.marked {
		first = indent + w.backend.newStyle().Foreground(w.backend.Theme.Accent).Render(marker)
		state.marked = true
		if state.ordered {
			state.index++
		}
	}
	w.writeBlock(indentBlock(content, first, rest))
}

// writeBlock appends one block of output, applying blockquote
// prefixes and a trailing newline.
func (w *markdownWalker) writeBlock(content string) {
	if content == "" {
		return
	}
	prefix := strings.Repeat("│ ", w.quoteDepth)
	if prefix != "" {
		prefix = w.backend.newStyle().Foreground(w.backend.Theme.Border).Render(prefix)
		content = indentBlock(content, prefix, prefix)
	}
	w.output.WriteString(content)
	w.output.WriteString("\n")
}

// codeSpanText collects the text segments of a code span.
func codeSpanText(span *ast.CodeSpan, source []byte) []byte {
	var out []byte
	for child := span.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			out = append(out, textNode.Segment.Value(source)...)
		}
	}
	return out
}

// blockLines concatenates the raw lines of a code block.
func blockLines(node ast.Node, source []byte) string {
	var out strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		out.Write(segment.Value(source))
	}
	return strings.TrimRight(out.String(), "\n")
}
