// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func renderMD(t *testing.T, input string) string {
	t.Helper()
	return ansi.Strip(newTestTerminal().renderMarkdown(input))
}

func TestRenderMarkdownBasics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "heading_and_paragraph",
			input: "# Title\n\nBody text here.",
			want:  []string{"Title", "Body text here."},
		},
		{
			name:  "soft_breaks_reflow",
			input: "one\ntwo",
			want:  []string{"one two"},
		},
		{
			name:  "unordered_list",
			input: "- first\n- second",
			want:  []string{"• first", "• second"},
		},
		{
			name:  "ordered_list",
			input: "1. first\n2. second",
			want:  []string{"1. first", "2. second"},
		},
		{
			name:  "nested_list_indents",
			input: "- outer\n  - inner",
			want:  []string{"• outer", "  • inner"},
		},
		{
			name:  "blockquote_prefix",
			input: "> quoted line",
			want:  []string{"│ quoted line"},
		},
		{
			name:  "fenced_code_block",
			input: "```\nliteral  spacing\n```",
			want:  []string{"literal  spacing"},
		},
		{
			name:  "inline_code",
			input: "run `go version` now",
			want:  []string{"go version"},
		},
		{
			name:  "link_shows_destination",
			input: "[docs](https://example.com)",
			want:  []string{"docs", "(https://example.com)"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			output := renderMD(t, test.input)
			for _, want := range test.want {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := newTestTerminal().renderMarkdown(""); got != "" {
		t.Errorf("renderMarkdown(\"\") = %q, want empty", got)
	}
}

func TestRenderMarkdownWrapsLongLines(t *testing.T) {
	backend := NewTerminal(newTestTerminal().Theme, 24)
	input := strings.Repeat("word ", 20)
	output := ansi.Strip(backend.renderMarkdown(input))
	for _, line := range strings.Split(output, "\n") {
		if len(line) > 24 {
			t.Errorf("line exceeds width 24: %q", line)
		}
	}
}
