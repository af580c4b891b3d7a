// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package theme defines the color palette for Canvas terminal
// rendering. All colors use lipgloss ANSI 256-color codes for broad
// terminal compatibility. A built-in dark-terminal default can be
// overlaid from a YAML file: only the fields present in the file
// change, everything else keeps its default.
package theme

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Theme is the palette and code style used by the terminal renderer.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Headings and emphasized chrome.
	Heading lipgloss.Color
	Accent  lipgloss.Color

	// Container borders (Card, fallback boxes).
	Border lipgloss.Color

	// Fallback nodes: visible placeholders for unresolved content.
	FallbackForeground lipgloss.Color
	FallbackBackground lipgloss.Color

	// Interactive-looking widgets (Button, TextField) rendered as
	// inert chrome.
	ControlForeground lipgloss.Color
	ControlBackground lipgloss.Color

	// CodeStyle is the Chroma style name for syntax highlighting.
	CodeStyle string
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Heading: lipgloss.Color("255"),
	Accent:  lipgloss.Color("75"),

	Border: lipgloss.Color("240"),

	FallbackForeground: lipgloss.Color("214"),
	FallbackBackground: lipgloss.Color("52"),

	ControlForeground: lipgloss.Color("255"),
	ControlBackground: lipgloss.Color("238"),

	CodeStyle: "monokai",
}

// overlay is the YAML shape of a theme file. Every field is optional.
type overlay struct {
	NormalText         string `yaml:"normal_text"`
	FaintText          string `yaml:"faint_text"`
	Heading            string `yaml:"heading"`
	Accent             string `yaml:"accent"`
	Border             string `yaml:"border"`
	FallbackForeground string `yaml:"fallback_foreground"`
	FallbackBackground string `yaml:"fallback_background"`
	ControlForeground  string `yaml:"control_foreground"`
	ControlBackground  string `yaml:"control_background"`
	CodeStyle          string `yaml:"code_style"`
}

// LoadFile reads a YAML theme overlay and applies it on top of
// [DefaultTheme]. There is no search path: the caller names the file
// explicitly or passes "" for the plain default.
func LoadFile(path string) (Theme, error) {
	result := DefaultTheme
	if path == "" {
		return result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme %s: %w", path, err)
	}

	var parsed overlay
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Theme{}, fmt.Errorf("parsing theme %s: %w", path, err)
	}

	applyColor(&result.NormalText, parsed.NormalText)
	applyColor(&result.FaintText, parsed.FaintText)
	applyColor(&result.Heading, parsed.Heading)
	applyColor(&result.Accent, parsed.Accent)
	applyColor(&result.Border, parsed.Border)
	applyColor(&result.FallbackForeground, parsed.FallbackForeground)
	applyColor(&result.FallbackBackground, parsed.FallbackBackground)
	applyColor(&result.ControlForeground, parsed.ControlForeground)
	applyColor(&result.ControlBackground, parsed.ControlBackground)
	if parsed.CodeStyle != "" {
		result.CodeStyle = parsed.CodeStyle
	}

	return result, nil
}

func applyColor(target *lipgloss.Color, value string) {
	if value != "" {
		*target = lipgloss.Color(value)
	}
}
