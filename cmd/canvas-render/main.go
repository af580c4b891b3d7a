// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/cklxx/canvas/lib/codec"
	"github.com/cklxx/canvas/lib/payload"
	"github.com/cklxx/canvas/lib/render"
	"github.com/cklxx/canvas/lib/rendertree"
	"github.com/cklxx/canvas/lib/schema"
	"github.com/cklxx/canvas/lib/surface"
	"github.com/cklxx/canvas/lib/theme"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		format    = pflag.String("format", "term", "output format: term or html")
		width     = pflag.Int("width", 0, "output width in cells (0: detect, fall back to 80)")
		themePath = pflag.String("theme", "", "YAML theme overlay for terminal output")
		surfaceID = pflag.String("surface", "", "surface id to render (default: first ready surface)")
		statePath = pflag.String("state", "", "snapshot file to load surface state from and save it back to")
		verbose   = pflag.Bool("verbose", false, "log diagnostics to stderr")
	)
	pflag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	input, err := readInput(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	messages, err := payload.Parse(input)
	if err != nil {
		var parseErr *payload.Error
		if errors.As(err, &parseErr) {
			fmt.Fprintf(os.Stderr, "error: unable to render: %v\n", parseErr)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 2
	}
	logger.Debug("payload parsed", "messages", len(messages))

	state := surface.NewState()
	if *statePath != "" {
		if err := loadState(*statePath, state, logger); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
	}

	document := buildDocument(messages, state, *surfaceID, logger)

	if *statePath != "" {
		if err := saveState(*statePath, state); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
	}

	backend, err := newBackend(*format, *width, *themePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	fmt.Println(render.Render(document, backend))
	return 0
}

// readInput reads the payload from the named file or stdin.
func readInput(arguments []string) (string, error) {
	if len(arguments) > 1 {
		return "", fmt.Errorf("expected at most one payload file, got %d arguments", len(arguments))
	}
	if len(arguments) == 1 {
		data, err := os.ReadFile(arguments[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", arguments[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// buildDocument routes the parsed messages to the matching protocol
// builder. A batch carrying any known surface-protocol message kind
// is a surface stream; everything else is a render-tree payload.
func buildDocument(messages []json.RawMessage, state *surface.State, surfaceID string, logger *slog.Logger) *schema.Document {
	if isSurfaceStream(messages) {
		state.Apply(messages)
		target := pickSurface(state, surfaceID)
		if target == nil {
			logger.Debug("no renderable surface")
			return &schema.Document{}
		}
		logger.Debug("rendering surface", "surface", target.ID, "root", target.RootID)
		return target.Document()
	}
	logger.Debug("rendering tree payload")
	return rendertree.Build(messages)
}

func isSurfaceStream(messages []json.RawMessage) bool {
	for _, raw := range messages {
		if schema.DecodeMessage(raw).Kind() != schema.KindUnknown {
			return true
		}
	}
	return false
}

// pickSurface selects the surface to render: the named one, or the
// first (in first-seen order) that has a root.
func pickSurface(state *surface.State, surfaceID string) *surface.Surface {
	if surfaceID != "" {
		target, ok := state.Surface(surfaceID)
		if !ok {
			return nil
		}
		return target
	}
	for _, candidate := range state.Surfaces() {
		if candidate.RootID != "" {
			return candidate
		}
	}
	return nil
}

func loadState(path string, state *surface.State, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("state file absent, starting fresh", "path", path)
			return nil
		}
		return fmt.Errorf("reading state %s: %w", path, err)
	}
	var snapshot surface.StateSnapshot
	if err := codec.DecodeSnapshot(data, &snapshot); err != nil {
		return fmt.Errorf("state %s: %w", path, err)
	}
	*state = *surface.Restore(snapshot)
	logger.Debug("state loaded", "path", path, "surfaces", len(snapshot.Surfaces))
	return nil
}

func saveState(path string, state *surface.State) error {
	data, err := codec.EncodeSnapshot(state.Snapshot())
	if err != nil {
		return fmt.Errorf("state %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	return nil
}

func newBackend(format string, width int, themePath string) (render.Backend, error) {
	switch format {
	case "html":
		return render.NewHTML(), nil
	case "term":
		palette, err := theme.LoadFile(themePath)
		if err != nil {
			return nil, err
		}
		if width <= 0 {
			width = detectWidth()
		}
		return render.NewTerminal(palette, width), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want term or html)", format)
	}
}

func detectWidth() int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if columns, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && columns > 0 {
			return columns
		}
	}
	return 80
}
