// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package payload normalizes raw decoded text — a single JSON
// document or newline-delimited JSON — into a list of message
// objects for the protocol builders.
//
// Parsing is tolerant by design: input is pre-processed as JSONC
// (// comments, /* block comments */, trailing commas are stripped),
// blank lines are ignored, and a stream cut mid-line drops the
// unparsable trailing fragment rather than failing. The only error
// this package raises is [*Error], when the input contained at least
// one non-blank fragment and none of it was usable.
//
// The typical flow:
//
//  1. Parse: raw text → []json.RawMessage, one per message object
//  2. lib/surface or lib/rendertree: decode and apply each object
//
// Shape validation of message kinds is deferred to those builders.
package payload

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/jsonc"
)

// Parse normalizes input into a list of JSON objects.
//
// Empty or all-whitespace input yields an empty list, not an error.
// A whole-input parse is tried first: a JSON array is filtered to its
// well-formed object entries, a single object becomes a one-element
// list. When the whole input does not parse, each line is parsed
// independently and the recovered objects are kept in order. Only
// when that recovers nothing and at least one line failed does Parse
// return a [*Error].
func Parse(input string) ([]json.RawMessage, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	stripped := jsonc.ToJSON([]byte(input))

	if messages, ok := parseWhole(stripped); ok {
		return messages, nil
	}

	var (
		recovered  []json.RawMessage
		failedLine int
		failedText string
	)
	for index, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		object, ok := parseObject(jsonc.ToJSON([]byte(trimmed)))
		if !ok {
			if failedLine == 0 {
				failedLine = index + 1
				failedText = trimmed
			}
			continue
		}
		recovered = append(recovered, object)
	}

	if len(recovered) == 0 && failedLine > 0 {
		return nil, &Error{
			Line:   failedLine,
			Detail: "not a JSON object: " + truncate(failedText, 80),
		}
	}
	return recovered, nil
}

// parseWhole attempts to interpret data as one complete JSON
// document. An array yields its object entries (non-objects are
// filtered out); a single object yields itself. Anything else —
// invalid JSON, a bare scalar — reports false so the caller falls
// back to line-wise recovery.
func parseWhole(data []byte) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false
	}

	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, false
		}
		objects := make([]json.RawMessage, 0, len(entries))
		for _, entry := range entries {
			if object, ok := parseObject(entry); ok {
				objects = append(objects, object)
			}
		}
		return objects, true
	case '{':
		object, ok := parseObject(trimmed)
		if !ok {
			return nil, false
		}
		return []json.RawMessage{object}, true
	default:
		return nil, false
	}
}

// parseObject validates data as a single JSON object and returns it
// with surrounding whitespace trimmed.
func parseObject(data []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

// truncate shortens s for inclusion in error messages.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
