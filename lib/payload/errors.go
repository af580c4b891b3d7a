// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"errors"
	"fmt"
)

// Error reports a payload that yielded zero usable messages. It is
// the only error class this library propagates; everything downstream
// of parsing degrades to fallback output instead of failing. Callers
// can use errors.As to extract the position information:
//
//	var parseErr *payload.Error
//	if errors.As(err, &parseErr) { ... parseErr.Line ... }
type Error struct {
	// Line is the 1-based number of the first line that failed to
	// parse, or 0 when the whole input failed as a single document.
	Line int
	// Detail is the human-readable reason, suitable for an
	// "unable to render" message.
	Detail string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("payload: line %d: %s", e.Line, e.Detail)
	}
	return fmt.Sprintf("payload: %s", e.Detail)
}

// IsParseError reports whether err is a *Error.
func IsParseError(err error) bool {
	var parseErr *Error
	return errors.As(err, &parseErr)
}
