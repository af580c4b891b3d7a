// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Canvas-render feeds a UI protocol payload through the Canvas
// interpreter and prints the rendered document. It is a host-side
// harness for manual inspection and shell pipelines; the interpreter
// itself is the library under lib/.
//
// The payload comes from the file named as the first argument, or
// stdin. Both protocols are handled: surface-protocol message streams
// and render-tree documents/patch lists. With --state, surface state
// is loaded from and saved back to a snapshot file, so a shell loop
// can replay a stream one batch at a time.
//
// Exit codes:
//
//	0  rendered (possibly an empty document)
//	2  error (unreadable input, unparsable payload, bad flags)
package main
