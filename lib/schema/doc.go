// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the wire types of the Canvas UI protocols:
// the surface-protocol message union, element and patch shapes for the
// render-tree protocol, and the bound-value sum type used for
// data-model references in component properties.
//
// Two protocols share these types:
//
//   - The surface protocol is a stream of single-key JSON messages
//     ([Message]: surfaceUpdate, dataModelUpdate, beginRendering,
//     deleteSurface) that incrementally build named surfaces.
//   - The render-tree protocol describes one widget tree as a full
//     snapshot, an element map, or an ordered list of [Patch]
//     instructions.
//
// Decoding here is deliberately forgiving: shape validation of message
// kinds is deferred to the builders, and malformed fragments decode to
// zero values rather than errors. The builders (lib/surface,
// lib/rendertree) decide what to skip.
//
// This package depends on no other Canvas packages.
package schema
