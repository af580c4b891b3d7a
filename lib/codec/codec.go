// Copyright 2026 The Canvas Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides deterministic binary encoding for Canvas
// state snapshots: CBOR with Core Deterministic Encoding, optionally
// wrapped in zstd compression. The surface protocol is stateful
// across stream events, so hosts persist per-session state between
// invocations; deterministic encoding makes snapshots byte-stable and
// therefore cheap to deduplicate and compare.
package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Unknown fields are silently ignored for forward compatibility.
var decMode cbor.DecMode

// compressor and decompressor are stateless zstd codecs used through
// EncodeAll/DecodeAll; both are safe for concurrent use.
var (
	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Snapshot data models are JSON-like: string keys only. When
		// the decode target is any, the decoder must pick a concrete
		// map type, and the CBOR default map[interface{}]interface{}
		// is incompatible with the rest of the library.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	compressor, err = zstd.NewWriter(nil)
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	decompressor, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// EncodeSnapshot marshals v deterministically and compresses the
// result with zstd.
func EncodeSnapshot(v any) ([]byte, error) {
	encoded, err := Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return compressor.EncodeAll(encoded, nil), nil
}

// DecodeSnapshot decompresses data and unmarshals it into v.
func DecodeSnapshot(data []byte, v any) error {
	decoded, err := decompressor.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("decompressing snapshot: %w", err)
	}
	if err := Unmarshal(decoded, v); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	return nil
}
