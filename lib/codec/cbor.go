// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR encoding used by the definition disk
// cache. Encoding is Core Deterministic (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items — the
// same definition always produces identical bytes, which keeps cache
// entries stable across runs.
package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Types implementing encoding.TextMarshaler (ref.Reference,
	// ref.Name, ref.Hash) serialize as CBOR text strings via
	// MarshalText. Without this, values with unexported fields would
	// serialize as empty CBOR maps, losing their identity.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Any-typed targets decode maps as map[string]any, matching
		// encoding/json behavior. Struct field decoding is unaffected.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Mirrors the TextMarshaler setting above for round-trip
		// correctness of the ref types.
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
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
