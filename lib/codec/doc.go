// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR encoding
// configuration.
//
// JSON is used for CLI --json output. CBOR is used for on-disk state:
// resumable-hash checkpoints written by "bureau-digest sum --checkpoint"
// and read by "bureau-digest resume". The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items. The same checkpoint
// always produces identical bytes, so checkpoint files can themselves
// be checksummed and compared.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For streams:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// Types that are only ever stored as CBOR use `cbor` struct tags,
// usually with keyasint for compact files. Types that also appear in
// --json output use `json` tags, which fxamacker/cbor reads as a
// fallback.
package codec
