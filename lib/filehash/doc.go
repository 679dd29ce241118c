// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package filehash streams files and readers through a hash algorithm.
//
// The API surface is small:
//
//   - [HashReader] -- streams an io.Reader through any hash.Hash in
//     fixed-size chunks, checking the context between chunks, so memory
//     use is constant and long reads can be cancelled
//   - [HashFile] -- opens a path and hashes it with a named
//     [algorithm.Algorithm]
//   - [FormatDigest] -- the canonical lowercase hex representation used
//     in checksum lists, JSON output, and log lines
//   - [ParseDigest] -- parses a hex digest back to bytes, validating the
//     encoding and the expected length
//   - [Equal] -- compares two digests in constant time
package filehash
