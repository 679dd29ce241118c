// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sha1 implements the SHA-1 hash algorithm (FIPS 180-4) as a
// streaming digest.
//
// A [Digest] accepts input as an arbitrary sequence of byte chunks via
// [Digest.Write]. Bytes are buffered until a full 64-byte block
// accumulates, then folded into the five-word running state by the
// block transform. Whole blocks in the caller's slice are transformed
// in place without copying into the buffer. The result is independent
// of how the input was chunked.
//
// [Digest.Finalize] appends the padding (a single 0x80 byte, zeros up
// to 56 mod 64, and the big-endian message length in bits) through the
// same block path and returns the 20-byte digest. Finalization is one
// way: a second call returns [ErrFinalized], as does any further
// Write. [Digest.Reset] returns a digest to its fresh state.
//
// For compatibility with code written against the standard library,
// [Digest] also satisfies [hash.Hash]. [Digest.Sum] computes the digest
// of the data written so far on a copy of the state and leaves the
// receiver usable, which is what hash.Hash callers expect.
//
// The running state can be saved and restored with
// [Digest.MarshalBinary] and [Digest.UnmarshalBinary]. The 96-byte
// layout is identical to the one used by Go's crypto/sha1, so a state
// captured by either implementation can be resumed by the other.
//
// SHA-1 is broken for collision resistance. Use it for content
// identification and interoperability with existing checksums, not for
// signatures.
//
// A Digest is owned by one goroutine at a time. Independent digests
// share no state and need no locking between them.
package sha1
