// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package checkpoint saves and restores the running state of a hash
// computation so that hashing a very large input can stop and later
// continue where it left off.
//
// A [Checkpoint] records the algorithm, the input path, how many input
// bytes were consumed (Offset), the decompression mode in effect, and
// the hasher's marshaled state. Only algorithms whose hashers implement
// encoding.BinaryMarshaler can be checkpointed; for SHA-1 the state is
// the fixed 96-byte layout of lib/sha1.
//
// Checkpoints are stored as CBOR via lib/codec. The marshaled state
// contains up to one block of raw input bytes, so a checkpoint of a
// sensitive file leaks part of that file. [Save] can seal the file to
// one or more age X25519 recipients; [Load] recognizes sealed files by
// their age header and opens them with the supplied identities.
//
// Files are replaced atomically (write to a temporary file in the same
// directory, fsync, rename), so a crash mid-save leaves the previous
// checkpoint intact.
package checkpoint
