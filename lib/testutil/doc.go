// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for digest packages.
//
// [Bytes] produces deterministic pseudo-random input of a given length
// from a seed, so failures reproduce exactly. [Partition] splits a byte
// slice into a random sequence of chunks (including empty ones) for
// chunking-invariance tests of streaming hashers. [WriteFile] writes a
// file under t.TempDir() and returns its path.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on other packages in this module.
package testutil
