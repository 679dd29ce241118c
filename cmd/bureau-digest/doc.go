// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-digest computes and verifies file checksums.
//
// Usage:
//
//	bureau-digest sum [flags] [file...]
//	bureau-digest check [flags] [list...]
//	bureau-digest resume [flags] <checkpoint> [file]
//	bureau-digest checkpoint show [flags] <checkpoint>
//	bureau-digest bench [flags]
//	bureau-digest algorithms
//	bureau-digest version
//
// Run "bureau-digest <command> --help" for the flags of each command.
package main
