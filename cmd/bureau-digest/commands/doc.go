// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the bureau-digest command tree.
//
// Each command keeps its Run closure thin: flags are resolved against
// the configuration file, then a run* function does the work with
// explicit stdout and stderr writers so tests can drive it without a
// process.
//
// Hashing fans out over golang.org/x/sync/errgroup with one exclusive
// hasher per input; results are always reported in argument order.
package commands
