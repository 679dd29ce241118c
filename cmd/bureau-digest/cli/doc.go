// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for bureau-digest.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a params struct whose tagged
// fields become flags, and a Run function. Commands are assembled into a
// tree in cmd/bureau-digest/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// logger construction, and structured help output with examples.
//
// Params structs declare flags with struct tags (see [BindFlags]) and
// compose shared behavior by embedding: [Common] adds --config and
// --verbose, [JSONOutput] adds --json.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Commands that report a handled failure (a checksum mismatch, say)
// return an [ExitError] so main exits non-zero without printing a
// redundant error line. [Styles] renders status words with lipgloss
// when the output is a terminal.
package cli
