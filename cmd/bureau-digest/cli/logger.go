// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger on stderr. When stderr is
// a terminal it uses slog.TextHandler for human-readable output;
// otherwise slog.JSONHandler, so scripted runs produce parseable logs.
//
// [Command.Execute] scopes the logger with the command path; Run
// functions add their own context with With():
//
//	logger = logger.With("path", path, "algorithm", hashAlgorithm.Name)
func NewCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
