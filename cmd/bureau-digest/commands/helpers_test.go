// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/config"
)

const (
	dogText = "The quick brown fox jumps over the lazy dog"
	dogSHA1 = "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12"
	cogText = "The quick brown fox jumps over the lazy cog"
	cogSHA1 = "de9f2c7fd25e1b3afad3e85a0bd17d9b100db4b3"
)

// isolateConfig makes commands under test use built-in defaults
// regardless of the developer's environment.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// exitCode returns the code carried by err, 0 for nil, and fails the
// test for any other error.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("unexpected error: %v", err)
	}
	return exitError.Code
}

// outputs captures a command's stdout and stderr.
type outputs struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}
