// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "bureau-digest",
		Subcommands: []*Command{
			{
				Name: "sum",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "sum"
					return nil
				},
			},
			{
				Name: "check",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "check"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"check"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "check" {
		t.Errorf("dispatched to %q, want %q", called, "check")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "bureau-digest",
		Subcommands: []*Command{
			{
				Name: "checkpoint",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"checkpoint", "show", "big.ckpt"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "big.ckpt" {
		t.Errorf("args = %v, want [big.ckpt]", receivedArgs)
	}
}

func TestCommand_Execute_ParamsBound(t *testing.T) {
	type sumParams struct {
		Common
		JSONOutput
		Algorithm string `flag:"algorithm,a" desc:"hash algorithm" default:"sha1"`
		Jobs      int    `flag:"jobs,j" desc:"parallel jobs" default:"1"`
	}
	var params sumParams
	var receivedArgs []string
	var receivedLogger *slog.Logger

	command := &Command{
		Name:   "sum",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			receivedArgs = args
			receivedLogger = logger
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"-a", "blake3", "--json", "-v", "a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Algorithm != "blake3" {
		t.Errorf("Algorithm = %q, want blake3", params.Algorithm)
	}
	if params.Jobs != 1 {
		t.Errorf("Jobs = %d, want default 1", params.Jobs)
	}
	if !params.OutputJSON || !params.Verbose {
		t.Errorf("OutputJSON, Verbose = %v, %v, want true, true", params.OutputJSON, params.Verbose)
	}
	if len(receivedArgs) != 2 || receivedArgs[0] != "a.txt" || receivedArgs[1] != "b.txt" {
		t.Errorf("args = %v, want [a.txt b.txt]", receivedArgs)
	}
	if receivedLogger == nil {
		t.Fatal("Run received a nil logger")
	}
	if !receivedLogger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("--verbose did not enable debug logging")
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "bureau-digest",
		Subcommands: []*Command{
			{Name: "resume", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"resmue"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "resume"`) {
		t.Errorf("error = %q, want a suggestion for resume", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	type params struct {
		IgnoreMissing bool `flag:"ignore-missing" desc:"skip missing files"`
	}
	var p params
	command := &Command{
		Name:   "check",
		Params: func() any { return &p },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--ignore-misisng"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --ignore-missing?") {
		t.Errorf("error = %q, want a suggestion for --ignore-missing", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "checkpoint",
		Subcommands: []*Command{{Name: "show"}},
	}
	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %v, want subcommand required", err)
	}
}

func TestCommand_Execute_RunErrorPropagates(t *testing.T) {
	command := &Command{
		Name: "check",
		Run: func(context.Context, []string, *slog.Logger) error {
			return &ExitError{Code: 1}
		},
	}
	err := command.Execute(context.Background(), nil)
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatalf("error %v does not carry an exit code", err)
	}
	if coder.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", coder.ExitCode())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	type params struct {
		Tag bool `flag:"tag" desc:"write BSD-style lines"`
	}
	var p params
	sum := &Command{
		Name:    "sum",
		Summary: "Print checksums",
		Params:  func() any { return &p },
		Examples: []Example{
			{Description: "Hash a file", Command: "bureau-digest sum big.iso"},
		},
	}
	root := &Command{Name: "bureau-digest", Subcommands: []*Command{sum}}
	sum.parent = root

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	if !strings.Contains(buffer.String(), "sum") || !strings.Contains(buffer.String(), "Print checksums") {
		t.Errorf("root help missing subcommand listing:\n%s", buffer.String())
	}

	buffer.Reset()
	sum.PrintHelp(&buffer)
	help := buffer.String()
	for _, want := range []string{"Usage:\n  bureau-digest sum [flags]", "--tag", "write BSD-style lines", "# Hash a file"} {
		if !strings.Contains(help, want) {
			t.Errorf("sum help missing %q:\n%s", want, help)
		}
	}
}
