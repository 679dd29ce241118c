// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/codec"
)

type checkpointShowParams struct {
	cli.Common
	cli.JSONOutput
	Identities []string `json:"identities" flag:"identity,i" desc:"age identity file for sealed checkpoints (repeatable; adds to config)"`
	Diagnose   bool     `json:"diagnose"   flag:"diag" desc:"print the raw CBOR in diagnostic notation (RFC 8949)"`
}

// checkpointSummary is the JSON form of "checkpoint show".
type checkpointSummary struct {
	File       string    `json:"file"`
	Sealed     bool      `json:"sealed"`
	Version    int       `json:"version"`
	Algorithm  string    `json:"algorithm"`
	Input      string    `json:"input"`
	Offset     int64     `json:"offset"`
	Decompress string    `json:"decompress"`
	Created    time.Time `json:"created"`
	StateBytes int       `json:"state_bytes"`
}

func checkpointCommand() *cli.Command {
	return &cli.Command{
		Name:    "checkpoint",
		Summary: "Inspect checkpoint files",
		Subcommands: []*cli.Command{
			checkpointShowCommand(),
		},
	}
}

func checkpointShowCommand() *cli.Command {
	var params checkpointShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Describe a checkpoint file",
		Description: `Print the algorithm, input path, progress, and creation time recorded
in a checkpoint written by "sum --checkpoint". Sealed checkpoints are
opened with --identity or checkpoint.identities.`,
		Usage:  "bureau-digest checkpoint show [flags] <checkpoint>",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: bureau-digest checkpoint show [flags] <checkpoint>")
			}
			return runCheckpointShow(&params, args[0], os.Stdout, time.Now())
		},
		Examples: []cli.Example{
			{
				Description: "How far did the interrupted run get?",
				Command:     "bureau-digest checkpoint show disk.ckpt",
			},
			{
				Description: "Dump the CBOR envelope",
				Command:     "bureau-digest checkpoint show --diag disk.ckpt",
			},
		},
	}
}

func runCheckpointShow(params *checkpointShowParams, path string, stdout io.Writer, now time.Time) error {
	cfg, err := params.LoadConfig()
	if err != nil {
		return err
	}
	saved, sealed, err := openCheckpoint(path, cfg, params.Identities)
	if err != nil {
		return err
	}

	if params.Diagnose {
		encoded, err := codec.Marshal(saved)
		if err != nil {
			return fmt.Errorf("encoding checkpoint: %w", err)
		}
		notation, err := codec.Diagnose(encoded)
		if err != nil {
			return fmt.Errorf("diagnosing checkpoint: %w", err)
		}
		fmt.Fprintln(stdout, notation)
		return nil
	}

	summary := checkpointSummary{
		File:       path,
		Sealed:     sealed,
		Version:    saved.Version,
		Algorithm:  saved.Algorithm,
		Input:      saved.Path,
		Offset:     saved.Offset,
		Decompress: saved.Decompress,
		Created:    saved.Created,
		StateBytes: len(saved.State),
	}
	if done, err := params.EmitJSON(stdout, summary); done {
		return err
	}

	writer := tabwriter.NewWriter(stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "checkpoint:\t%s\n", summary.File)
	fmt.Fprintf(writer, "sealed:\t%v\n", summary.Sealed)
	fmt.Fprintf(writer, "algorithm:\t%s\n", summary.Algorithm)
	fmt.Fprintf(writer, "input:\t%s\n", summary.Input)
	fmt.Fprintf(writer, "offset:\t%s (%s bytes)\n",
		humanize.IBytes(uint64(summary.Offset)), humanize.Comma(summary.Offset))
	fmt.Fprintf(writer, "decompress:\t%s\n", summary.Decompress)
	fmt.Fprintf(writer, "created:\t%s (%s)\n",
		summary.Created.Format(time.RFC3339), humanize.RelTime(summary.Created, now, "ago", "from now"))
	return writer.Flush()
}
