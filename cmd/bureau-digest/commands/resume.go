// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"filippo.io/age"

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/checkpoint"
	"github.com/bureau-foundation/digest/lib/config"
	"github.com/bureau-foundation/digest/lib/input"
	"github.com/bureau-foundation/digest/lib/sumfile"
)

type resumeParams struct {
	cli.Common
	cli.JSONOutput
	Identities []string        `json:"identities" flag:"identity,i" desc:"age identity file for sealed checkpoints (repeatable; adds to config)"`
	Recipients []string        `json:"recipients" flag:"recipient,r" desc:"age public key to seal updated checkpoints to (repeatable; adds to config)"`
	Interval   config.ByteSize `json:"interval"   flag:"checkpoint-interval" desc:"input bytes between checkpoint writes (default from config)"`
	Keep       bool            `json:"keep"       flag:"keep" desc:"keep the checkpoint file after hashing completes"`
	Tag        bool            `json:"tag"        flag:"tag" desc:"write a BSD-style line"`
}

func resumeCommand() *cli.Command {
	var params resumeParams

	return &cli.Command{
		Name:    "resume",
		Summary: "Continue hashing from a checkpoint",
		Description: `Restore the hash state saved by "sum --checkpoint" and hash the rest of
the input, then print the checksum line exactly as sum would have.

The input defaults to the path recorded in the checkpoint; pass a second
argument if the file has moved. Uncompressed files are positioned with
a seek; compressed inputs are decoded and the already-hashed prefix
discarded. The checkpoint keeps being updated while hashing continues
and is deleted on success unless --keep is given.

A sealed checkpoint is opened with the identities from --identity and
checkpoint.identities, and updates stay sealed: resuming one requires a
recipient from --recipient or checkpoint.recipients.`,
		Usage:  "bureau-digest resume [flags] <checkpoint> [file]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runResume(ctx, &params, args, os.Stdout, os.Stderr, logger)
		},
		Examples: []cli.Example{
			{
				Description: "Continue an interrupted run",
				Command:     "bureau-digest resume disk.ckpt",
			},
			{
				Description: "Continue a sealed checkpoint for a file that moved",
				Command:     "bureau-digest resume -i ~/.config/age/keys.txt disk.ckpt /mnt/backup/disk.img",
			},
		},
	}
}

func runResume(ctx context.Context, params *resumeParams, args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: bureau-digest resume [flags] <checkpoint> [file]")
	}
	checkpointPath := args[0]

	cfg, err := params.LoadConfig()
	if err != nil {
		return err
	}
	style, err := sumfile.ParseStyle(cfg.Style)
	if err != nil {
		return err
	}
	if params.Tag {
		style = sumfile.StyleBSD
	}

	saved, sealed, err := openCheckpoint(checkpointPath, cfg, params.Identities)
	if err != nil {
		return err
	}
	hashAlgorithm, hasher, err := saved.Restore()
	if err != nil {
		return fmt.Errorf("%s: %w", checkpointPath, err)
	}
	mode, err := input.ParseMode(saved.Decompress)
	if err != nil {
		return fmt.Errorf("%s: %w", checkpointPath, err)
	}

	recipients, err := checkpoint.ParseRecipients(append(cfg.Checkpoint.Recipients, params.Recipients...))
	if err != nil {
		return err
	}
	if sealed && len(recipients) == 0 {
		return fmt.Errorf("%s is sealed; pass --recipient or set checkpoint.recipients so updates stay sealed", checkpointPath)
	}

	interval := int64(cfg.Checkpoint.Interval)
	if params.Interval != 0 {
		interval = int64(params.Interval)
	}

	inputPath := saved.Path
	if len(args) == 2 {
		inputPath = args[1]
	}

	logger = logger.With("path", inputPath, "algorithm", hashAlgorithm.Name)
	logger.Debug("resuming", "checkpoint", checkpointPath, "offset", saved.Offset, "created", saved.Created)

	saver := &checkpointer{
		file:       checkpointPath,
		recipients: recipients,
		interval:   interval,
		algorithm:  hashAlgorithm,
		inputPath:  inputPath,
		decompress: saved.Decompress,
		logger:     logger,
	}
	result, err := finishCheckpointed(ctx, saver, inputPath, mode, hasher, saved.Offset, params.Keep)
	if err != nil {
		return err
	}
	return reportDigests([]digestResult{result}, &params.JSONOutput, style, stdout, stderr)
}

// openCheckpoint loads a checkpoint, opening it with the configured and
// flag-supplied identities when it is sealed.
func openCheckpoint(path string, cfg *config.Config, identityFlags []string) (*checkpoint.Checkpoint, bool, error) {
	sealed, err := checkpoint.Sealed(path)
	if err != nil {
		return nil, false, err
	}

	var identities []age.Identity
	if sealed {
		identities, err = checkpoint.LoadIdentities(append(cfg.Checkpoint.Identities, identityFlags...))
		if err != nil {
			return nil, true, err
		}
	}

	saved, err := checkpoint.Load(path, identities)
	if err != nil {
		return nil, sealed, err
	}
	return saved, sealed, nil
}
