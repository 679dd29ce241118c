// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/checkpoint"
	"github.com/bureau-foundation/digest/lib/config"
	"github.com/bureau-foundation/digest/lib/input"
	"github.com/bureau-foundation/digest/lib/sumfile"
)

type sumParams struct {
	cli.Common
	cli.JSONOutput
	Algorithm          string          `json:"algorithm"           flag:"algorithm,a"         desc:"hash algorithm (default from config, else sha1)"`
	Jobs               int             `json:"jobs"                flag:"jobs,j"              desc:"inputs hashed concurrently (default from config, else CPU count)"`
	Decompress         string          `json:"decompress"          flag:"decompress"          desc:"auto: hash decompressed zstd/lz4/gzip content; raw: hash stored bytes"`
	Tag                bool            `json:"tag"                 flag:"tag"                 desc:"write BSD-style lines: SHA1 (path) = digest"`
	Checkpoint         string          `json:"checkpoint"          flag:"checkpoint"          desc:"save resumable progress to this file (one input, resumable algorithm)"`
	CheckpointInterval config.ByteSize `json:"checkpoint_interval" flag:"checkpoint-interval" desc:"input bytes between checkpoint writes (default from config, else 64MiB)"`
	Recipients         []string        `json:"recipients"          flag:"recipient,r"         desc:"age public key to seal checkpoints to (repeatable; adds to config)"`
}

func sumCommand() *cli.Command {
	var params sumParams

	return &cli.Command{
		Name:    "sum",
		Summary: "Print checksums of files",
		Description: `Hash each file (or standard input when no file or "-" is given) and
print one checksum line per input, in the format sha1sum and shasum
understand.

Compressed inputs (zstd, LZ4 frame, gzip) are decompressed before
hashing unless --decompress=raw, so the checksum describes the content
regardless of how it is stored.

With --checkpoint, the running hash state of a single input is saved
every --checkpoint-interval bytes. If hashing is interrupted it can be
continued with "bureau-digest resume". The state holds up to one block
of raw input; use --recipient (or checkpoint.recipients in the config)
to seal checkpoint files with age.`,
		Usage:  "bureau-digest sum [flags] [file...]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runSum(ctx, &params, args, os.Stdout, os.Stderr, logger)
		},
		Examples: []cli.Example{
			{
				Description: "SHA-1 of two files",
				Command:     "bureau-digest sum release.tar image.iso",
			},
			{
				Description: "BLAKE3, BSD-style lines, eight files at a time",
				Command:     "bureau-digest sum -a blake3 --tag -j 8 *.tar.zst",
			},
			{
				Description: "Hash a huge file with resumable progress",
				Command:     "bureau-digest sum --checkpoint disk.ckpt disk.img",
			},
		},
	}
}

func runSum(ctx context.Context, params *sumParams, paths []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	cfg, err := params.LoadConfig()
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cfg, params.Algorithm, params.Jobs, params.Decompress)
	if err != nil {
		return err
	}
	if params.Tag {
		settings.style = sumfile.StyleBSD
	}
	if len(paths) == 0 {
		paths = []string{input.Stdin}
	}

	var results []digestResult
	if params.Checkpoint != "" {
		if len(paths) != 1 {
			return fmt.Errorf("--checkpoint takes exactly one input, got %d", len(paths))
		}
		result, err := sumWithCheckpoints(ctx, params, cfg, settings, paths[0], logger)
		if err != nil {
			return err
		}
		results = []digestResult{result}
	} else {
		jobs := make([]hashJob, len(paths))
		for i, path := range paths {
			jobs[i] = hashJob{path: path, algorithm: settings.algorithm}
		}
		results, err = hashAll(ctx, jobs, settings.mode, settings.jobs, logger)
		if err != nil {
			return err
		}
	}

	return reportDigests(results, &params.JSONOutput, settings.style, stdout, stderr)
}

func sumWithCheckpoints(ctx context.Context, params *sumParams, cfg *config.Config, settings hashSettings, path string, logger *slog.Logger) (digestResult, error) {
	if !settings.algorithm.Resumable() {
		return digestResult{}, fmt.Errorf("--checkpoint: %w: %s", checkpoint.ErrNotResumable, settings.algorithm.Name)
	}

	interval := int64(cfg.Checkpoint.Interval)
	if params.CheckpointInterval != 0 {
		interval = int64(params.CheckpointInterval)
	}
	if interval <= 0 {
		return digestResult{}, fmt.Errorf("--checkpoint-interval must be positive")
	}

	recipients, err := checkpoint.ParseRecipients(append(cfg.Checkpoint.Recipients, params.Recipients...))
	if err != nil {
		return digestResult{}, err
	}

	inputPath := path
	if path != input.Stdin {
		if inputPath, err = filepath.Abs(path); err != nil {
			return digestResult{}, fmt.Errorf("resolving %s: %w", path, err)
		}
	}

	saver := &checkpointer{
		file:       params.Checkpoint,
		recipients: recipients,
		interval:   interval,
		algorithm:  settings.algorithm,
		inputPath:  inputPath,
		decompress: settings.mode.String(),
		logger:     logger.With("path", path),
	}
	return finishCheckpointed(ctx, saver, path, settings.mode, settings.algorithm.New(), 0, false)
}

// reportDigests prints results as JSON or checksum lines. Inputs that
// failed are reported on stderr and turn the exit status to 1.
func reportDigests(results []digestResult, output *cli.JSONOutput, style sumfile.Style, stdout, stderr io.Writer) error {
	failed := 0
	for _, result := range results {
		if result.err != nil {
			failed++
		}
	}

	if done, err := output.EmitJSON(stdout, results); done {
		if err != nil {
			return err
		}
	} else {
		for _, result := range results {
			if result.err != nil {
				fmt.Fprintf(stderr, "bureau-digest: %v\n", result.err)
				continue
			}
			entry := sumfile.Entry{
				Algorithm: result.hashAlgorithm,
				Path:      result.Path,
				Digest:    result.digest,
			}
			if err := sumfile.Format(stdout, entry, style); err != nil {
				return fmt.Errorf("writing checksum line: %w", err)
			}
		}
	}

	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
