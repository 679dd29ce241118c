// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"filippo.io/age"
	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/checkpoint"
	"github.com/bureau-foundation/digest/lib/filehash"
	"github.com/bureau-foundation/digest/lib/input"
)

// checkpointer streams an input into a hasher and saves the hasher's
// state every interval bytes, on read failure, and on cancellation.
type checkpointer struct {
	// file is the checkpoint path.
	file       string
	recipients []age.Recipient
	interval   int64

	algorithm  algorithm.Algorithm
	inputPath  string
	decompress string

	logger *slog.Logger
}

// hash reads reader to EOF into hasher, which has already absorbed
// offset bytes. It returns the total byte count. When it returns an
// error the checkpoint on disk reflects every byte that reached hasher.
func (c *checkpointer) hash(ctx context.Context, reader io.Reader, hasher hash.Hash, offset int64) (int64, error) {
	buffer := make([]byte, filehash.ChunkSize)
	next := offset + c.interval

	for {
		if err := ctx.Err(); err != nil {
			if saveErr := c.save(hasher, offset); saveErr != nil {
				return offset, errors.Join(err, saveErr)
			}
			return offset, fmt.Errorf("interrupted after %s; continue with 'bureau-digest resume %s': %w",
				humanize.IBytes(uint64(offset)), c.file, err)
		}

		count, readErr := reader.Read(buffer)
		if count > 0 {
			hasher.Write(buffer[:count])
			offset += int64(count)
			if offset >= next {
				if err := c.save(hasher, offset); err != nil {
					return offset, err
				}
				next = offset + c.interval
			}
		}

		if errors.Is(readErr, io.EOF) {
			return offset, nil
		}
		if readErr != nil {
			if saveErr := c.save(hasher, offset); saveErr != nil {
				return offset, errors.Join(readErr, saveErr)
			}
			return offset, fmt.Errorf("reading %s at byte %d: %w", c.inputPath, offset, readErr)
		}
	}
}

func (c *checkpointer) save(hasher hash.Hash, offset int64) error {
	saved, err := checkpoint.Capture(c.algorithm, hasher, c.inputPath, offset, c.decompress)
	if err != nil {
		return err
	}
	if err := checkpoint.Save(c.file, saved, c.recipients); err != nil {
		return fmt.Errorf("saving checkpoint %s: %w", c.file, err)
	}
	c.logger.Debug("checkpoint saved",
		"checkpoint", c.file,
		"offset", offset,
		"sealed", len(c.recipients) > 0,
	)
	return nil
}

// remove deletes the checkpoint file once hashing has completed.
func (c *checkpointer) remove() error {
	if err := os.Remove(c.file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing finished checkpoint: %w", err)
	}
	return nil
}

// finishCheckpointed hashes path from offset to the end under saver
// and returns the final digest. The checkpoint file is removed on
// success unless keep is set.
func finishCheckpointed(ctx context.Context, saver *checkpointer, path string, mode input.Mode, hasher hash.Hash, offset int64, keep bool) (digestResult, error) {
	result := digestResult{Path: path, Algorithm: saver.algorithm.Name, hashAlgorithm: saver.algorithm}

	reader, compression, err := input.OpenAt(path, mode, offset)
	if err != nil {
		return result, err
	}
	defer reader.Close()
	if compression != input.CompressionNone {
		result.Compression = compression.String()
	}

	total, err := saver.hash(ctx, reader, hasher, offset)
	result.Size = total
	if err != nil {
		return result, err
	}

	result.digest = hasher.Sum(nil)
	result.Digest = filehash.FormatDigest(result.digest)
	saver.logger.Debug("hashing complete", "bytes", total, "resumed_at", offset)

	if !keep {
		if err := saver.remove(); err != nil {
			return result, err
		}
	}
	return result, nil
}
