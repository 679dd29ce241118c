// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/filehash"
	"github.com/bureau-foundation/digest/lib/input"
)

// digestResult is the outcome of hashing one input.
type digestResult struct {
	Path        string `json:"path"`
	Algorithm   string `json:"algorithm"`
	Digest      string `json:"digest,omitempty"`
	Size        int64  `json:"size"`
	Compression string `json:"compression,omitempty"`
	Error       string `json:"error,omitempty"`

	hashAlgorithm algorithm.Algorithm
	digest        []byte
	err           error
}

func (r *digestResult) fail(err error) {
	r.err = err
	r.Error = err.Error()
}

// hashInput hashes one path. Failures are recorded in the result.
func hashInput(ctx context.Context, path string, hashAlgorithm algorithm.Algorithm, mode input.Mode) digestResult {
	result := digestResult{Path: path, Algorithm: hashAlgorithm.Name, hashAlgorithm: hashAlgorithm}

	reader, compression, err := input.Open(path, mode)
	if err != nil {
		result.fail(err)
		return result
	}
	defer reader.Close()
	if compression != input.CompressionNone {
		result.Compression = compression.String()
	}

	digest, size, err := filehash.HashReader(ctx, reader, hashAlgorithm.New())
	result.Size = size
	if err != nil {
		result.fail(fmt.Errorf("%s: %w", path, err))
		return result
	}
	result.digest = digest
	result.Digest = filehash.FormatDigest(digest)
	return result
}

// hashJob is one input to hash with a specific algorithm.
type hashJob struct {
	path      string
	algorithm algorithm.Algorithm
}

// hashAll hashes jobs with at most limit running at once and returns
// results in job order. The only error is cancellation of ctx.
func hashAll(ctx context.Context, jobs []hashJob, mode input.Mode, limit int, logger *slog.Logger) ([]digestResult, error) {
	results := make([]digestResult, len(jobs))
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i, job := range jobs {
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			results[i] = hashInput(groupContext, job.path, job.algorithm, mode)
			logger.Debug("hashed input",
				"path", job.path,
				"algorithm", job.algorithm.Name,
				"bytes", results[i].Size,
				"error", results[i].err,
			)
			return groupContext.Err()
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
