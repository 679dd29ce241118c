// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"crypto/rand"
	stdsha1 "crypto/sha1"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/config"
)

type benchParams struct {
	cli.JSONOutput
	Duration   time.Duration   `json:"duration"   flag:"duration,d" desc:"measurement time per round" default:"250ms"`
	Rounds     int             `json:"rounds"     flag:"rounds" desc:"rounds per algorithm; the best is reported" default:"3"`
	ChunkSize  config.ByteSize `json:"chunk_size" flag:"chunk-size" desc:"bytes per Write call" default:"128KiB"`
	Algorithms []string        `json:"algorithms" flag:"algorithm,a" desc:"algorithms to measure (default: all)"`
}

// benchResult is one measured implementation.
type benchResult struct {
	Algorithm      string  `json:"algorithm"`
	Implementation string  `json:"implementation"`
	BytesPerSecond float64 `json:"bytes_per_second"`
}

func benchCommand() *cli.Command {
	var params benchParams

	return &cli.Command{
		Name:    "bench",
		Summary: "Measure hashing throughput",
		Description: `Hash random data in memory for a fixed time per round and report the
best of several rounds for each algorithm. SHA-1 is measured twice:
this module's streaming engine and the Go standard library's
crypto/sha1, for comparison.`,
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			return runBench(ctx, &params, os.Stdout, logger)
		},
		Examples: []cli.Example{
			{
				Description: "Compare every algorithm",
				Command:     "bureau-digest bench",
			},
			{
				Description: "Longer SHA-1 measurement",
				Command:     "bureau-digest bench -a sha1 -d 2s",
			},
		},
	}
}

// benchTarget is one implementation to measure.
type benchTarget struct {
	algorithm      string
	implementation string
	newHash        func() hash.Hash
}

func benchTargets(names []string) ([]benchTarget, error) {
	var selected []algorithm.Algorithm
	if len(names) == 0 {
		selected = algorithm.All()
	} else {
		for _, name := range names {
			hashAlgorithm, err := algorithm.Lookup(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, hashAlgorithm)
		}
	}

	var targets []benchTarget
	for _, hashAlgorithm := range selected {
		targets = append(targets, benchTarget{
			algorithm:      hashAlgorithm.Name,
			implementation: hashAlgorithm.Implementation,
			newHash:        hashAlgorithm.New,
		})
		if hashAlgorithm.Name == "sha1" {
			targets = append(targets, benchTarget{
				algorithm:      "sha1",
				implementation: "crypto/sha1",
				newHash:        stdsha1.New,
			})
		}
	}
	return targets, nil
}

func runBench(ctx context.Context, params *benchParams, stdout io.Writer, logger *slog.Logger) error {
	if params.Duration <= 0 || params.Rounds < 1 || params.ChunkSize == 0 {
		return fmt.Errorf("--duration, --rounds, and --chunk-size must be positive")
	}
	targets, err := benchTargets(params.Algorithms)
	if err != nil {
		return err
	}

	data := make([]byte, params.ChunkSize)
	rand.Read(data)

	results := make([]benchResult, 0, len(targets))
	for _, target := range targets {
		var best float64
		for range params.Rounds {
			if err := ctx.Err(); err != nil {
				return err
			}
			if rate := benchOnce(params.Duration, target.newHash, data); rate > best {
				best = rate
			}
		}
		logger.Debug("measured", "algorithm", target.algorithm, "implementation", target.implementation, "bytes_per_second", best)
		results = append(results, benchResult{
			Algorithm:      target.algorithm,
			Implementation: target.implementation,
			BytesPerSecond: best,
		})
	}

	if done, err := params.EmitJSON(stdout, results); done {
		return err
	}

	writer := tabwriter.NewWriter(stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "ALGORITHM\tTHROUGHPUT\tIMPLEMENTATION")
	for _, result := range results {
		fmt.Fprintf(writer, "%s\t%s/s\t%s\n",
			result.Algorithm, humanize.IBytes(uint64(result.BytesPerSecond)), result.Implementation)
	}
	return writer.Flush()
}

// benchOnce writes data into a fresh hasher until duration has passed
// and returns the observed bytes per second.
func benchOnce(duration time.Duration, newHash func() hash.Hash, data []byte) float64 {
	hasher := newHash()
	start := time.Now()
	written := 0
	for time.Since(start) < duration {
		hasher.Write(data)
		written += len(data)
	}
	hasher.Sum(nil)
	return float64(written) / time.Since(start).Seconds()
}
