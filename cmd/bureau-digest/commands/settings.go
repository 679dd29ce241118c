// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/config"
	"github.com/bureau-foundation/digest/lib/input"
	"github.com/bureau-foundation/digest/lib/sumfile"
)

// hashSettings are the effective options for a hashing command after
// flags override the configuration file.
type hashSettings struct {
	algorithm algorithm.Algorithm
	jobs      int
	mode      input.Mode
	style     sumfile.Style
}

// resolveSettings applies non-empty flag values over cfg.
func resolveSettings(cfg *config.Config, algorithmFlag string, jobsFlag int, decompressFlag string) (hashSettings, error) {
	algorithmName := cfg.Algorithm
	if algorithmFlag != "" {
		algorithmName = algorithmFlag
	}
	hashAlgorithm, err := algorithm.Lookup(algorithmName)
	if err != nil {
		return hashSettings{}, err
	}

	jobs := cfg.Jobs
	if jobsFlag != 0 {
		jobs = jobsFlag
	}
	if jobs < 1 {
		return hashSettings{}, fmt.Errorf("--jobs must be at least 1, got %d", jobs)
	}

	modeName := cfg.Decompress
	if decompressFlag != "" {
		modeName = decompressFlag
	}
	mode, err := input.ParseMode(modeName)
	if err != nil {
		return hashSettings{}, err
	}

	style, err := sumfile.ParseStyle(cfg.Style)
	if err != nil {
		return hashSettings{}, err
	}

	return hashSettings{
		algorithm: hashAlgorithm,
		jobs:      jobs,
		mode:      mode,
		style:     style,
	}, nil
}
