// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import "github.com/bureau-foundation/digest/cmd/bureau-digest/cli"

// Root builds and returns the complete bureau-digest command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "bureau-digest",
		Description: `bureau-digest: streaming file checksums.

Computes and verifies SHA-1 (default), SHA-256, BLAKE2b-256, and BLAKE3
digests. Compressed inputs are hashed by content, very large inputs can
be checkpointed and resumed, and checksum lists interoperate with
sha1sum and shasum.

Configuration is read from --config or $BUREAU_DIGEST_CONFIG (YAML or
JSONC); without either, built-in defaults apply.`,
		Subcommands: []*cli.Command{
			sumCommand(),
			checkCommand(),
			resumeCommand(),
			checkpointCommand(),
			benchCommand(),
			algorithmsCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Write a checksum list and verify it later",
				Command:     "bureau-digest sum *.iso > SHA1SUMS && bureau-digest check SHA1SUMS",
			},
		},
	}
}
