// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Self      bool   `json:"self"      flag:"self" desc:"also print the digest of this binary"`
	Algorithm string `json:"algorithm" flag:"algorithm,a" desc:"algorithm for --self" default:"sha1"`
}

type versionOutput struct {
	version.BuildInfo
	Binary       string `json:"binary,omitempty"`
	BinaryDigest string `json:"binary_digest,omitempty"`
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, _ []string, _ *slog.Logger) error {
			return runVersion(ctx, &params, os.Stdout)
		},
	}
}

func runVersion(ctx context.Context, params *versionParams, stdout io.Writer) error {
	output := versionOutput{BuildInfo: version.Current()}

	var hashAlgorithm algorithm.Algorithm
	if params.Self {
		var err error
		hashAlgorithm, err = algorithm.Lookup(params.Algorithm)
		if err != nil {
			return err
		}
		output.BinaryDigest, output.Binary, err = version.SelfDigest(ctx, hashAlgorithm)
		if err != nil {
			return err
		}
	}

	if done, err := params.EmitJSON(stdout, output); done {
		return err
	}

	fmt.Fprintf(stdout, "bureau-digest %s\n", version.Full())
	if params.Self {
		fmt.Fprintf(stdout, "  Binary: %s\n  %s: %s\n", output.Binary, hashAlgorithm.Tag, output.BinaryDigest)
	}
	return nil
}
