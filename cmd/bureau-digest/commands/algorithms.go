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

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/algorithm"
)

type algorithmsParams struct {
	cli.JSONOutput
}

type algorithmInfo struct {
	Name           string `json:"name"`
	Tag            string `json:"tag"`
	Bits           int    `json:"bits"`
	Resumable      bool   `json:"resumable"`
	Default        bool   `json:"default"`
	Implementation string `json:"implementation"`
}

func algorithmsCommand() *cli.Command {
	var params algorithmsParams

	return &cli.Command{
		Name:    "algorithms",
		Summary: "List supported hash algorithms",
		Params:  func() any { return &params },
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			return runAlgorithms(&params, os.Stdout)
		},
	}
}

func runAlgorithms(params *algorithmsParams, stdout io.Writer) error {
	var infos []algorithmInfo
	for _, hashAlgorithm := range algorithm.All() {
		infos = append(infos, algorithmInfo{
			Name:           hashAlgorithm.Name,
			Tag:            hashAlgorithm.Tag,
			Bits:           hashAlgorithm.Size * 8,
			Resumable:      hashAlgorithm.Resumable(),
			Default:        hashAlgorithm.Name == algorithm.Default,
			Implementation: hashAlgorithm.Implementation,
		})
	}

	if done, err := params.EmitJSON(stdout, infos); done {
		return err
	}

	writer := tabwriter.NewWriter(stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "NAME\tTAG\tBITS\tRESUMABLE\tIMPLEMENTATION")
	for _, info := range infos {
		name := info.Name
		if info.Default {
			name += " (default)"
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%v\t%s\n", name, info.Tag, info.Bits, info.Resumable, info.Implementation)
	}
	return writer.Flush()
}
