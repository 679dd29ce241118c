// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bureau-foundation/digest/cmd/bureau-digest/cli"
	"github.com/bureau-foundation/digest/lib/filehash"
	"github.com/bureau-foundation/digest/lib/input"
	"github.com/bureau-foundation/digest/lib/sumfile"
)

type checkParams struct {
	cli.Common
	cli.JSONOutput
	Algorithm     string `json:"algorithm"      flag:"algorithm,a"    desc:"algorithm for untagged lines whose digest length is ambiguous (default from config)"`
	Jobs          int    `json:"jobs"           flag:"jobs,j"         desc:"files verified concurrently (default from config, else CPU count)"`
	Decompress    string `json:"decompress"     flag:"decompress"     desc:"auto or raw; must match how the list was produced"`
	Quiet         bool   `json:"quiet"          flag:"quiet,q"        desc:"don't print OK for each verified file"`
	Status        bool   `json:"status"         flag:"status,s"       desc:"print nothing; the exit status reports success"`
	IgnoreMissing bool   `json:"ignore_missing" flag:"ignore-missing" desc:"don't fail or report status for missing files"`
	Strict        bool   `json:"strict"         flag:"strict"         desc:"exit non-zero for improperly formatted lines"`
}

// Verification outcomes.
const (
	statusOK      = "ok"
	statusFailed  = "failed"
	statusMissing = "missing"
	statusError   = "error"
)

type checkResult struct {
	List      string `json:"list"`
	Line      int    `json:"line"`
	Path      string `json:"path"`
	Algorithm string `json:"algorithm"`
	Status    string `json:"status"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual,omitempty"`
	Error     string `json:"error,omitempty"`
}

// checkSummary counts outcomes across every list.
type checkSummary struct {
	verified  int
	failed    int
	missing   int
	errors    int
	malformed int
	empty     int
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Verify files against checksum lists",
		Description: `Read checksum lists (from files, or standard input when none is given)
and verify every listed file. Both GNU lines ("<hex>  <path>") and
BSD tagged lines ("SHA1 (<path>) = <hex>") are accepted, mixed freely;
tagged lines name their own algorithm. Untagged lines use --algorithm,
unless their digest length identifies exactly one other algorithm.

Prints "<path>: OK" or "<path>: FAILED" per file and exits 1 if any
file failed, could not be read, or (with --strict) any line was
malformed.`,
		Usage:  "bureau-digest check [flags] [list...]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runCheck(ctx, &params, args, os.Stdin, os.Stdout, os.Stderr, logger)
		},
		Examples: []cli.Example{
			{
				Description: "Verify a sha1sum-style list",
				Command:     "bureau-digest check SHA1SUMS",
			},
			{
				Description: "Only report problems",
				Command:     "bureau-digest check --quiet --ignore-missing SHA1SUMS",
			},
		},
	}
}

func runCheck(ctx context.Context, params *checkParams, lists []string, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) error {
	cfg, err := params.LoadConfig()
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cfg, params.Algorithm, params.Jobs, params.Decompress)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		lists = []string{input.Stdin}
	}

	styles := cli.NewStyles(stdout)
	var summary checkSummary
	var allResults []checkResult

	for _, list := range lists {
		entries, lineErrors, err := readList(list, stdin, settings)
		if err != nil {
			return err
		}
		summary.malformed += len(lineErrors)
		for _, lineError := range lineErrors {
			logger.Debug("malformed checksum line", "list", list, "line", lineError.Line, "error", lineError.Err)
		}
		if len(entries) == 0 {
			summary.empty++
			if !params.Status {
				fmt.Fprintf(stderr, "bureau-digest: %s: no properly formatted checksum lines found\n", list)
			}
		}

		results, err := verifyEntries(ctx, list, entries, settings, logger)
		if err != nil {
			return err
		}
		for _, result := range results {
			if result.Status == statusMissing && params.IgnoreMissing {
				continue
			}
			allResults = append(allResults, result)
			summary.count(result)
			if params.OutputJSON || params.Status {
				continue
			}
			printCheckResult(stdout, stderr, styles, result, params.Quiet)
		}
	}

	if done, err := params.EmitJSON(stdout, allResults); done && err != nil {
		return err
	}
	if !params.Status && !params.OutputJSON {
		summary.warn(stderr, styles)
		if params.IgnoreMissing && summary.verified == 0 && summary.failed == 0 && summary.errors == 0 {
			fmt.Fprintln(stderr, "bureau-digest: no file was verified")
		}
	}

	if summary.failed > 0 || summary.missing > 0 || summary.errors > 0 || summary.empty > 0 ||
		(params.Strict && summary.malformed > 0) ||
		(params.IgnoreMissing && summary.verified == 0 && summary.failed == 0 && summary.errors == 0) {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// readList parses one checksum list, leniently. Untagged lines take
// the configured algorithm when its size fits.
func readList(list string, stdin io.Reader, settings hashSettings) ([]sumfile.Entry, []*sumfile.LineError, error) {
	var reader io.Reader = stdin
	if list != input.Stdin {
		file, err := os.Open(list)
		if err != nil {
			return nil, nil, fmt.Errorf("opening checksum list: %w", err)
		}
		defer file.Close()
		reader = file
	}

	entries, lineErrors, err := sumfile.ParseLenient(reader, settings.algorithm)
	if err != nil {
		return nil, nil, fmt.Errorf("reading checksum list %s: %w", list, err)
	}
	return entries, lineErrors, nil
}

func verifyEntries(ctx context.Context, list string, entries []sumfile.Entry, settings hashSettings, logger *slog.Logger) ([]checkResult, error) {
	jobs := make([]hashJob, len(entries))
	for i, entry := range entries {
		jobs[i] = hashJob{path: entry.Path, algorithm: entry.Algorithm}
	}
	digests, err := hashAll(ctx, jobs, settings.mode, settings.jobs, logger)
	if err != nil {
		return nil, err
	}

	results := make([]checkResult, len(entries))
	for i, entry := range entries {
		digest := digests[i]
		result := checkResult{
			List:      list,
			Line:      entry.Line,
			Path:      entry.Path,
			Algorithm: entry.Algorithm.Name,
			Expected:  filehash.FormatDigest(entry.Digest),
			Actual:    digest.Digest,
		}
		switch {
		case errors.Is(digest.err, fs.ErrNotExist):
			result.Status = statusMissing
			result.Error = digest.Error
		case digest.err != nil:
			result.Status = statusError
			result.Error = digest.Error
		case filehash.Equal(digest.digest, entry.Digest):
			result.Status = statusOK
		default:
			result.Status = statusFailed
		}
		results[i] = result
	}
	return results, nil
}

func printCheckResult(stdout, stderr io.Writer, styles cli.Styles, result checkResult, quiet bool) {
	switch result.Status {
	case statusOK:
		if !quiet {
			fmt.Fprintf(stdout, "%s: %s\n", result.Path, styles.OK.Render("OK"))
		}
	case statusFailed:
		fmt.Fprintf(stdout, "%s: %s\n", result.Path, styles.Failed.Render("FAILED"))
	case statusMissing, statusError:
		fmt.Fprintf(stderr, "bureau-digest: %s\n", result.Error)
		fmt.Fprintf(stdout, "%s: %s\n", result.Path, styles.Failed.Render("FAILED open or read"))
	}
}

func (s *checkSummary) count(result checkResult) {
	switch result.Status {
	case statusOK:
		s.verified++
	case statusFailed:
		s.failed++
	case statusMissing:
		s.missing++
	case statusError:
		s.errors++
	}
}

// warn prints coreutils-style totals for anything that went wrong.
func (s *checkSummary) warn(stderr io.Writer, styles cli.Styles) {
	if s.malformed > 0 {
		fmt.Fprintf(stderr, "%s %d %s improperly formatted\n",
			styles.Warning.Render("WARNING:"), s.malformed, plural(s.malformed, "line is", "lines are"))
	}
	if unreadable := s.missing + s.errors; unreadable > 0 {
		fmt.Fprintf(stderr, "%s %d listed %s could not be read\n",
			styles.Warning.Render("WARNING:"), unreadable, plural(unreadable, "file", "files"))
	}
	if s.failed > 0 {
		fmt.Fprintf(stderr, "%s %d computed %s did NOT match\n",
			styles.Warning.Render("WARNING:"), s.failed, plural(s.failed, "checksum", "checksums"))
	}
}

func plural(count int, singular, many string) string {
	if count == 1 {
		return singular
	}
	return many
}
