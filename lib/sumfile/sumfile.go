// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sumfile reads and writes checksum list files in the formats
// produced by coreutils sha1sum and friends.
//
// Two line styles are understood:
//
//	2fd4e1c67a2d28fced849ee1bb76e7391b93eb12  path/to/file    (GNU)
//	SHA1 (path/to/file) = 2fd4e1c67a2d28fced849ee1bb76e7391b93eb12    (BSD tag)
//
// In GNU lines a '*' instead of the second space marks binary mode,
// which is recorded but has no effect on hashing. Paths containing a
// newline or backslash are escaped (\n, \\) and the line is prefixed
// with a single backslash, matching coreutils. Blank lines and lines
// starting with '#' are skipped.
//
// GNU lines carry no algorithm name; the caller supplies the algorithm
// they were written with. BSD lines name their algorithm in the tag.
package sumfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/filehash"
)

// Style selects the line format used by [Format].
type Style int

const (
	// StyleGNU writes "<hex>  <path>".
	StyleGNU Style = iota
	// StyleBSD writes "<TAG> (<path>) = <hex>".
	StyleBSD
)

// String returns "gnu" or "bsd".
func (s Style) String() string {
	switch s {
	case StyleGNU:
		return "gnu"
	case StyleBSD:
		return "bsd"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParseStyle parses "gnu" or "bsd".
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "gnu", "":
		return StyleGNU, nil
	case "bsd", "tag":
		return StyleBSD, nil
	default:
		return 0, fmt.Errorf("unknown checksum style %q (valid: gnu, bsd)", name)
	}
}

// Entry is one checksum line.
type Entry struct {
	Algorithm algorithm.Algorithm
	Path      string
	Digest    []byte

	// Binary is set for GNU lines written with the '*' marker.
	Binary bool

	// Line is the 1-based line number the entry was read from, or 0 for
	// entries built in memory.
	Line int
}

// LineError describes a line that could not be parsed.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ErrMalformed is wrapped by every LineError produced for a line that
// matches neither format.
var ErrMalformed = errors.New("improperly formatted checksum line")

// Parse reads every entry from r, stopping at the first malformed line.
// GNU lines are assumed to use fallback unless their digest length
// matches exactly one other algorithm.
func Parse(r io.Reader, fallback algorithm.Algorithm) ([]Entry, error) {
	entries, lineErrors, err := ParseLenient(r, fallback)
	if err != nil {
		return nil, err
	}
	if len(lineErrors) > 0 {
		return nil, lineErrors[0]
	}
	return entries, nil
}

// ParseLenient reads every entry from r and collects malformed lines
// instead of failing on them. The error return is reserved for read
// failures.
func ParseLenient(r io.Reader, fallback algorithm.Algorithm) ([]Entry, []*LineError, error) {
	var entries []Entry
	var lineErrors []*LineError

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}

		entry, err := parseLine(text, fallback)
		if err != nil {
			lineErrors = append(lineErrors, &LineError{Line: lineNumber, Text: text, Err: err})
			continue
		}
		entry.Line = lineNumber
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading checksum list: %w", err)
	}
	return entries, lineErrors, nil
}

func parseLine(text string, fallback algorithm.Algorithm) (Entry, error) {
	escaped := strings.HasPrefix(text, `\`)
	if escaped {
		text = text[1:]
	}

	entry, isBSD, err := parseBSDLine(text)
	if !isBSD {
		entry, err = parseGNULine(text, fallback)
	} else if err != nil {
		// A GNU path may itself contain " (" and ") = ".
		if gnuEntry, gnuErr := parseGNULine(text, fallback); gnuErr == nil {
			entry, err = gnuEntry, nil
		}
	}
	if err != nil {
		return Entry{}, err
	}

	if escaped {
		entry.Path, err = unescapePath(entry.Path)
		if err != nil {
			return Entry{}, err
		}
	}
	return entry, nil
}

// parseBSDLine parses "TAG (path) = hex". The boolean reports whether
// the line had the BSD shape at all.
func parseBSDLine(text string) (Entry, bool, error) {
	open := strings.Index(text, " (")
	closing := strings.LastIndex(text, ") = ")
	if open <= 0 || closing < open+2 {
		return Entry{}, false, nil
	}
	tag := text[:open]
	if strings.ContainsAny(tag, " \t*") {
		return Entry{}, false, nil
	}

	hashAlgorithm, err := algorithm.ForTag(tag)
	if err != nil {
		return Entry{}, true, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	digest, err := filehash.ParseDigest(text[closing+4:], hashAlgorithm.Size)
	if err != nil {
		return Entry{}, true, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Entry{
		Algorithm: hashAlgorithm,
		Path:      text[open+2 : closing],
		Digest:    digest,
	}, true, nil
}

func parseGNULine(text string, fallback algorithm.Algorithm) (Entry, error) {
	hexDigest, rest, found := strings.Cut(text, " ")
	if !found || rest == "" {
		return Entry{}, ErrMalformed
	}
	var binary bool
	switch rest[0] {
	case ' ':
	case '*':
		binary = true
	default:
		return Entry{}, ErrMalformed
	}
	path := rest[1:]
	if path == "" {
		return Entry{}, fmt.Errorf("%w: missing path", ErrMalformed)
	}

	hashAlgorithm := fallback
	if len(hexDigest) != 2*fallback.Size {
		// Another algorithm's digest length identifies it if unique.
		if candidates := algorithm.ForSize(len(hexDigest) / 2); len(hexDigest)%2 == 0 && len(candidates) == 1 {
			hashAlgorithm = candidates[0]
		}
	}

	digest, err := filehash.ParseDigest(hexDigest, hashAlgorithm.Size)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Entry{
		Algorithm: hashAlgorithm,
		Path:      path,
		Digest:    digest,
		Binary:    binary,
	}, nil
}

// Format writes entry as one line in the given style.
func Format(w io.Writer, entry Entry, style Style) error {
	path, escaped := escapePath(entry.Path)
	prefix := ""
	if escaped {
		prefix = `\`
	}
	digest := filehash.FormatDigest(entry.Digest)

	var err error
	switch style {
	case StyleBSD:
		_, err = fmt.Fprintf(w, "%s%s (%s) = %s\n", prefix, entry.Algorithm.Tag, path, digest)
	default:
		marker := " "
		if entry.Binary {
			marker = "*"
		}
		_, err = fmt.Fprintf(w, "%s%s %s%s\n", prefix, digest, marker, path)
	}
	return err
}

func escapePath(path string) (string, bool) {
	if !strings.ContainsAny(path, "\\\n") {
		return path, false
	}
	replacer := strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	return replacer.Replace(path), true
}

func unescapePath(path string) (string, error) {
	var builder strings.Builder
	for i := 0; i < len(path); i++ {
		if path[i] != '\\' {
			builder.WriteByte(path[i])
			continue
		}
		i++
		if i == len(path) {
			return "", fmt.Errorf("%w: dangling escape in path", ErrMalformed)
		}
		switch path[i] {
		case '\\':
			builder.WriteByte('\\')
		case 'n':
			builder.WriteByte('\n')
		default:
			return "", fmt.Errorf("%w: unknown escape \\%c in path", ErrMalformed, path[i])
		}
	}
	return builder.String(), nil
}
