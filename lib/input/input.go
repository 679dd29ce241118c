// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package input opens the byte streams that digest commands hash.
//
// In [ModeAuto], the first bytes of each stream are sniffed and zstd,
// LZ4 frame, and gzip streams are decompressed on the fly, so the
// digest describes the content rather than one particular compressed
// encoding of it. [ModeRaw] hashes bytes exactly as stored. The path
// "-" names standard input.
//
// Decompression uses github.com/klauspost/compress (zstd, gzip) and
// github.com/pierrec/lz4/v4.
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Mode selects whether compressed input is decoded.
type Mode int

const (
	// ModeAuto decompresses recognized formats.
	ModeAuto Mode = iota
	// ModeRaw passes bytes through unchanged.
	ModeRaw
)

// String returns "auto" or "raw".
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeRaw:
		return "raw"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMode parses "auto" or "raw".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "auto", "":
		return ModeAuto, nil
	case "raw", "none":
		return ModeRaw, nil
	default:
		return 0, fmt.Errorf("unknown decompression mode %q (valid: auto, raw)", name)
	}
}

// Compression identifies the detected encoding of an input.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

// String returns the human-readable name of a compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Magic numbers at the start of each supported stream.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect reports the compression indicated by the leading bytes of a
// stream.
func Detect(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(header, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Open opens path (or standard input for "-") for hashing. The caller
// must close the returned reader; closing it never closes standard
// input.
func Open(path string, mode Mode) (io.ReadCloser, Compression, error) {
	if path == Stdin {
		return Wrap(os.Stdin, mode)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, CompressionNone, fmt.Errorf("opening %s: %w", path, err)
	}
	reader, compression, err := Wrap(file, mode)
	if err != nil {
		file.Close()
		return nil, CompressionNone, fmt.Errorf("opening %s: %w", path, err)
	}
	return &stackedCloser{Reader: reader, closers: []io.Closer{reader, file}}, compression, nil
}

// Wrap decodes r according to mode. Closing the result releases
// decoder resources but does not close r.
func Wrap(r io.Reader, mode Mode) (io.ReadCloser, Compression, error) {
	if mode == ModeRaw {
		return io.NopCloser(r), CompressionNone, nil
	}

	buffered := bufio.NewReaderSize(r, 64<<10)
	header, err := buffered.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, CompressionNone, fmt.Errorf("reading stream header: %w", err)
	}

	compression := Detect(header)
	switch compression {
	case CompressionZstd:
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, compression, fmt.Errorf("zstd: %w", err)
		}
		return decoder.IOReadCloser(), compression, nil

	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(buffered)), compression, nil

	case CompressionGzip:
		decoder, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, compression, fmt.Errorf("gzip: %w", err)
		}
		return decoder, compression, nil

	default:
		return io.NopCloser(buffered), compression, nil
	}
}

// stackedCloser closes every layer of a decoder stack, innermost last.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, closer := range s.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
