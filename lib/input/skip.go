// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrShortInput is returned by OpenAt when the input ends before the
// requested offset.
var ErrShortInput = errors.New("input is shorter than the requested offset")

// OpenAt is Open followed by skipping the first offset content bytes.
// Uncompressed regular files are positioned with Seek; compressed
// streams and standard input are decoded and discarded up to offset.
func OpenAt(path string, mode Mode, offset int64) (io.ReadCloser, Compression, error) {
	if offset < 0 {
		return nil, CompressionNone, fmt.Errorf("negative offset %d", offset)
	}
	if offset == 0 || path == Stdin {
		return openAndDiscard(path, mode, offset)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, CompressionNone, fmt.Errorf("opening %s: %w", path, err)
	}
	header := make([]byte, len(zstdMagic))
	count, err := file.ReadAt(header, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, CompressionNone, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if mode == ModeAuto && Detect(header[:count]) != CompressionNone {
		file.Close()
		return openAndDiscard(path, mode, offset)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, CompressionNone, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode().IsRegular() && info.Size() < offset {
		file.Close()
		return nil, CompressionNone, fmt.Errorf("%s: %w (%d < %d)", path, ErrShortInput, info.Size(), offset)
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		file.Close()
		return nil, CompressionNone, fmt.Errorf("seeking %s: %w", path, err)
	}
	return file, CompressionNone, nil
}

func openAndDiscard(path string, mode Mode, offset int64) (io.ReadCloser, Compression, error) {
	reader, compression, err := Open(path, mode)
	if err != nil {
		return nil, compression, err
	}
	if offset == 0 {
		return reader, compression, nil
	}
	skipped, err := io.CopyN(io.Discard, reader, offset)
	if err != nil {
		reader.Close()
		if errors.Is(err, io.EOF) {
			return nil, compression, fmt.Errorf("%s: %w (%d < %d)", path, ErrShortInput, skipped, offset)
		}
		return nil, compression, fmt.Errorf("skipping %d bytes of %s: %w", offset, path, err)
	}
	return reader, compression, nil
}
