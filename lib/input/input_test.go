// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/digest/lib/testutil"
)

func compressGzip(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := gzip.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buffer.Bytes()
}

func compressZstd(t *testing.T, data []byte) []byte {
	t.Helper()
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd encoder: %v", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil)
}

func compressLZ4(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}
	return buffer.Bytes()
}

func TestOpenDecompresses(t *testing.T) {
	content := append([]byte("compressible text, "), bytes.Repeat([]byte("digest "), 500)...)

	tests := []struct {
		name        string
		stored      []byte
		compression Compression
	}{
		{"plain", content, CompressionNone},
		{"gzip", compressGzip(t, content), CompressionGzip},
		{"zstd", compressZstd(t, content), CompressionZstd},
		{"lz4", compressLZ4(t, content), CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "input."+tt.name, tt.stored)

			reader, compression, err := Open(path, ModeAuto)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer reader.Close()

			if compression != tt.compression {
				t.Errorf("compression = %s, want %s", compression, tt.compression)
			}
			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("decoded %d bytes, want the original %d", len(got), len(content))
			}
		})
	}
}

func TestOpenRawLeavesCompressedBytes(t *testing.T) {
	stored := compressGzip(t, []byte("payload"))
	path := testutil.WriteFile(t, "raw.gz", stored)

	reader, compression, err := Open(path, ModeRaw)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	if compression != CompressionNone {
		t.Errorf("compression = %s in raw mode, want none", compression)
	}
	got, _ := io.ReadAll(reader)
	if !bytes.Equal(got, stored) {
		t.Error("raw mode altered the stored bytes")
	}
}

func TestWrapShortAndEmptyInput(t *testing.T) {
	for _, content := range [][]byte{nil, {0x1f}, []byte("ab")} {
		reader, compression, err := Wrap(bytes.NewReader(content), ModeAuto)
		if err != nil {
			t.Fatalf("Wrap(%q): %v", content, err)
		}
		got, _ := io.ReadAll(reader)
		if compression != CompressionNone || !bytes.Equal(got, content) {
			t.Errorf("Wrap(%q) = %q (%s)", content, got, compression)
		}
	}
}

func TestWrapCorruptGzip(t *testing.T) {
	corrupt := append([]byte{0x1f, 0x8b}, bytes.Repeat([]byte{0xff}, 20)...)
	reader, _, err := Wrap(bytes.NewReader(corrupt), ModeAuto)
	if err == nil {
		_, err = io.ReadAll(reader)
	}
	if err == nil {
		t.Error("corrupt gzip stream should fail")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, _, err := Open(t.TempDir()+"/missing", ModeAuto); err == nil {
		t.Error("Open of a missing file should fail")
	}
}

func TestDetect(t *testing.T) {
	tests := map[string]Compression{
		"\x28\xb5\x2f\xfd rest": CompressionZstd,
		"\x04\x22\x4d\x18":      CompressionLZ4,
		"\x1f\x8b\x08":          CompressionGzip,
		"hello":                 CompressionNone,
		"":                      CompressionNone,
	}
	for header, want := range tests {
		if got := Detect([]byte(header)); got != want {
			t.Errorf("Detect(%q) = %s, want %s", header, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if mode, err := ParseMode("raw"); err != nil || mode != ModeRaw {
		t.Errorf("ParseMode(raw) = %v, %v", mode, err)
	}
	if mode, err := ParseMode("AUTO"); err != nil || mode != ModeAuto {
		t.Errorf("ParseMode(AUTO) = %v, %v", mode, err)
	}
	if _, err := ParseMode("brotli"); err == nil {
		t.Error("ParseMode(brotli) should fail")
	}
}
