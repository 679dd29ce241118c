// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package filehash

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/bureau-foundation/digest/lib/algorithm"
)

// ChunkSize is the read size used by HashReader. It is a multiple of
// every supported block size, so full reads never leave a partial block
// in the hasher's buffer.
const ChunkSize = 128 << 10

// HashReader copies r into hasher until EOF and returns the digest and
// the number of bytes read. The context is checked before every chunk.
func HashReader(ctx context.Context, r io.Reader, hasher hash.Hash) ([]byte, int64, error) {
	buffer := make([]byte, ChunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, total, err
		}
		count, err := r.Read(buffer)
		if count > 0 {
			// hash.Hash.Write never returns an error.
			hasher.Write(buffer[:count])
			total += int64(count)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, total, err
		}
	}
	return hasher.Sum(nil), total, nil
}

// HashFile computes the digest of the file at path with the given
// algorithm.
func HashFile(ctx context.Context, path string, hashAlgorithm algorithm.Algorithm) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, _, err := HashReader(ctx, file, hashAlgorithm.New())
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// FormatDigest returns the lowercase hex encoding of digest.
func FormatDigest(digest []byte) string {
	return hex.EncodeToString(digest)
}

// ParseDigest decodes a hex digest and checks that it is size bytes
// long. Upper and lower case hex are both accepted.
func ParseDigest(hexString string, size int) ([]byte, error) {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != size {
		return nil, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), size)
	}
	return decoded, nil
}

// Equal reports whether two digests are identical, in time that depends
// only on their lengths.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
