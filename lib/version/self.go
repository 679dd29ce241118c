// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"context"
	"fmt"
	"os"

	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/filehash"
)

// SelfDigest returns the hex digest and absolute path of the running
// binary. os.Executable resolves through /proc/self/exe on Linux, so
// the digest describes the binary that was started even if the file
// has since been replaced.
func SelfDigest(ctx context.Context, hashAlgorithm algorithm.Algorithm) (digest string, binaryPath string, err error) {
	executable, err := os.Executable()
	if err != nil {
		return "", "", fmt.Errorf("resolving own executable path: %w", err)
	}
	sum, err := filehash.HashFile(ctx, executable, hashAlgorithm)
	if err != nil {
		return "", "", fmt.Errorf("hashing own binary at %s: %w", executable, err)
	}
	return filehash.FormatDigest(sum), executable, nil
}
