// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
)

// WriteFile writes content to name inside a fresh temporary directory
// that is removed when the test completes, and returns the file path.
//
//	path := testutil.WriteFile(t, "input.bin", []byte("hello"))
func WriteFile(t interface {
	Helper()
	Fatalf(format string, args ...any)
	TempDir() string
}, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
