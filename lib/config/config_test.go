// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"runtime"
	"strings"
	"testing"

	"filippo.io/age"

	"github.com/bureau-foundation/digest/lib/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Algorithm != "sha1" {
		t.Errorf("Algorithm = %q, want sha1", cfg.Algorithm)
	}
	if cfg.Jobs != runtime.NumCPU() {
		t.Errorf("Jobs = %d, want %d", cfg.Jobs, runtime.NumCPU())
	}
	if cfg.Checkpoint.Interval != 64<<20 {
		t.Errorf("Checkpoint.Interval = %d, want %d", cfg.Checkpoint.Interval, 64<<20)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate: %v", err)
	}
}

func TestLoad_RequiresEnvironment(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BUREAU_DIGEST_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), EnvironmentVariable+" environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResolve(t *testing.T) {
	flagPath := testutil.WriteFile(t, "flag.yaml", []byte("algorithm: blake3\n"))
	envPath := testutil.WriteFile(t, "env.yaml", []byte("algorithm: sha256\n"))

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvironmentVariable, envPath)
		cfg, err := Resolve(flagPath)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Algorithm != "blake3" {
			t.Errorf("Algorithm = %q, want blake3", cfg.Algorithm)
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvironmentVariable, envPath)
		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Algorithm != "sha256" {
			t.Errorf("Algorithm = %q, want sha256", cfg.Algorithm)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvironmentVariable, "")
		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Algorithm != "sha1" {
			t.Errorf("Algorithm = %q, want sha1", cfg.Algorithm)
		}
	})
}

func TestLoadFile_YAML(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("GenerateX25519Identity: %v", err)
	}
	t.Setenv("HOME", "/home/tester")

	path := testutil.WriteFile(t, "digest.yaml", []byte(`
algorithm: blake2b-256
jobs: 3
decompress: raw
style: bsd
checkpoint:
  interval: 256MiB
  recipients:
    - `+identity.Recipient().String()+`
  identities:
    - ${HOME}/.config/age/keys.txt
    - ${DIGEST_TEST_UNSET:-/etc/age/keys.txt}
`))

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Algorithm != "blake2b-256" {
		t.Errorf("Algorithm = %q, want blake2b-256", cfg.Algorithm)
	}
	if cfg.Jobs != 3 {
		t.Errorf("Jobs = %d, want 3", cfg.Jobs)
	}
	if cfg.Decompress != "raw" || cfg.Style != "bsd" {
		t.Errorf("Decompress, Style = %q, %q, want raw, bsd", cfg.Decompress, cfg.Style)
	}
	if cfg.Checkpoint.Interval != 256<<20 {
		t.Errorf("Interval = %d, want %d", cfg.Checkpoint.Interval, 256<<20)
	}
	wantIdentities := []string{"/home/tester/.config/age/keys.txt", "/etc/age/keys.txt"}
	if len(cfg.Checkpoint.Identities) != len(wantIdentities) {
		t.Fatalf("Identities = %v, want %v", cfg.Checkpoint.Identities, wantIdentities)
	}
	for i, want := range wantIdentities {
		if cfg.Checkpoint.Identities[i] != want {
			t.Errorf("Identities[%d] = %q, want %q", i, cfg.Checkpoint.Identities[i], want)
		}
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := testutil.WriteFile(t, "digest.jsonc", []byte(`{
	// hash with blake3 by default
	"algorithm": "blake3",
	"jobs": 2,
	"checkpoint": {
		"interval": 8388608, /* 8 MiB */
	},
}`))

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Algorithm != "blake3" || cfg.Jobs != 2 {
		t.Errorf("Algorithm, Jobs = %q, %d, want blake3, 2", cfg.Algorithm, cfg.Jobs)
	}
	if cfg.Checkpoint.Interval != 8<<20 {
		t.Errorf("Interval = %d, want %d", cfg.Checkpoint.Interval, 8<<20)
	}
	if cfg.Style != "gnu" {
		t.Errorf("Style = %q, want default gnu", cfg.Style)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := testutil.WriteFile(t, "bad.yaml", []byte(`
algorithm: md5
jobs: 0
decompress: maybe
style: json
checkpoint:
  interval: 1KiB
  recipients: [not-a-key]
`))

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile accepted an invalid config")
	}
	for _, fragment := range []string{
		"algorithm:", "jobs must be at least 1", "decompress:", "style:",
		"checkpoint.interval", "checkpoint.recipients",
	} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error missing %q:\n%v", fragment, err)
		}
	}
}

func TestLoadFile_BadSize(t *testing.T) {
	path := testutil.WriteFile(t, "size.yaml", []byte("checkpoint:\n  interval: lots\n"))
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile accepted an unparseable size")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(t.TempDir() + "/absent.yaml"); err == nil {
		t.Fatal("LoadFile accepted a missing file")
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("DIGEST_TEST_VAR", "from-env")

	tests := []struct {
		input string
		vars  map[string]string
		want  string
	}{
		{"${HOME}/keys", map[string]string{"HOME": "/h"}, "/h/keys"},
		{"${DIGEST_TEST_VAR}", nil, "from-env"},
		{"${DIGEST_TEST_UNSET:-fallback}", nil, "fallback"},
		{"${DIGEST_TEST_UNSET}", nil, ""},
		{"plain", nil, "plain"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, test.vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestByteSizeString(t *testing.T) {
	if got := ByteSize(64 << 20).String(); got != "64 MiB" {
		t.Errorf("String() = %q, want %q", got, "64 MiB")
	}
}
