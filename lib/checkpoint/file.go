// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package checkpoint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"github.com/bureau-foundation/digest/lib/codec"
)

// ErrSealed is returned by Load for a sealed checkpoint when no
// identities were supplied.
var ErrSealed = errors.New("checkpoint: file is age-encrypted; an identity is required")

// ageHeader starts every binary age file.
const ageHeader = "age-encryption.org/v1\n"

// Save writes c to path, sealed to recipients when any are given. The
// previous file at path is replaced atomically.
func Save(path string, c *Checkpoint, recipients []age.Recipient) error {
	data, err := codec.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}

	if len(recipients) > 0 {
		var sealed bytes.Buffer
		writer, err := age.Encrypt(&sealed, recipients...)
		if err != nil {
			return fmt.Errorf("creating age encryptor: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("sealing checkpoint: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("finalizing checkpoint seal: %w", err)
		}
		data = sealed.Bytes()
	}

	return writeAtomic(path, data)
}

// Load reads the checkpoint at path, opening it with identities if it
// is sealed.
func Load(path string, identities []age.Identity) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}

	if IsSealed(data) {
		if len(identities) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrSealed)
		}
		reader, err := age.Decrypt(bytes.NewReader(data), identities...)
		if err != nil {
			return nil, fmt.Errorf("opening sealed checkpoint %s: %w", path, err)
		}
		data, err = io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("reading sealed checkpoint %s: %w", path, err)
		}
	}

	var checkpoint Checkpoint
	if err := codec.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("decoding checkpoint %s: %w", path, err)
	}
	return &checkpoint, nil
}

// Sealed reports whether the file at path is age-encrypted.
func Sealed(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening checkpoint: %w", err)
	}
	defer file.Close()

	header := make([]byte, len(ageHeader))
	count, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading checkpoint header: %w", err)
	}
	return IsSealed(header[:count]), nil
}

// IsSealed reports whether data is an age-encrypted file.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(ageHeader))
}

// ParseRecipients parses age X25519 public keys (age1...).
func ParseRecipients(keys []string) ([]age.Recipient, error) {
	recipients := make([]age.Recipient, 0, len(keys))
	for _, key := range keys {
		recipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}

// LoadIdentities reads age identity files (AGE-SECRET-KEY-1... lines,
// comments allowed).
func LoadIdentities(paths []string) ([]age.Identity, error) {
	var identities []age.Identity
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening identity file: %w", err)
		}
		parsed, err := age.ParseIdentities(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing identity file %s: %w", path, err)
		}
		identities = append(identities, parsed...)
	}
	return identities, nil
}

func writeAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary checkpoint: %w", err)
	}
	temporaryPath := temporary.Name()
	cleanup := func() {
		temporary.Close()
		os.Remove(temporaryPath)
	}

	if _, err := temporary.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	if err := temporary.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing checkpoint: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing checkpoint: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("replacing checkpoint: %w", err)
	}
	return nil
}
