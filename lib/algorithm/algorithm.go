// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package algorithm names the hash algorithms the digest tools can
// compute and constructs hashers for them.
//
// SHA-1 is served by this module's own streaming engine (lib/sha1) and
// is the default. SHA-256 uses the SIMD-accelerated
// github.com/minio/sha256-simd, BLAKE2b-256 comes from
// golang.org/x/crypto, and BLAKE3 from github.com/zeebo/blake3.
//
// Names are matched case-insensitively and a few common spellings are
// accepted ("SHA-1", "sha1", "SHA1").
package algorithm

import (
	"encoding"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/bureau-foundation/digest/lib/sha1"
)

// Default is the algorithm used when none is configured.
const Default = "sha1"

// Algorithm describes one hash algorithm.
type Algorithm struct {
	// Name is the canonical lowercase name, e.g. "sha1".
	Name string

	// Tag is the name used in BSD-style checksum lines, e.g. "SHA1".
	Tag string

	// Size is the digest length in bytes.
	Size int

	// Implementation is the import path of the package that computes
	// the digest.
	Implementation string

	// New returns a fresh hasher. Each call returns an independent
	// instance that must be used by one goroutine at a time.
	New func() hash.Hash
}

// Resumable reports whether hashers of this algorithm can save and
// restore their running state via encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler.
func (a Algorithm) Resumable() bool {
	hasher := a.New()
	_, marshals := hasher.(encoding.BinaryMarshaler)
	_, unmarshals := hasher.(encoding.BinaryUnmarshaler)
	return marshals && unmarshals
}

// String returns the canonical name.
func (a Algorithm) String() string { return a.Name }

var registry = map[string]Algorithm{
	"sha1": {
		Name: "sha1",
		Tag:  "SHA1",
		Size: sha1.Size,
		New:  func() hash.Hash { return sha1.New() },

		Implementation: "github.com/bureau-foundation/digest/lib/sha1",
	},
	"sha256": {
		Name: "sha256",
		Tag:  "SHA256",
		Size: sha256.Size,
		New:  sha256.New,

		Implementation: "github.com/minio/sha256-simd",
	},
	"blake2b-256": {
		Name: "blake2b-256",
		Tag:  "BLAKE2b-256",
		Size: blake2b.Size256,
		New:  newBlake2b256,

		Implementation: "golang.org/x/crypto/blake2b",
	},
	"blake3": {
		Name: "blake3",
		Tag:  "BLAKE3",
		Size: 32,
		New:  func() hash.Hash { return blake3.New() },

		Implementation: "github.com/zeebo/blake3",
	},
}

// aliases maps alternative spellings, already lowercased, to canonical
// names.
var aliases = map[string]string{
	"sha-1":      "sha1",
	"sha-256":    "sha256",
	"blake2b":    "blake2b-256",
	"blake2b256": "blake2b-256",
}

func newBlake2b256() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	hasher, err := blake2b.New256(nil)
	if err != nil {
		panic("algorithm: BLAKE2b-256 initialization failed: " + err.Error())
	}
	return hasher
}

// Lookup returns the algorithm with the given name or alias.
func Lookup(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	if algorithm, ok := registry[key]; ok {
		return algorithm, nil
	}
	return Algorithm{}, fmt.Errorf("unknown hash algorithm %q (valid: %s)",
		name, strings.Join(Names(), ", "))
}

// ForTag returns the algorithm whose BSD-style tag is tag. Tags match
// case-insensitively, so "SHA1" and "sha1" are equivalent.
func ForTag(tag string) (Algorithm, error) {
	for _, algorithm := range registry {
		if strings.EqualFold(algorithm.Tag, tag) {
			return algorithm, nil
		}
	}
	return Lookup(tag)
}

// ForSize returns the algorithms whose digests are size bytes long, in
// name order. Used to guess the algorithm of untagged checksum lines.
func ForSize(size int) []Algorithm {
	var matches []Algorithm
	for _, name := range Names() {
		if algorithm := registry[name]; algorithm.Size == size {
			matches = append(matches, algorithm)
		}
	}
	return matches
}

// Names returns the canonical names of all algorithms, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered algorithm in name order.
func All() []Algorithm {
	names := Names()
	algorithms := make([]Algorithm, len(names))
	for i, name := range names {
		algorithms[i] = registry[name]
	}
	return algorithms
}
