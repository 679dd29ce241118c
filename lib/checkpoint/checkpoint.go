// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package checkpoint

import (
	"encoding"
	"errors"
	"fmt"
	"hash"
	"time"

	"github.com/bureau-foundation/digest/lib/algorithm"
)

// FormatVersion is the checkpoint format written by this package.
const FormatVersion = 1

var (
	// ErrNotResumable is returned when the hasher cannot marshal its
	// state.
	ErrNotResumable = errors.New("checkpoint: algorithm does not support resumable hashing")

	// ErrUnsupportedVersion is returned for checkpoints written in a
	// newer format.
	ErrUnsupportedVersion = errors.New("checkpoint: unsupported format version")

	// ErrInconsistent is returned when the recorded offset disagrees
	// with the byte count inside the marshaled state.
	ErrInconsistent = errors.New("checkpoint: offset does not match hash state")
)

// Checkpoint is the saved progress of one hash computation.
type Checkpoint struct {
	Version   int    `cbor:"1,keyasint"`
	Algorithm string `cbor:"2,keyasint"`

	// Path is the input being hashed, as given on the command line.
	Path string `cbor:"3,keyasint"`

	// Offset is the number of input bytes already absorbed. For
	// decompressed input it counts decompressed bytes.
	Offset int64 `cbor:"4,keyasint"`

	// State is the hasher's MarshalBinary output.
	State []byte `cbor:"5,keyasint"`

	// Decompress is the lib/input mode name used to read Path.
	Decompress string `cbor:"6,keyasint"`

	Created time.Time `cbor:"7,keyasint"`
}

// lengther is implemented by hashers that report how many bytes they
// have absorbed, such as lib/sha1.Digest.
type lengther interface {
	Len() uint64
}

// Capture records the state of hasher after offset bytes of path.
func Capture(hashAlgorithm algorithm.Algorithm, hasher hash.Hash, path string, offset int64, decompress string) (*Checkpoint, error) {
	marshaler, ok := hasher.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotResumable, hashAlgorithm.Name)
	}
	state, err := marshaler.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling %s state: %w", hashAlgorithm.Name, err)
	}
	return &Checkpoint{
		Version:    FormatVersion,
		Algorithm:  hashAlgorithm.Name,
		Path:       path,
		Offset:     offset,
		State:      state,
		Decompress: decompress,
		Created:    time.Now().UTC(),
	}, nil
}

// Restore returns the checkpoint's algorithm and a hasher positioned
// after Offset input bytes.
func (c *Checkpoint) Restore() (algorithm.Algorithm, hash.Hash, error) {
	if c.Version < 1 || c.Version > FormatVersion {
		return algorithm.Algorithm{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.Version)
	}
	hashAlgorithm, err := algorithm.Lookup(c.Algorithm)
	if err != nil {
		return algorithm.Algorithm{}, nil, fmt.Errorf("restoring checkpoint: %w", err)
	}
	if c.Offset < 0 {
		return algorithm.Algorithm{}, nil, fmt.Errorf("%w: negative offset %d", ErrInconsistent, c.Offset)
	}

	hasher := hashAlgorithm.New()
	unmarshaler, ok := hasher.(encoding.BinaryUnmarshaler)
	if !ok {
		return algorithm.Algorithm{}, nil, fmt.Errorf("%w: %s", ErrNotResumable, hashAlgorithm.Name)
	}
	if err := unmarshaler.UnmarshalBinary(c.State); err != nil {
		return algorithm.Algorithm{}, nil, fmt.Errorf("restoring %s state: %w", hashAlgorithm.Name, err)
	}
	if counter, ok := hasher.(lengther); ok && counter.Len() != uint64(c.Offset) {
		return algorithm.Algorithm{}, nil, fmt.Errorf("%w: state holds %d bytes, offset is %d",
			ErrInconsistent, counter.Len(), c.Offset)
	}
	return hashAlgorithm, hasher, nil
}
