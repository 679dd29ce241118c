// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sha1

import (
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
)

// State layout: magic, five state words, the block buffer (zero padded
// past the buffered bytes), and the message length. All integers are
// big-endian. This matches crypto/sha1.
const (
	magic         = "sha\x01"
	marshaledSize = len(magic) + 5*4 + BlockSize + 8
)

// ErrInvalidState is returned by UnmarshalBinary for data that is not a
// marshaled SHA-1 state.
var ErrInvalidState = errors.New("sha1: invalid hash state")

var (
	_ encoding.BinaryMarshaler   = (*Digest)(nil)
	_ encoding.BinaryUnmarshaler = (*Digest)(nil)
	_ encoding.BinaryAppender    = (*Digest)(nil)
)

// MarshalBinary encodes the running state of an active digest.
func (d *Digest) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(make([]byte, 0, marshaledSize))
}

// AppendBinary appends the encoded running state to b.
func (d *Digest) AppendBinary(b []byte) ([]byte, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	b = append(b, magic...)
	for _, word := range d.h {
		b = binary.BigEndian.AppendUint32(b, word)
	}
	b = append(b, d.buffer.pending()...)
	b = append(b, make([]byte, BlockSize-d.buffer.len())...)
	b = binary.BigEndian.AppendUint64(b, d.length)
	return b, nil
}

// UnmarshalBinary replaces the state of d with a state produced by
// MarshalBinary. The restored digest is active.
func (d *Digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return fmt.Errorf("%w: unrecognized state identifier", ErrInvalidState)
	}
	if len(b) != marshaledSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidState, len(b), marshaledSize)
	}

	b = b[len(magic):]
	var h [5]uint32
	for i := range h {
		h[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	block := b[:BlockSize]
	length := binary.BigEndian.Uint64(b[BlockSize:])

	d.h = h
	d.length = length
	d.finalized = false
	d.buffer.reset()
	d.buffer.fill(block[:length%BlockSize])
	return nil
}
