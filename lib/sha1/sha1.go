// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sha1

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash"
)

const (
	// Size is the length of a SHA-1 digest in bytes.
	Size = 20

	// BlockSize is the block size of SHA-1 in bytes.
	BlockSize = 64
)

// maxLength is the largest input, in bytes, whose bit length fits in
// the 64-bit length field of the padding.
const maxLength = 1<<61 - 1

// initialState is the FIPS 180-4 initial hash value.
var initialState = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}

var (
	// ErrFinalized is returned when a digest is written to or finalized
	// after it has already been finalized.
	ErrFinalized = errors.New("sha1: digest already finalized")

	// ErrLengthOverflow is returned by Finalize when more than 2^61-1
	// bytes were written, so the bit length cannot be encoded.
	ErrLengthOverflow = errors.New("sha1: message length overflows the 64-bit length field")
)

// Digest is the state of one SHA-1 computation. The zero value is not
// usable; create digests with [New].
type Digest struct {
	h         [5]uint32
	buffer    blockBuffer
	length    uint64
	finalized bool
}

var (
	_ hash.Hash = (*Digest)(nil)
)

// New returns a fresh digest.
func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Sum returns the SHA-1 digest of data.
func Sum(data []byte) [Size]byte {
	d := New()
	d.absorb(data)
	d.length = uint64(len(data))
	sum, err := d.Finalize()
	if err != nil {
		panic(err)
	}
	return sum
}

// Format returns the 40-character lowercase hex form of a digest.
func Format(sum [Size]byte) string {
	return hex.EncodeToString(sum[:])
}

// Reset returns d to its fresh state, including after Finalize.
func (d *Digest) Reset() {
	d.h = initialState
	d.buffer.reset()
	d.length = 0
	d.finalized = false
}

// Size returns [Size].
func (d *Digest) Size() int { return Size }

// BlockSize returns [BlockSize].
func (d *Digest) BlockSize() int { return BlockSize }

// Len returns the number of bytes written since the digest was created
// or last reset.
func (d *Digest) Len() uint64 { return d.length }

// Finalized reports whether Finalize has consumed the digest.
func (d *Digest) Finalized() bool { return d.finalized }

// Write appends p to the message. It never fails on an active digest.
// After Finalize it writes nothing and returns [ErrFinalized].
func (d *Digest) Write(p []byte) (int, error) {
	if d.finalized {
		return 0, ErrFinalized
	}
	d.length += uint64(len(p))
	d.absorb(p)
	return len(p), nil
}

// WriteString is Write for a string argument.
func (d *Digest) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

// absorb runs p through the block accumulator without touching the
// message length. Finalize sends the padding through here too.
func (d *Digest) absorb(p []byte) {
	if d.buffer.len() > 0 {
		p = p[d.buffer.fill(p):]
		if !d.buffer.full() {
			return
		}
		d.h = processBlock(d.h, d.buffer.block())
		d.buffer.reset()
	}

	for len(p) >= BlockSize {
		d.h = processBlock(d.h, (*[BlockSize]byte)(p))
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		d.buffer.fill(p)
	}
}

// Finalize pads the message, processes the remaining blocks, and
// returns the digest. It may be called once; later calls return
// [ErrFinalized]. If the message is too long for the length field it
// returns [ErrLengthOverflow] and leaves the digest untouched.
func (d *Digest) Finalize() ([Size]byte, error) {
	if d.finalized {
		return [Size]byte{}, ErrFinalized
	}
	if d.length > maxLength {
		return [Size]byte{}, ErrLengthOverflow
	}

	// One 0x80 byte, then zeros until the length is 56 mod 64, then
	// the bit length. The total always ends on a block boundary.
	var padding [BlockSize + 8]byte
	padding[0] = 0x80
	var padLength uint64
	if remainder := d.length % BlockSize; remainder < BlockSize-8 {
		padLength = BlockSize - 8 - remainder
	} else {
		padLength = 2*BlockSize - 8 - remainder
	}
	binary.BigEndian.PutUint64(padding[padLength:], d.length<<3)
	d.absorb(padding[:padLength+8])

	if d.buffer.len() != 0 {
		panic("sha1: padding did not end on a block boundary")
	}
	d.finalized = true

	var sum [Size]byte
	for i, word := range d.h {
		binary.BigEndian.PutUint32(sum[i*4:], word)
	}
	return sum, nil
}

// Sum appends the digest of the data written so far to in. The
// computation runs on a copy, so d stays active and can keep accepting
// writes. Sum panics if d was already finalized: hash.Hash offers no
// error return and the caller has broken the digest's lifecycle.
func (d *Digest) Sum(in []byte) []byte {
	snapshot := *d
	sum, err := snapshot.Finalize()
	if err != nil {
		panic(err)
	}
	return append(in, sum[:]...)
}
