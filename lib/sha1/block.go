// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sha1

import (
	"encoding/binary"
	"math/bits"
)

// Round constants, one per 20-round phase.
const (
	k0 = 0x5A827999
	k1 = 0x6ED9EBA1
	k2 = 0x8F1BBCDC
	k3 = 0xCA62C1D6
)

// processBlock applies the SHA-1 compression function to one block and
// returns the new running state. The block is read, never written, and
// h is taken by value, so the caller decides when the result replaces
// its state. All additions wrap modulo 2^32.
func processBlock(h [5]uint32, block *[BlockSize]byte) [5]uint32 {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]

	// The four phases differ only in the mixing function and constant.
	i := 0
	for ; i < 20; i++ {
		f := b&c | ^b&d
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k0
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}
	for ; i < 40; i++ {
		f := b ^ c ^ d
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k1
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}
	for ; i < 60; i++ {
		f := (b|c)&d | b&c
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k2
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}
	for ; i < 80; i++ {
		f := b ^ c ^ d
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k3
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	return [5]uint32{h[0] + a, h[1] + b, h[2] + c, h[3] + d, h[4] + e}
}
