// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sha1

// blockBuffer holds the tail of the input that has not yet formed a
// complete block. Between calls to [Digest.Write] it is never full: a
// completed block is transformed and the buffer emptied immediately.
type blockBuffer struct {
	data [BlockSize]byte
	n    int
}

// fill copies as much of p as fits into the free space of the buffer
// and returns the number of bytes taken.
func (b *blockBuffer) fill(p []byte) int {
	taken := copy(b.data[b.n:], p)
	b.n += taken
	if b.n > BlockSize {
		panic("sha1: block buffer overrun")
	}
	return taken
}

func (b *blockBuffer) full() bool { return b.n == BlockSize }

func (b *blockBuffer) len() int { return b.n }

// block returns the buffered block. Only valid when the buffer is full.
func (b *blockBuffer) block() *[BlockSize]byte {
	if b.n != BlockSize {
		panic("sha1: partial block handed to the transform")
	}
	return &b.data
}

// pending returns the buffered bytes that have not been transformed.
func (b *blockBuffer) pending() []byte { return b.data[:b.n] }

// reset empties the buffer. Stale bytes past n are zeroed so that a
// marshaled state never carries input that was already consumed.
func (b *blockBuffer) reset() {
	clear(b.data[:])
	b.n = 0
}
