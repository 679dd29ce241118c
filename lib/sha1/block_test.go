// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sha1

import (
	"testing"
)

// paddedABC is "abc" after padding: one block holding the message,
// 0x80, zeros, and the 24-bit length.
func paddedABC() [BlockSize]byte {
	var block [BlockSize]byte
	copy(block[:], "abc")
	block[3] = 0x80
	block[BlockSize-1] = 24
	return block
}

func TestProcessBlockSingleBlockMessage(t *testing.T) {
	block := paddedABC()
	got := processBlock(initialState, &block)
	want := [5]uint32{0xa9993e36, 0x4706816a, 0xba3e2571, 0x7850c26c, 0x9cd0d89d}
	if got != want {
		t.Errorf("processBlock(abc) = %08x, want %08x", got, want)
	}
}

func TestProcessBlockIsPure(t *testing.T) {
	block := paddedABC()
	original := block
	state := initialState

	first := processBlock(state, &block)
	second := processBlock(state, &block)

	if first != second {
		t.Errorf("repeated calls disagree: %08x vs %08x", first, second)
	}
	if block != original {
		t.Error("processBlock modified its input block")
	}
	if state != initialState {
		t.Error("processBlock modified its input state")
	}
}

func TestProcessBlockChainsInOrder(t *testing.T) {
	var blockA, blockB [BlockSize]byte
	for i := range blockA {
		blockA[i] = byte(i)
		blockB[i] = byte(255 - i)
	}

	forward := processBlock(processBlock(initialState, &blockA), &blockB)
	backward := processBlock(processBlock(initialState, &blockB), &blockA)
	if forward == backward {
		t.Error("block order did not affect the state")
	}

	digest := New()
	digest.Write(blockA[:])
	digest.Write(blockB[:])
	if digest.h != forward {
		t.Errorf("running state after two blocks = %08x, want %08x", digest.h, forward)
	}
}

func TestPartialBlockDoesNotTouchState(t *testing.T) {
	digest := New()
	digest.Write(make([]byte, BlockSize-1))
	if digest.h != initialState {
		t.Errorf("state changed by a partial block: %08x", digest.h)
	}
	digest.Write([]byte{0})
	if digest.h == initialState {
		t.Error("state unchanged after the block completed")
	}
	if digest.buffer.len() != 0 {
		t.Errorf("buffer holds %d bytes after a completed block", digest.buffer.len())
	}
}
