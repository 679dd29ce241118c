// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sha1

import (
	"bytes"
	"testing"
)

func TestBlockBufferFill(t *testing.T) {
	var buffer blockBuffer

	if taken := buffer.fill([]byte("hello")); taken != 5 {
		t.Fatalf("fill took %d bytes, want 5", taken)
	}
	if buffer.len() != 5 || buffer.full() {
		t.Fatalf("len = %d full = %v, want 5 false", buffer.len(), buffer.full())
	}

	taken := buffer.fill(make([]byte, 100))
	if taken != BlockSize-5 {
		t.Errorf("fill took %d bytes, want %d", taken, BlockSize-5)
	}
	if !buffer.full() {
		t.Error("buffer not full after topping up")
	}
	if !bytes.HasPrefix(buffer.block()[:], []byte("hello")) {
		t.Error("block lost the first bytes")
	}
}

func TestBlockBufferReset(t *testing.T) {
	var buffer blockBuffer
	buffer.fill(bytes.Repeat([]byte{0xff}, 40))
	buffer.reset()

	if buffer.len() != 0 {
		t.Errorf("len after reset = %d", buffer.len())
	}
	if buffer.data != ([BlockSize]byte{}) {
		t.Error("reset left stale bytes in the buffer")
	}
}

func TestBlockBufferPartialBlockPanics(t *testing.T) {
	var buffer blockBuffer
	buffer.fill([]byte("short"))
	defer func() {
		if recover() == nil {
			t.Error("block() on a partial buffer did not panic")
		}
	}()
	buffer.block()
}
