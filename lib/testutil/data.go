// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"math/rand/v2"
)

// Bytes returns length pseudo-random bytes derived from seed. The same
// seed always yields the same bytes.
//
//	input := testutil.Bytes(1<<20, 7)
func Bytes(length int, seed uint64) []byte {
	source := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := make([]byte, length)
	for i := range data {
		data[i] = byte(source.Uint32())
	}
	return data
}

// Partition splits data into consecutive chunks of random length
// between 0 and maxChunk inclusive. Concatenating the chunks yields
// data again. Empty chunks are deliberate: streaming writers must
// accept them.
func Partition(data []byte, maxChunk int, seed uint64) [][]byte {
	if maxChunk < 1 {
		maxChunk = 1
	}
	source := rand.New(rand.NewPCG(seed, ^seed))
	var chunks [][]byte
	for len(data) > 0 {
		size := min(source.IntN(maxChunk+1), len(data))
		chunks = append(chunks, data[:size])
		data = data[size:]
	}
	return chunks
}
