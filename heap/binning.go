// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// numBins is the number of segregated free lists.
const numBins = 15

// binBound pairs the largest m (where m = (payloadSize-8)/16) a bin holds
// with that bin's index. lldb's flt.go keeps its free-list table as a
// sorted slice of (minSize, slot) pairs read from an FLT implementation
// rather than a cascade of if/else comparisons (see flt.newFlt); this is
// the same idea, specialized to the 15 fixed bins this allocator spec
// mandates instead of a pluggable FLT.
type binBound struct {
	maxM int64
	bin  int
}

// binTable lists every bin boundary except the last, open-ended one
// (bin 14, m >= 2049), which binForM falls through to.
var binTable = []binBound{
	{1, 0},
	{2, 1},
	{3, 2},
	{4, 3},
	{6, 4},
	{8, 5},
	{16, 6},
	{32, 7},
	{64, 8},
	{128, 9},
	{256, 10},
	{512, 11},
	{1024, 12},
	{2048, 13},
}

// binForM returns the free-list index for a block whose m = (payloadSize
// - 8) / 16. m must be >= 1.
func binForM(m int64) int {
	for _, b := range binTable {
		if m <= b.maxM {
			return b.bin
		}
	}
	return numBins - 1
}

// binForSize returns the free-list index holding blocks of the given
// payload size. size must be a valid quantized payload size (24 + 16k).
func binForSize(size int64) int {
	return binForM((size - headerSize) / alignment)
}
