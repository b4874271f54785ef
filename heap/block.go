// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "encoding/binary"

// Block layout constants. All sizes are in bytes.
const (
	headerSize = 8
	footerSize = 8
	alignment  = 16
	minPayload = 24 // 16 for free-list links + 8 for the footer

	flagAlloc     = uint64(1) << 0
	flagPrevAlloc = uint64(1) << 1
	flagMask      = uint64(0x7)
)

// Header and footer words are read and written as plain byte arithmetic
// over the Region's current Bytes(), never through a typed struct
// overlay: lldb's design notes for this same concern call for "an
// untyped view of the block window and explicit byte-offset accessors -
// not inheritance or polymorphism", and that is what readWord/writeWord
// and everything built on them below do.

func readWord(mem []byte, off int64) uint64 {
	return binary.LittleEndian.Uint64(mem[off : off+8])
}

func writeWord(mem []byte, off int64, w uint64) {
	binary.LittleEndian.PutUint64(mem[off:off+8], w)
}

func headerWord(size int64, alloc, prevAlloc bool) uint64 {
	w := uint64(size)
	if alloc {
		w |= flagAlloc
	}
	if prevAlloc {
		w |= flagPrevAlloc
	}
	return w
}

// roundup returns the smallest multiple of m (a power of 2) that is >= n.
func roundup(n, m int64) int64 { return (n + m - 1) &^ (m - 1) }

// normalizeSize returns the smallest valid block payload size (24, 40,
// 56, ... i.e. 24+16k) that is >= size.
func normalizeSize(size int64) int64 {
	if size <= minPayload {
		return minPayload
	}
	return minPayload + roundup(size-minPayload, alignment)
}

// mem returns the current addressable view of the underlying Region.
// Every accessor below goes through it rather than caching a slice,
// because Extend may relocate the backing storage.
func (a *Allocator) mem() []byte { return a.region.Bytes() }

// size returns the payload size encoded in the header at offset h.
func (a *Allocator) size(h int64) int64 {
	return int64(readWord(a.mem(), h) &^ flagMask)
}

func (a *Allocator) isFree(h int64) bool {
	return readWord(a.mem(), h)&flagAlloc == 0
}

func (a *Allocator) isPrevFree(h int64) bool {
	return readWord(a.mem(), h)&flagPrevAlloc == 0
}

func (a *Allocator) setSize(h int64, size int64) {
	mem := a.mem()
	w := readWord(mem, h)&flagMask | uint64(size)
	writeWord(mem, h, w)
}

func (a *Allocator) setAlloc(h int64) {
	mem := a.mem()
	writeWord(mem, h, readWord(mem, h)|flagAlloc)
}

func (a *Allocator) setFree(h int64) {
	mem := a.mem()
	writeWord(mem, h, readWord(mem, h)&^flagAlloc)
}

func (a *Allocator) setPrevAlloc(h int64) {
	mem := a.mem()
	writeWord(mem, h, readWord(mem, h)|flagPrevAlloc)
}

func (a *Allocator) setPrevFree(h int64) {
	mem := a.mem()
	writeWord(mem, h, readWord(mem, h)&^flagPrevAlloc)
}

// footer returns the address of h's footer, valid only while h is free.
func (a *Allocator) footer(h, size int64) int64 { return h + size }

// nextHeader returns the address of the block immediately to the right
// of h, valid only when h is not the last block.
func (a *Allocator) nextHeader(h, size int64) int64 { return h + headerSize + size }

// prevFooter returns the address of the footer of h's left neighbour,
// valid only when that neighbour exists and is free.
func (a *Allocator) prevFooter(h int64) int64 { return h - footerSize }

// prevHeader returns the address of the header of h's left neighbour of
// payload size prevSize.
func (a *Allocator) prevHeader(h, prevSize int64) int64 { return h - headerSize - prevSize }

// payload returns the address of h's payload.
func (a *Allocator) payload(h int64) int64 { return h + headerSize }

// headerOf is the inverse of payload.
func (a *Allocator) headerOf(p int64) int64 { return p - headerSize }

// writeFooter stamps a free block's footer with its payload size. The
// flag bits of a footer word are never consulted except as a debugging
// cross-check, so they are left zero.
func (a *Allocator) writeFooter(h, size int64) {
	writeWord(a.mem(), a.footer(h, size), uint64(size))
}

// footerSizeAt reads the size field stored at a footer address.
func (a *Allocator) footerSizeAt(off int64) int64 {
	return int64(readWord(a.mem(), off) &^ flagMask)
}
