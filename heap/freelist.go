// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Free blocks overlay their forward and backward free-list links on the
// first 16 bytes of their own payload - the same trick lldb's free blocks
// play with prev/next handles (lldb/falloc.go's "Free blocks" section),
// here as two 8-byte little-endian addresses rather than lldb's 7-byte
// network-order handles, since this allocator has no need to keep one
// byte free for a tag.

func (a *Allocator) freeNext(h int64) int64 {
	return int64(readWord(a.mem(), a.payload(h)))
}

func (a *Allocator) freePrev(h int64) int64 {
	return int64(readWord(a.mem(), a.payload(h)+8))
}

func (a *Allocator) setFreeNext(h, next int64) {
	writeWord(a.mem(), a.payload(h), uint64(next))
}

func (a *Allocator) setFreePrev(h, prev int64) {
	writeWord(a.mem(), a.payload(h)+8, uint64(prev))
}

// linkFree inserts h, a free block, at the head of bin's list (LIFO).
func (a *Allocator) linkFree(h int64, bin int) {
	next := a.heads[bin]
	a.setFreePrev(h, 0)
	a.setFreeNext(h, next)
	if next != 0 {
		a.setFreePrev(next, h)
	}
	a.heads[bin] = h
}

// unlinkFree removes h from bin's list. h must currently be a member of
// that list.
func (a *Allocator) unlinkFree(h int64, bin int) {
	prev := a.freePrev(h)
	next := a.freeNext(h)
	switch prev {
	case 0:
		a.heads[bin] = next
		if next != 0 {
			a.setFreePrev(next, 0)
		}
	default:
		a.setFreeNext(prev, next)
		if next != 0 {
			a.setFreePrev(next, prev)
		}
	}
}
