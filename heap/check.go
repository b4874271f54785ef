// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// CheckHeap walks the entire heap and every free list, verifying every
// invariant listed in the allocator's design: block walking reaches
// exactly the high mark, no two adjacent blocks are both free, every
// block's allocated bit agrees with its right neighbour's
// previous-allocated bit, every free block's header and footer sizes
// agree, and every free block is reachable from exactly the free list its
// size maps to.
//
// CheckHeap is purely diagnostic. Nothing in Allocate, Free or Realloc
// calls it; callers needing it wire it in themselves, e.g. after every
// operation in a test, the way lldb's Allocator.Verify is an opt-in pass
// rather than a dependency of Alloc/Free.
func (a *Allocator) CheckHeap() error {
	if a.lastBlock == a.region.Low() {
		// Only the prologue exists; there is no real block to walk, the
		// same empty-heap bound Stats checks via h <= a.lastBlock.
		return nil
	}

	inFreeList := map[int64]int{} // address -> bin it claims to live in

	h := a.region.Low() + headerSize
	for {
		size := a.size(h)
		if (size-headerSize)%alignment != 0 || size < minPayload {
			return &CorruptionError{Offset: h, Reason: fmt.Sprintf("invalid block size %d", size)}
		}

		last := a.isLast(h)
		if a.isFree(h) {
			footerSize := a.footerSizeAt(a.footer(h, size))
			if footerSize != size {
				return &CorruptionError{Offset: h, Reason: fmt.Sprintf("header size %d != footer size %d", size, footerSize)}
			}

			if !last {
				next := a.nextHeader(h, size)
				if a.isFree(next) {
					return &CorruptionError{Offset: h, Reason: "adjacent free blocks escaped coalescing"}
				}
				if !a.isPrevFree(next) {
					return &CorruptionError{Offset: next, Reason: "previous-allocated bit disagrees with free left neighbour"}
				}
			}

			inFreeList[h] = binForSize(size)
		} else if !last {
			next := a.nextHeader(h, size)
			if a.isFree(next) && a.isPrevFree(next) {
				return &CorruptionError{Offset: next, Reason: "previous-allocated bit disagrees with allocated left neighbour"}
			}
			if !a.isFree(next) && a.isPrevFree(next) {
				return &CorruptionError{Offset: next, Reason: "previous-allocated bit wrongly clear for allocated left neighbour"}
			}
		}

		if last {
			if h != a.lastBlock {
				return &CorruptionError{Offset: h, Reason: "walk ended before the recorded last block"}
			}
			if h+headerSize+size != a.region.High() {
				return &CorruptionError{Offset: h, Reason: "last block does not reach the heap high mark"}
			}
			break
		}
		h = a.nextHeader(h, size)
	}

	for bin := 0; bin < numBins; bin++ {
		for h := a.heads[bin]; h != 0; h = a.freeNext(h) {
			if !a.isFree(h) {
				return &CorruptionError{Offset: h, Reason: "block in free list is marked allocated"}
			}
			want, ok := inFreeList[h]
			if !ok {
				return &CorruptionError{Offset: h, Reason: "free-list member not seen while walking the heap"}
			}
			if want != bin {
				return &CorruptionError{Offset: h, Reason: fmt.Sprintf("free block belongs in bin %d, found in bin %d", want, bin)}
			}
			delete(inFreeList, h)
		}
	}

	if len(inFreeList) != 0 {
		for h := range inFreeList {
			return &CorruptionError{Offset: h, Reason: "free block not reachable from any free list"}
		}
	}

	return nil
}
