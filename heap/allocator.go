// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/cznic/mathutil"

// Allocator manages allocation and deallocation of payload blocks within
// a Region. Its zero value is not ready for use: call Init first.
//
// Allocator is single-threaded and non-reentrant, matching the contract
// of the allocator it generalizes: no operation may suspend, all state
// (free-list heads, the last-block address, the Region's bytes) is
// mutated without synchronization, and reentering any method from a
// second goroutine is undefined. Like lldb.Allocator it is designed for
// exclusive consumption by one goroutine, or behind a caller-supplied
// mutex.
type Allocator struct {
	region Region

	heads     [numBins]int64 // free-list heads, 0 = empty
	lastBlock int64          // address of the header of the highest block

	allocs int // lifetime allocations, for Stats
	frees  int // lifetime deallocations, for Stats
}

// NewAllocator returns an Allocator over r. Init must still be called
// before any other method.
func NewAllocator(r Region) *Allocator {
	return &Allocator{region: r}
}

// Init places the heap prologue and resets all free-list state. It must
// be called once before any other Allocator method and may be called
// again to rebuild a fresh heap over the same (freshly reset) Region.
func (a *Allocator) Init() error {
	at, err := a.region.Extend(headerSize)
	if err != nil {
		return &OutOfMemoryError{Requested: headerSize, Err: err}
	}

	if at != a.region.Low() {
		return &InitializationError{Low: a.region.Low(), PrologueAt: at}
	}

	writeWord(a.mem(), at, headerWord(0, true, true))
	a.lastBlock = at
	for i := range a.heads {
		a.heads[i] = 0
	}
	a.allocs, a.frees = 0, 0
	return nil
}

// isLast reports whether h is the address of the highest block in the
// heap, the one case nextHeader(h, ...) must not be dereferenced for.
func (a *Allocator) isLast(h int64) bool { return h == a.lastBlock }

// isFirst reports whether h is the first real block (right after the
// prologue), the one case prevFooter(h) must not be dereferenced for.
func (a *Allocator) isFirst(h int64) bool { return h == a.region.Low()+headerSize }

// grow extends the Region by n payload bytes and stamps a freshly
// allocated block there, becoming the new last block. The previous-block-
// allocated bit is derived uniformly from whether the current last block
// (prologue included) is allocated - the prologue is permanently
// allocated, so this single rule covers both the "heap was empty" and
// "previous last block was allocated" cases the spec calls out
// separately.
func (a *Allocator) grow(n int64) (int64, error) {
	at, err := a.region.Extend(headerSize + n)
	if err != nil {
		return 0, &OutOfMemoryError{Requested: headerSize + n, Err: err}
	}

	prevAlloc := !a.isFree(a.lastBlock)
	writeWord(a.mem(), at, headerWord(n, true, prevAlloc))
	a.lastBlock = at
	return at, nil
}

// findFit searches bins starting at startBin for the first free block
// whose payload size is >= n, removing it from its free list. It returns
// 0 if no such block exists.
//
// Bins 0-3 each hold exactly one payload size, so a non-empty bin in that
// range always fits (the caller only reaches a bin >= its own target bin,
// and every higher exact-size bin holds a strictly larger size); only
// bins 4 and up require walking the list.
func (a *Allocator) findFit(n int64, startBin int) int64 {
	for bin := startBin; bin < numBins; bin++ {
		head := a.heads[bin]
		if head == 0 {
			continue
		}

		if bin < 4 {
			a.unlinkFree(head, bin)
			return head
		}

		for cur := head; cur != 0; cur = a.freeNext(cur) {
			if a.size(cur) >= n {
				a.unlinkFree(cur, bin)
				return cur
			}
		}
	}
	return 0
}

// place prepares victim (a free block of size >= n just removed from its
// free list) to serve an allocation of n bytes, splitting it when the
// remainder is large enough to form its own minimum-sized block, and
// returns the address of the block now ready to hand out.
func (a *Allocator) place(victim, n int64) int64 {
	vsize := a.size(victim)
	if vsize-n >= headerSize+minPayload {
		rightSize := vsize - n - headerSize
		a.setSize(victim, n)
		right := a.nextHeader(victim, n)
		writeWord(a.mem(), right, headerWord(rightSize, false, true))
		a.writeFooter(right, rightSize)
		if a.isLast(victim) {
			a.lastBlock = right
		}
		a.linkFree(right, binForSize(rightSize))
	} else if !a.isLast(victim) {
		a.setPrevAlloc(a.nextHeader(victim, vsize))
	}

	a.setAlloc(victim)
	return victim
}

// Allocate reserves a block able to hold size bytes and returns the
// address of its payload, or the null address 0 if size is 0. It returns
// an InvalidSizeError for a negative size and an OutOfMemoryError when
// the Region refuses to grow.
func (a *Allocator) Allocate(size int64) (int64, error) {
	if size < 0 {
		return 0, &InvalidSizeError{Size: size}
	}
	if size == 0 {
		return 0, nil
	}

	n := normalizeSize(size)
	if victim := a.findFit(n, binForSize(n)); victim != 0 {
		a.allocs++
		return a.payload(a.place(victim, n)), nil
	}

	h, err := a.grow(n)
	if err != nil {
		return 0, err
	}
	a.allocs++
	return a.payload(h), nil
}

// Free releases the block whose payload address is p. It is a no-op if p
// is the null address or does not fall within the heap; freeing anything
// else that is not a live payload address previously returned by
// Allocate, Calloc or Realloc is undefined and may corrupt the heap -
// Free performs no validation of that.
func (a *Allocator) Free(p int64) {
	if p == 0 {
		return
	}

	h := a.headerOf(p)
	if h < a.region.Low()+headerSize || h+headerSize > a.region.High() {
		return
	}

	a.free(h)
	a.frees++
}

func (a *Allocator) free(h int64) {
	size := a.size(h)

	rightFree := !a.isLast(h) && a.isFree(a.nextHeader(h, size))
	leftFree := !a.isFirst(h) && a.isPrevFree(h)

	switch {
	case !leftFree && !rightFree:
		a.freeIsolated(h, size)
	case !leftFree && rightFree:
		a.freeJoinRight(h, size)
	case leftFree && !rightFree:
		a.freeJoinLeft(h, size)
	default:
		a.freeJoinBoth(h, size)
	}
}

// freeIsolated handles case 1 of Free: neither neighbour is free.
func (a *Allocator) freeIsolated(h, size int64) {
	a.writeFooter(h, size)
	a.setFree(h)
	if !a.isLast(h) {
		a.setPrevFree(a.nextHeader(h, size))
	}
	a.linkFree(h, binForSize(size))
}

// freeJoinRight handles case 2: only the right neighbour is free.
func (a *Allocator) freeJoinRight(h, size int64) {
	r := a.nextHeader(h, size)
	rsize := a.size(r)
	a.unlinkFree(r, binForSize(rsize))

	newSize := size + rsize + headerSize
	wasLast := a.isLast(r)
	a.setSize(h, newSize)
	a.setFree(h)
	a.writeFooter(h, newSize)
	if wasLast {
		a.lastBlock = h
	}
	a.linkFree(h, binForSize(newSize))
}

// freeJoinLeft handles case 3: only the left neighbour is free.
func (a *Allocator) freeJoinLeft(h, size int64) {
	lsize := a.footerSizeAt(a.prevFooter(h))
	l := a.prevHeader(h, lsize)
	a.unlinkFree(l, binForSize(lsize))

	newSize := lsize + size + headerSize
	wasLast := a.isLast(h)
	a.setSize(l, newSize)
	a.setFree(l)
	a.writeFooter(l, newSize)
	if wasLast {
		a.lastBlock = l
	} else {
		a.setPrevFree(a.nextHeader(l, newSize))
	}
	a.linkFree(l, binForSize(newSize))
}

// freeJoinBoth handles case 4: both neighbours are free.
func (a *Allocator) freeJoinBoth(h, size int64) {
	r := a.nextHeader(h, size)
	rsize := a.size(r)
	lsize := a.footerSizeAt(a.prevFooter(h))
	l := a.prevHeader(h, lsize)

	a.unlinkFree(r, binForSize(rsize))
	a.unlinkFree(l, binForSize(lsize))

	newSize := lsize + size + rsize + 2*headerSize
	wasLast := a.isLast(r)
	a.setSize(l, newSize)
	a.setFree(l)
	a.writeFooter(l, newSize)
	if wasLast {
		a.lastBlock = l
	}
	a.linkFree(l, binForSize(newSize))
}

// Realloc changes the size of the block at p to size bytes, preserving
// min(size, current payload size) bytes of content, and returns the
// address of the (possibly relocated) payload. p == 0 behaves like
// Allocate(size); size == 0 behaves like Free(p) and returns 0.
//
// This implementation always allocates anew and copies rather than
// growing or shrinking in place; correctness is unaffected, only
// throughput, exactly as the design this generalizes notes.
func (a *Allocator) Realloc(p, size int64) (int64, error) {
	if p == 0 {
		return a.Allocate(size)
	}
	if size == 0 {
		a.Free(p)
		return 0, nil
	}

	newP, err := a.Allocate(size)
	if err != nil {
		return 0, err
	}

	oldSize := a.size(a.headerOf(p))
	n := mathutil.MinInt64(oldSize, size)
	mem := a.mem()
	copy(mem[newP:newP+n], mem[p:p+n])

	a.Free(p)
	return newP, nil
}

// Calloc allocates space for nmemb elements of size bytes each and zeroes
// it. Overflow of nmemb*size is not guarded, matching the spec: callers
// are responsible for passing sane counts.
func (a *Allocator) Calloc(nmemb, size int64) (int64, error) {
	total := nmemb * size
	p, err := a.Allocate(total)
	if err != nil || p == 0 {
		return p, err
	}

	mem := a.mem()
	b := mem[p : p+total]
	for i := range b {
		b[i] = 0
	}
	return p, nil
}

// Stats summarizes the current heap state for diagnostics. It is never
// consulted by Allocate, Free or Realloc; nothing here is load-bearing.
type Stats struct {
	Allocs         int // allocations made so far
	Frees          int // frees made so far
	AllocatedBytes int64
	FreeBytes      int64
	AllocatedCount int
	FreeCount      int
	LargestFree    int64
}

// Stats walks the heap and reports its current block composition. It is
// the diagnostic sibling of lldb's AllocStats, restored here from
// original_source/mm.c's omitted introspection surface because it costs
// nothing to compute alongside CheckHeap's walk.
func (a *Allocator) Stats() Stats {
	st := Stats{Allocs: a.allocs, Frees: a.frees}
	h := a.region.Low() + headerSize
	for h <= a.lastBlock {
		size := a.size(h)
		if a.isFree(h) {
			st.FreeCount++
			st.FreeBytes += size
			st.LargestFree = mathutil.MaxInt64(st.LargestFree, size)
		} else {
			st.AllocatedCount++
			st.AllocatedBytes += size
		}
		if a.isLast(h) {
			break
		}
		h = a.nextHeader(h, size)
	}
	return st
}
