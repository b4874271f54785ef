// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memregion implements a memory backed heap.Region.
package memregion

import "fmt"

// Region is a growable, slice-backed heap.Region. It is the in-memory
// descendant of lldb.MemFiler, simplified from MemFiler's page-table of
// fixed-size pages (built for sparse, possibly huge file-like access
// patterns) down to one flat, doubling slice: a heap only ever grows at
// its high end and everything below that end is live, so there is
// nothing sparse to index around.
//
// A Region's zero value is not ready for use; call New or NewLimited.
type Region struct {
	buf []byte
	max int64 // 0 means unbounded
}

// New returns an unbounded Region.
func New() *Region { return &Region{} }

// NewLimited returns a Region that refuses to Extend past max bytes
// total, useful for exercising out-of-memory handling in callers without
// needing to actually exhaust process memory.
func NewLimited(max int64) *Region { return &Region{max: max} }

// Extend implements heap.Region.
func (r *Region) Extend(n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("memregion: negative extend size %d", n)
	}

	at := int64(len(r.buf))
	need := at + n
	if r.max != 0 && need > r.max {
		return 0, fmt.Errorf("memregion: extend to %d bytes exceeds limit %d", need, r.max)
	}

	if int64(cap(r.buf)) < need {
		newCap := int64(cap(r.buf))
		if newCap == 0 {
			newCap = 4096
		}
		for newCap < need {
			newCap *= 2
		}
		grown := make([]byte, len(r.buf), newCap)
		copy(grown, r.buf)
		r.buf = grown
	}

	r.buf = r.buf[:need]
	return at, nil
}

// Bytes implements heap.Region.
func (r *Region) Bytes() []byte { return r.buf }

// Low implements heap.Region. A Region always starts at address 0.
func (r *Region) Low() int64 { return 0 }

// High implements heap.Region.
func (r *Region) High() int64 { return int64(len(r.buf)) }
