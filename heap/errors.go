// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// InvalidSizeError is returned when a negative size is passed to Allocate,
// Calloc or Realloc. mm.c, the allocator this package generalizes, leaves
// a negative size undefined (size_t silently wraps); Go's signed int64
// argument lets the core reject it outright instead of misbehaving.
type InvalidSizeError struct {
	Size int64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("heap: invalid size %d", e.Size)
}

// OutOfMemoryError is returned by Allocate, Calloc and Realloc when the
// Region refuses to grow. Internal allocator state remains consistent
// after this error; a subsequent Free of any still-valid payload succeeds
// normally.
type OutOfMemoryError struct {
	Requested int64
	Err       error
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("heap: out of memory requesting %d bytes: %v", e.Requested, e.Err)
}

func (e *OutOfMemoryError) Unwrap() error { return e.Err }

// InitializationError is returned by Init when the Region's reported low
// address does not match the address the prologue was actually placed
// at. Init's only other failure is an OutOfMemoryError when the Region
// cannot provide the prologue's bytes.
type InitializationError struct {
	Low       int64
	PrologueAt int64
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("heap: prologue placed at %d, region reports low address %d", e.PrologueAt, e.Low)
}

// CorruptionError is raised only by CheckHeap, never by Allocate, Free or
// Realloc themselves: the hot paths never detect corruption, matching the
// "Undefined" error kind in the allocator's error design - double free,
// use-after-free and freeing a non-payload pointer are simply not caught
// there. CheckHeap is the optional, explicit place such problems surface.
type CorruptionError struct {
	Reason string
	Offset int64
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("heap: corrupt at offset %d: %s", e.Offset, e.Reason)
}
