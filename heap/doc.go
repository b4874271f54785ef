// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package heap implements a general purpose dynamic storage allocator
operating over a single contiguous, monotonically growing byte region (the
"heap") exposed by a host memory layer, the Region interface.

The package provides the standard four-operation allocator contract -
Allocate, Free, Realloc, Calloc - on 16-byte aligned payloads. It is built
around a segregated free-list design with boundary-tag coalescing, in-place
splitting of oversized free blocks and size-class binning, the same family
of techniques lldb.Allocator uses for file storage, here specialized to a
single byte-addressable Region rather than a random access file.

Block layout

A block is an 8-byte header followed by a payload whose size (excluding
the header) is one of 24, 40, 56, 72, ... i.e. 24 + 16k for k >= 0. This
quantization makes every payload address 16-byte aligned while leaving the
low 3 bits of the payload size available to carry flags in the header
word:

	bit 0: allocated flag (1 = allocated, 0 = free)
	bit 1: previous-block allocated flag (1 = previous allocated, 0 = free)
	bit 2: reserved, always 0
	bits 3..63: payload size in bytes, always a multiple of 8

Only free blocks carry a footer, the last 8 bytes of the payload, storing
the same size so a block immediately left of some header h can be reached
in O(1) without walking from the start of the heap: prevFooter(h) = h -
8. The previous-block-allocated bit in every block's own header is the
optimization that lets Free skip reading that footer whenever the left
neighbour is allocated - an allocated block never has one.

Free blocks reuse their first 16 payload bytes to hold the forward and
backward links of the doubly linked free list they belong to, which is why
the minimum payload size is 24 bytes: 16 for the links plus 8 for the
footer.

The package never shrinks the heap and is not safe for concurrent use; see
Allocator for the full contract.
*/
package heap
