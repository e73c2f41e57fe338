/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import "unsafe"

// Tunable parameters, fixed to the 64-bit column of the design's
// parameter table. This package assumes a 64-bit GOARCH (pointers and
// uintptr are 8 bytes); it has not been tuned for 32-bit targets.
const (
	// Align is the minimum alignment of user pointers and block sizes.
	Align uintptr = 8

	slShift = 5            // log2 of second-level subdivisions
	slCount = 1 << slShift // second-level subdivisions per first-level class (32)

	flMax   = 33          // log2 of the largest representable block (8GiB)
	flShift = slShift + 3 // SL_SHIFT + log2(Align); Align==8 so log2==3
	flCount = flMax - flShift + 1

	// smallBlockSize is the linear-zone threshold: blocks smaller than
	// this are bucketed linearly in first-level class 0.
	smallBlockSize uintptr = 1 << flShift
)

// blockOverhead is the per-block bookkeeping cost visible to a used
// block: one word holding the packed size-and-flags header. The
// prev_phys_block field is considered to belong to the previous
// physical block's tail, so it is not charged here.
const blockOverhead = unsafe.Sizeof(uint64(0))

// blockStartOffset is the byte offset from a block's header to its
// payload (the pointer returned to callers).
const blockStartOffset = unsafe.Sizeof(blockHeader{})

// poolOverhead is the overhead addPool carves out of a mapped region
// before what's left becomes the pool's single free block: the free
// block's own header (there is no physical predecessor whose tail it
// can borrow, unlike every later block) plus the sentinel's header
// word. Unlike the reference layout, which backs the free block's
// header into the blockOverhead bytes just before the mapped pointer,
// this header has to live inside [mem, mem+size) because mem is
// whatever slice or mapping the map callback handed back, with no
// promise of usable bytes before it.
const poolOverhead = blockStartOffset + blockOverhead

// freeBlockStructSize is the full size of a free block's header,
// including the two free-list links that overlay a used block's
// payload.
const freeBlockStructSize = unsafe.Sizeof(freeBlockHeader{})

// blockSizeMin is the smallest legal value of a block's size field: it
// must be large enough that a free block's next_free/prev_free links
// fit inside it.
const blockSizeMin = freeBlockStructSize - blockOverhead

// blockSizeMax is the largest allocation the index can represent.
const blockSizeMax uintptr = 1 << flMax
