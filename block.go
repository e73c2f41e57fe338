/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import "unsafe"

// Packed header flag bits. size occupies every bit except these three;
// size is always a multiple of Align (8), so its own low three bits are
// always zero and never collide with the flags.
const (
	flagFree     uint64 = 1 << 0
	flagPrevFree uint64 = 1 << 1
	flagIsPool   uint64 = 1 << 2
	flagMask     uint64 = flagFree | flagPrevFree | flagIsPool
)

// blockHeader is the fixed-size prefix present on every block, used or
// free. prevPhysBlock is only meaningful when the previous physical
// block is free: it is physically stored inside that previous block's
// trailing bytes, appearing here only to keep the accessors simple.
type blockHeader struct {
	prevPhysBlock *blockHeader
	header        uint64 // packed size | is_free | is_prev_free | is_pool
}

// freeBlockHeader extends blockHeader with the doubly-linked free-list
// pointers. These fields overlay a used block's payload; they are only
// valid while the block is free.
type freeBlockHeader struct {
	blockHeader
	nextFree *freeBlockHeader
	prevFree *freeBlockHeader
}

func (b *blockHeader) size() uintptr {
	return uintptr(b.header &^ flagMask)
}

func (b *blockHeader) setSize(size uintptr) {
	b.header = (uint64(size) &^ flagMask) | (b.header & flagMask)
}

func (b *blockHeader) isFree() bool {
	return b.header&flagFree != 0
}

func (b *blockHeader) isPrevFree() bool {
	return b.header&flagPrevFree != 0
}

func (b *blockHeader) isPool() bool {
	return b.header&flagIsPool != 0
}

func (b *blockHeader) isLast() bool {
	return b.size() == 0
}

func (b *blockHeader) setFreeFlag(v bool) {
	if v {
		b.header |= flagFree
	} else {
		b.header &^= flagFree
	}
}

func (b *blockHeader) setPrevFree(v bool) {
	if v {
		b.header |= flagPrevFree
	} else {
		b.header &^= flagPrevFree
	}
}

func (b *blockHeader) setIsPool(v bool) {
	if v {
		b.header |= flagIsPool
	} else {
		b.header &^= flagIsPool
	}
}

// blockFromPtr recovers the block header for a payload pointer
// previously returned by Malloc/Realloc/Calloc.
func blockFromPtr(ptr unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(ptr) - blockStartOffset))
}

// blockToPtr returns the payload pointer for a block.
func blockToPtr(b *blockHeader) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(b)) + blockStartOffset)
}

// blockNext returns the block immediately following b in physical
// address order. b must not be the pool's sentinel block.
func blockNext(b *blockHeader) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(blockToPtr(b)) + b.size() - blockOverhead))
}

// blockPrev returns the block immediately preceding b. Valid only when
// b.isPrevFree() is true.
func blockPrev(b *blockHeader) *blockHeader {
	return b.prevPhysBlock
}

// blockLinkNext links b with its physical successor (sets the
// successor's prevPhysBlock) and returns that successor.
func blockLinkNext(b *blockHeader) *blockHeader {
	next := blockNext(b)
	next.prevPhysBlock = b
	return next
}

// blockSetFree marks b free or used and propagates is_prev_free into
// the next physical block.
func blockSetFree(b *blockHeader, free bool) {
	b.setFreeFlag(free)
	blockLinkNext(b).setPrevFree(free)
}

func asFree(b *blockHeader) *freeBlockHeader {
	return (*freeBlockHeader)(unsafe.Pointer(b))
}
