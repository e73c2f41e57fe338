/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import "unsafe"

// blockCanSplit reports whether block is large enough to be split into
// a used prefix of size bytes and a legal free remainder.
func blockCanSplit(block *blockHeader, size uintptr) bool {
	return block.size() >= freeBlockStructSize+size
}

// blockSplit carves a used prefix of size bytes off the front of block
// and returns the free remainder. block.size() is overwritten to size.
// The caller is responsible for linking and inserting the remainder.
func blockSplit(block *blockHeader, size uintptr) *blockHeader {
	remaining := (*blockHeader)(unsafe.Pointer(uintptr(blockToPtr(block)) + size - blockOverhead))
	remainSize := block.size() - (size + blockOverhead)

	remaining.header = 0
	remaining.setSize(remainSize)
	blockSetFree(remaining, true)

	block.setSize(size)
	return remaining
}

// blockAbsorb merges block's storage into the adjacent previous free
// block prev and returns prev. No free-list manipulation happens here.
func blockAbsorb(prev, block *blockHeader) *blockHeader {
	prev.setSize(prev.size() + block.size() + blockOverhead)
	blockLinkNext(prev)
	return prev
}

// blockMergePrev merges block with its physical predecessor if that
// predecessor is free, returning the merged block.
func (c *Control) blockMergePrev(block *blockHeader) *blockHeader {
	if block.isPrevFree() {
		prev := blockPrev(block)
		c.blockRemove(asFree(prev))
		block = blockAbsorb(prev, block)
	}
	return block
}

// blockMergeNext merges block with its physical successor if that
// successor is free, returning the merged block.
func (c *Control) blockMergeNext(block *blockHeader) *blockHeader {
	next := blockNext(block)
	if next.isFree() {
		c.blockRemove(asFree(next))
		block = blockAbsorb(block, next)
	}
	return block
}

// blockTrimFree splits off and reinserts any trailing space in a free
// block beyond size bytes.
func (c *Control) blockTrimFree(block *blockHeader, size uintptr) {
	if blockCanSplit(block, size) {
		remaining := blockSplit(block, size)
		blockLinkNext(block)
		remaining.setPrevFree(true)
		c.blockInsert(asFree(remaining))
	}
}

// blockTrimUsed splits off any trailing space in a used block beyond
// size bytes, coalescing the remainder with its successor if free
// before reinserting it.
func (c *Control) blockTrimUsed(block *blockHeader, size uintptr) {
	if blockCanSplit(block, size) {
		remaining := blockSplit(block, size)
		remaining.setPrevFree(false)
		remaining = c.blockMergeNext(remaining)
		c.blockInsert(asFree(remaining))
	}
}
