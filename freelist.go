/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

// searchSuitableBlock returns a free block from cell (fl, sl) or the
// smallest cell larger than it, plus the cell it was actually found in.
// Returns nil if no suitable block exists anywhere in the index.
func (c *Control) searchSuitableBlock(fl, sl int) (*freeBlockHeader, int, int) {
	slMap := c.slBitmap[fl] & (^uint32(0) << uint(sl))
	if slMap != 0 {
		sl = ffs(slMap)
		return c.blocks[fl][sl], fl, sl
	}

	flMap := c.flBitmap & (^uint32(0) << uint(fl+1))
	if flMap == 0 {
		return nil, fl, sl
	}
	fl = ffs(flMap)
	sl = ffs(c.slBitmap[fl])
	return c.blocks[fl][sl], fl, sl
}

// insertFreeBlock prepends b to the free list at (fl, sl) and sets both
// bitmap bits.
func (c *Control) insertFreeBlock(b *freeBlockHeader, fl, sl int) {
	current := c.blocks[fl][sl]
	b.nextFree = current
	b.prevFree = &c.blockNull
	current.prevFree = b

	c.blocks[fl][sl] = b
	setBit(fl, &c.flBitmap)
	setBit(sl, &c.slBitmap[fl])

	c.stats.freeSize += int64(b.size())
	c.stats.usedSize -= int64(b.size())
}

// removeFreeBlock splices b out of the free list at (fl, sl), clearing
// bitmap bits if the cell becomes empty.
func (c *Control) removeFreeBlock(b *freeBlockHeader, fl, sl int) {
	prev := b.prevFree
	next := b.nextFree
	next.prevFree = prev
	prev.nextFree = next

	if c.blocks[fl][sl] == b {
		c.blocks[fl][sl] = next
		if next == &c.blockNull {
			clearBit(sl, &c.slBitmap[fl])
			if c.slBitmap[fl] == 0 {
				clearBit(fl, &c.flBitmap)
			}
		}
	}

	c.stats.freeSize -= int64(b.size())
	c.stats.usedSize += int64(b.size())
}

// blockInsert computes (fl, sl) from b's current size and inserts it.
func (c *Control) blockInsert(b *freeBlockHeader) {
	fl, sl := mappingInsert(b.size())
	c.insertFreeBlock(b, fl, sl)
}

// blockRemove computes (fl, sl) from b's current size and removes it.
func (c *Control) blockRemove(b *freeBlockHeader) {
	fl, sl := mappingInsert(b.size())
	c.removeFreeBlock(b, fl, sl)
}

// blockLocateFree finds, removes, and returns a free block able to
// satisfy a request of size bytes, or nil if none exists.
func (c *Control) blockLocateFree(size uintptr) *blockHeader {
	fl, sl := mappingSearch(size)
	block, fl, sl := c.searchSuitableBlock(fl, sl)
	if block == nil {
		return nil
	}
	c.removeFreeBlock(block, fl, sl)
	return &block.blockHeader
}
