/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import "github.com/pkg/errors"

// Check walks the entire index and reports the first broken invariant
// it finds: bitmap/list agreement, coalescing, correct index
// placement, and free_size+used_size==total_size. It is O(number of
// free blocks) and is intended for debug builds and tests, not the
// allocation hot path — see WithDebugAssertions for running it
// automatically.
func (c *Control) Check() error {
	for fl := 0; fl < flCount; fl++ {
		flSet := c.flBitmap&(1<<uint(fl)) != 0
		slList := c.slBitmap[fl]

		for sl := 0; sl < slCount; sl++ {
			slSet := slList&(1<<uint(sl)) != 0
			head := c.blocks[fl][sl]

			if !flSet && slSet {
				return errors.Wrapf(ErrCorruptHeap, "fl bitmap clear but sl bitmap set at fl=%d sl=%d", fl, sl)
			}
			if !slSet {
				if head != &c.blockNull {
					return errors.Wrapf(ErrCorruptHeap, "list at fl=%d sl=%d should be empty", fl, sl)
				}
				continue
			}
			if head == &c.blockNull {
				return errors.Wrapf(ErrCorruptHeap, "list at fl=%d sl=%d marked nonempty but head is null", fl, sl)
			}

			for b := head; b != &c.blockNull; b = b.nextFree {
				if err := c.checkFreeBlock(b, fl, sl); err != nil {
					return err
				}
			}
		}
	}

	if c.stats.freeSize+c.stats.usedSize != c.stats.totalSize {
		return errors.Wrapf(ErrCorruptHeap, "free_size(%d)+used_size(%d) != total_size(%d)",
			c.stats.freeSize, c.stats.usedSize, c.stats.totalSize)
	}
	if c.stats.freeCount > c.stats.mallocCount {
		return errors.Wrap(ErrCorruptHeap, "free_count exceeds malloc_count")
	}
	return nil
}

func (c *Control) checkFreeBlock(b *freeBlockHeader, fl, sl int) error {
	bh := &b.blockHeader
	if !bh.isFree() {
		return errors.Wrap(ErrCorruptHeap, "indexed block is not marked free")
	}
	if bh.isPrevFree() {
		return errors.Wrap(ErrCorruptHeap, "adjacent free blocks should have coalesced (prev)")
	}
	next := blockNext(bh)
	if next.isFree() {
		return errors.Wrap(ErrCorruptHeap, "adjacent free blocks should have coalesced (next)")
	}
	if !next.isPrevFree() {
		return errors.Wrap(ErrCorruptHeap, "next block does not record this block as free")
	}
	if bh.size() < blockSizeMin {
		return errors.Wrap(ErrCorruptHeap, "free block below minimum size")
	}
	fli, sli := mappingInsert(bh.size())
	if fli != fl || sli != sl {
		return errors.Wrapf(ErrCorruptHeap, "block of size %d indexed at (%d,%d), belongs at (%d,%d)",
			bh.size(), fl, sl, fli, sli)
	}
	return nil
}
