/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import (
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// adjustSize rounds size up to Align and clamps it to the smallest
// legal block size. malloc(0) intentionally passes through this path
// and returns a unique, freeable pointer rather than nil.
func adjustSize(size uintptr) uintptr {
	size = alignUp(size)
	if size < blockSizeMin {
		return blockSizeMin
	}
	return size
}

// Malloc allocates size bytes, aligned to Align, growing the heap via
// the backing source's map callback if no free block is large enough.
// It returns a nil pointer and a non-nil error only when the heap is
// exhausted or size is too large to represent.
func (c *Control) Malloc(size uintptr) (unsafe.Pointer, error) {
	size = adjustSize(size)
	if size >= blockSizeMax {
		return nil, ErrInvalidSize
	}

	block := c.blockLocateFree(size)
	if block == nil {
		// The new pool's block is only found by the retry below if its
		// size maps to a cell at or above the one mappingSearch picks for
		// size, so ask for size rounded up the same way mappingSearch does.
		searchSize := size
		if size >= smallBlockSize {
			searchSize = alignUp(size + (uintptr(1) << uint(fls(uint64(size))-slShift)) - 1)
		}
		minSize := poolOverhead + blockOverhead + searchSize
		memSize := minSize
		mem := c.mapFn(&memSize, c.user)
		if mem == nil {
			return nil, ErrOutOfMemory
		}
		if memSize < minSize {
			return nil, errors.Wrap(ErrOutOfMemory, "tlsf: map granted less than the requested minimum")
		}
		c.addPool(mem, memSize, true)
		c.logger.Debug("tlsf: grew heap", zap.Uintptr("bytes", memSize))

		block = c.blockLocateFree(size)
		if block == nil {
			return nil, ErrOutOfMemory
		}
	}

	c.stats.mallocCount++
	c.blockTrimFree(block, size)
	blockSetFree(block, false)

	ptr := blockToPtr(block)
	if c.debugChecks {
		if err := c.Check(); err != nil {
			c.logger.Warn("tlsf: invariant check failed after malloc", zap.Error(err))
		}
	}
	return ptr, nil
}

// Free releases the block underlying ptr. free(nil) is a no-op, which
// is what lets realloc(p, 0) degrade to free cleanly. Freeing a block
// that is already marked free is a caller contract violation; it is
// reported as ErrDoubleFree rather than corrupting the heap.
func (c *Control) Free(ptr unsafe.Pointer) error {
	if ptr == nil {
		return nil
	}

	block := blockFromPtr(ptr)
	if block.isFree() {
		return ErrDoubleFree
	}

	c.stats.freeCount++
	blockSetFree(block, true)
	block = c.blockMergePrev(block)
	block = c.blockMergeNext(block)

	if block.isPool() && blockNext(block).size() == 0 && c.unmapFn != nil {
		c.removePool(block)
	} else {
		c.blockInsert(asFree(block))
	}

	if c.debugChecks {
		if err := c.Check(); err != nil {
			c.logger.Warn("tlsf: invariant check failed after free", zap.Error(err))
			return err
		}
	}
	return nil
}

// Realloc resizes the allocation at ptr to size bytes, preserving
// min(old size, size) bytes of content. A nil ptr behaves like Malloc;
// a zero size behaves like Free. If growth requires relocation and the
// backing source cannot supply more memory, the original allocation is
// left untouched and an error is returned.
func (c *Control) Realloc(ptr unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	if ptr != nil && size == 0 {
		return nil, c.Free(ptr)
	}
	if ptr == nil {
		return c.Malloc(size)
	}

	block := blockFromPtr(ptr)
	if block.isFree() {
		return nil, ErrDoubleFree
	}

	next := blockNext(block)
	curSize := block.size()
	combined := curSize + next.size() + blockOverhead

	size = adjustSize(size)
	if size >= blockSizeMax {
		return nil, ErrInvalidSize
	}

	if size > curSize && (!next.isFree() || size > combined) {
		p, err := c.Malloc(size)
		if err != nil {
			return nil, err
		}
		copyBytes(p, ptr, curSize)
		if err := c.Free(ptr); err != nil {
			c.logger.Warn("tlsf: free of reallocated block failed", zap.Error(err))
		}
		return p, nil
	}

	if size > curSize {
		block = c.blockMergeNext(block)
		blockNext(block).setPrevFree(false)
	}

	c.blockTrimUsed(block, size)
	if c.debugChecks {
		if err := c.Check(); err != nil {
			c.logger.Warn("tlsf: invariant check failed after realloc", zap.Error(err))
		}
	}
	return ptr, nil
}

// Calloc allocates size bytes and zeroes them.
func (c *Control) Calloc(size uintptr) (unsafe.Pointer, error) {
	ptr, err := c.Malloc(size)
	if err != nil {
		return nil, err
	}
	zeroBytes(ptr, size)
	return ptr, nil
}

func copyBytes(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}

func zeroBytes(ptr unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	clear(unsafe.Slice((*byte)(ptr), n))
}
