/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import (
	"unsafe"

	"go.uber.org/zap"
)

// pool records a region obtained from the backing source so Destroy
// can unmap every pool still live, not only the initial one.
type pool struct {
	block *blockHeader
	mem   unsafe.Pointer
	size  uintptr
}

// minPoolSize is the smallest region addPool will accept: room for the
// pool overhead, one minimum-size free block, and the sentinel.
const minPoolSize = poolOverhead + blockSizeMin + blockOverhead

// addPool lays out [mem, mem+size) as one free block followed by a
// zero-size used sentinel, inserts the free block into the index, and
// records the pool so it can later be located and unmapped. isPool
// marks whether this pool should be auto-released by Free once it
// drains completely; the pool created inside Create never is.
func (c *Control) addPool(mem unsafe.Pointer, size uintptr, isPool bool) *blockHeader {
	poolSize := size - poolOverhead

	block := (*blockHeader)(mem)
	block.header = 0
	block.setSize(poolSize)
	block.setFreeFlag(true)
	block.setPrevFree(false)
	block.setIsPool(isPool)
	c.blockInsert(asFree(block))

	sentinel := blockLinkNext(block)
	sentinel.header = 0
	sentinel.setFreeFlag(false)
	sentinel.setPrevFree(true)
	sentinel.setIsPool(false)

	c.pools = append(c.pools, pool{block: block, mem: mem, size: size})

	c.stats.poolCount++
	c.stats.totalSize += int64(poolSize)
	c.stats.usedSize += int64(poolSize)

	return block
}

// removePool unmaps the pool owning block and drops its bookkeeping
// entry. block must be the initial free block of a pool, immediately
// followed by that pool's sentinel.
func (c *Control) removePool(block *blockHeader) {
	size := block.size()

	idx := -1
	for i, p := range c.pools {
		if p.block == block {
			idx = i
			break
		}
	}
	var mem unsafe.Pointer
	if idx >= 0 {
		mem = c.pools[idx].mem
		c.pools = append(c.pools[:idx], c.pools[idx+1:]...)
	} else {
		mem = unsafe.Pointer(block)
	}

	c.stats.poolCount--
	c.stats.totalSize -= int64(size)
	c.stats.usedSize -= int64(size)

	c.unmapFn(mem, size+poolOverhead, c.user)
	c.logger.Debug("tlsf: pool released", zap.Uintptr("bytes", size+poolOverhead))
}
