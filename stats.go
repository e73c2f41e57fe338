/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import (
	"fmt"

	"go.uber.org/zap"
)

// internalStats holds the live counters. They are updated on every
// mutating operation unconditionally; keeping them is O(1) and never
// changes observable allocator behavior.
type internalStats struct {
	mallocCount uint64
	freeCount   uint64
	poolCount   uint64
	freeSize    int64
	usedSize    int64
	totalSize   int64
}

// Stats is a point-in-time snapshot of a Control's bookkeeping counters.
type Stats struct {
	MallocCount uint64
	FreeCount   uint64
	PoolCount   uint64
	FreeSize    int64
	UsedSize    int64
	TotalSize   int64
}

// String renders Stats the way the reference implementation's
// tlsf_printstats does, as a single diagnostic line.
func (s Stats) String() string {
	return fmt.Sprintf(
		"TLSF free_size=%d used_size=%d total_size=%d pool_count=%d malloc_count=%d free_count=%d",
		s.FreeSize, s.UsedSize, s.TotalSize, s.PoolCount, s.MallocCount, s.FreeCount,
	)
}

// Stats returns a snapshot of c's current bookkeeping counters.
func (c *Control) Stats() Stats {
	return Stats{
		MallocCount: c.stats.mallocCount,
		FreeCount:   c.stats.freeCount,
		PoolCount:   c.stats.poolCount,
		FreeSize:    c.stats.freeSize,
		UsedSize:    c.stats.usedSize,
		TotalSize:   c.stats.totalSize,
	}
}

// LogStats emits the current Stats snapshot to c's logger at info
// level. It never runs on the allocation hot path; callers decide when
// to call it.
func (c *Control) LogStats() {
	s := c.Stats()
	c.logger.Info("tlsf stats",
		zap.Uint64("malloc_count", s.MallocCount),
		zap.Uint64("free_count", s.FreeCount),
		zap.Uint64("pool_count", s.PoolCount),
		zap.Int64("free_size", s.FreeSize),
		zap.Int64("used_size", s.UsedSize),
		zap.Int64("total_size", s.TotalSize),
	)
}
