/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

// Package tlsf implements a Two-Level Segregated Fit memory allocator.
//
// # Overview
//
// TLSF manages one or more memory pools obtained from a caller-supplied
// backing source (a pair of map/unmap callbacks) and serves allocation
// requests in O(1) worst-case time with low, bounded fragmentation. It
// maintains a two-level bitmap index over segregated free lists: the
// first level buckets by the position of a block's most significant bit,
// the second level linearly subdivides each first-level bucket.
//
// # Usage
//
//	c, err := tlsf.Create(mapFn, unmapFn, nil)
//	if err != nil {
//		return err
//	}
//	defer c.Destroy()
//
//	ptr, err := c.Malloc(128)
//	if err != nil {
//		return err
//	}
//	defer c.Free(ptr)
//
// The map callback receives a minimum byte count and must return a
// pointer to at least that many ALIGN-aligned bytes, updating the size
// in place to the amount actually granted; the unmap callback releases
// a region previously returned by map. See the mmapsrc and heapsrc
// packages for ready-made backing sources.
//
// IMPORTANT: This package is NOT goroutine-safe. Concurrent access from
// multiple goroutines is not supported and may lead to race conditions.
// It is the responsibility of the caller to implement proper
// synchronization mechanisms when using this allocator in a concurrent
// environment.
package tlsf
