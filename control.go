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

// MapFunc requests at least *size bytes of ALIGN-aligned memory from the
// backing source. On success it updates *size to the amount actually
// granted (>= the requested minimum) and returns a non-nil pointer. On
// failure it returns nil; *size is left unspecified in that case.
type MapFunc func(size *uintptr, user any) unsafe.Pointer

// UnmapFunc releases a region previously returned by the corresponding
// MapFunc. ptr and size are exactly the values map produced.
type UnmapFunc func(ptr unsafe.Pointer, size uintptr, user any)

// Control is a single TLSF allocator instance: the two-level bitmap
// index plus the set of pools it has acquired from its backing source.
//
// A zero Control is not usable; construct one with Create.
//
// Control is NOT goroutine-safe. Callers using it from multiple
// goroutines must provide their own mutual exclusion.
type Control struct {
	flBitmap  uint32
	slBitmap  [flCount]uint32
	blockNull freeBlockHeader
	blocks    [flCount][slCount]*freeBlockHeader

	mapFn   MapFunc
	unmapFn UnmapFunc
	user    any

	pools []pool
	stats internalStats

	logger          *zap.Logger
	debugChecks     bool
	initialPoolSize uintptr
}

// Option configures a Control at construction time.
type Option func(*Control)

// WithLogger overrides the default no-op logger. Logging only happens
// off the allocation hot path: pool grow/shrink events and Check
// failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Control) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInitialPoolSize requests at least n bytes for the initial pool
// Create maps and attaches, rather than the package
// minimum. The backing source may still grant more.
func WithInitialPoolSize(n uintptr) Option {
	return func(c *Control) {
		c.initialPoolSize = n
	}
}

// WithDebugAssertions enables a full Check() pass after every Malloc,
// Free, and Realloc. This is the Go equivalent of building the
// reference implementation with TLSF_ASSERT/TLSF_DEBUG defined: it
// trades the O(1) guarantee for early detection of a corrupted heap,
// and should not be enabled in latency-sensitive production use.
func WithDebugAssertions(enabled bool) Option {
	return func(c *Control) {
		c.debugChecks = enabled
	}
}

// Create initializes a new allocator. It requests an initial pool from
// mapFn (the region is not marked is_pool, so Free never auto-releases
// it; only Destroy does). unmapFn may be nil, in which case pools are
// retained for the life of the Control.
func Create(mapFn MapFunc, unmapFn UnmapFunc, user any, opts ...Option) (*Control, error) {
	if mapFn == nil {
		return nil, errors.New("tlsf: map function must not be nil")
	}

	c := &Control{
		mapFn:   mapFn,
		unmapFn: unmapFn,
		user:    user,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.blockNull.nextFree = &c.blockNull
	c.blockNull.prevFree = &c.blockNull
	for fl := 0; fl < flCount; fl++ {
		for sl := 0; sl < slCount; sl++ {
			c.blocks[fl][sl] = &c.blockNull
		}
	}

	size := c.initialPoolSize
	if size < minPoolSize {
		size = minPoolSize
	}
	mem := mapFn(&size, user)
	if mem == nil {
		return nil, errors.Wrap(ErrOutOfMemory, "tlsf: initial pool map failed")
	}
	if size < minPoolSize {
		return nil, errors.Wrap(ErrOutOfMemory, "tlsf: map granted less than the minimum pool size")
	}
	if uintptr(mem)%Align != 0 {
		return nil, errors.New("tlsf: map returned a misaligned pointer")
	}

	c.addPool(mem, size, false)
	c.logger.Debug("tlsf: control created", zap.Uintptr("initial_pool_bytes", size))
	return c, nil
}

// Destroy releases every pool still attached to c, including the
// initial one, if an unmap callback was supplied. Per the reference
// design's open question on multi-pool teardown, this implementation
// takes the safest option: it walks and unmaps everything rather than
// asserting that only the initial pool survives.
func (c *Control) Destroy() {
	if c.unmapFn == nil {
		return
	}
	pools := c.pools
	c.pools = nil
	for _, p := range pools {
		c.unmapFn(p.mem, p.size, c.user)
	}
}
