/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import "errors"

var (
	// ErrOutOfMemory is returned when no free block could satisfy a
	// request and the backing source's map callback failed to grow the
	// heap.
	ErrOutOfMemory = errors.New("tlsf: out of memory")

	// ErrInvalidSize is returned for requests at or above BLOCK_SIZE_MAX.
	ErrInvalidSize = errors.New("tlsf: requested size too large")

	// ErrDoubleFree is returned by Free and Realloc when the pointer's
	// recovered block is already marked free.
	ErrDoubleFree = errors.New("tlsf: block already free")

	// ErrCorruptHeap is returned by Check when a structural invariant is
	// violated.
	ErrCorruptHeap = errors.New("tlsf: heap invariant violated")
)
