/* This program is free software. It comes without any warranty, to
 * the extent permitted by applicable law. You can redistribute it
 * and/or modify it under the terms of the Do What The Fuck You Want
 * To Public License, Version 2, as published by Sam Hocevar. See
 * http://sam.zoy.org/wtfpl/COPYING for more details. */

package tlsf

import "math/bits"

// ffs returns the 0-based index of the lowest set bit of x.
// x must be nonzero; every call site only probes a bitmap word already
// known to be nonzero.
func ffs(x uint32) int {
	return bits.TrailingZeros32(x)
}

// fls returns the 0-based index of the highest set bit of x.
// x must be nonzero.
func fls(x uint64) int {
	return 63 - bits.LeadingZeros64(x)
}

// setBit sets bit nr of *addr.
func setBit(nr int, addr *uint32) {
	*addr |= 1 << uint(nr&0x1f)
}

// clearBit clears bit nr of *addr.
func clearBit(nr int, addr *uint32) {
	*addr &^= 1 << uint(nr&0x1f)
}

// alignUp rounds size up to the nearest multiple of Align.
func alignUp(size uintptr) uintptr {
	return (size + (Align - 1)) &^ (Align - 1)
}
