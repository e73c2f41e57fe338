// Package mmapsrc provides a tlsf.MapFunc/tlsf.UnmapFunc pair backed by
// anonymous, private mmap regions, for consumers that want the
// allocator's memory footprint to come directly from the OS rather
// than from the Go runtime's own heap.
//
// Only Linux and other unix-like targets are supported, via
// golang.org/x/sys/unix.
package mmapsrc

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Source is a backing source whose regions are anonymous mmap
// mappings. The zero value is ready to use.
type Source struct{}

// New returns a ready-to-use Source.
func New() *Source {
	return &Source{}
}

// Map implements tlsf.MapFunc, rounding the requested minimum up to a
// page boundary and mapping that many bytes PROT_READ|PROT_WRITE,
// MAP_PRIVATE|MAP_ANONYMOUS.
func (s *Source) Map(size *uintptr, _ any) unsafe.Pointer {
	pageSize := uintptr(unix.Getpagesize())
	n := (*size + pageSize - 1) &^ (pageSize - 1)

	data, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil
	}

	*size = n
	return unsafe.Pointer(&data[0])
}

// Unmap implements tlsf.UnmapFunc.
func (s *Source) Unmap(ptr unsafe.Pointer, size uintptr, _ any) {
	data := unsafe.Slice((*byte)(ptr), size)
	if err := unix.Munmap(data); err != nil {
		panic(errors.Wrap(err, "mmapsrc: munmap failed"))
	}
}
