// Package heapsrc provides a tlsf.MapFunc/tlsf.UnmapFunc pair backed by
// plain Go byte slices. It requires no cgo and no platform mmap support,
// which makes it the default backing source for the test suite and for
// cmd/tlsfctl's benchmarking mode.
//
// Regions returned by Map are kept alive by a reference held inside the
// Source until the matching Unmap call, since the pointer handed to
// tlsf is otherwise invisible to the garbage collector.
package heapsrc

import (
	"sync"
	"unsafe"

	"github.com/Mistuke/tlsf"
)

// Source is a backing source whose regions are ordinary Go-managed byte
// slices. The zero value is ready to use.
type Source struct {
	mu     sync.Mutex
	active map[uintptr][]byte
}

// New returns a ready-to-use Source.
func New() *Source {
	return &Source{active: make(map[uintptr][]byte)}
}

// Map implements tlsf.MapFunc. The granted size is always exactly the
// requested minimum, rounded up to tlsf.Align; a zero request is granted
// tlsf.Align bytes.
func (s *Source) Map(size *uintptr, _ any) unsafe.Pointer {
	n := (*size + (tlsf.Align - 1)) &^ (tlsf.Align - 1)
	if n == 0 {
		n = tlsf.Align
	}
	buf := make([]byte, int(n))
	ptr := unsafe.Pointer(&buf[0])

	s.mu.Lock()
	if s.active == nil {
		s.active = make(map[uintptr][]byte)
	}
	s.active[uintptr(ptr)] = buf
	s.mu.Unlock()

	*size = n
	return ptr
}

// Unmap implements tlsf.UnmapFunc. It releases the Source's reference
// to the region so the garbage collector can reclaim it.
func (s *Source) Unmap(ptr unsafe.Pointer, _ uintptr, _ any) {
	s.mu.Lock()
	delete(s.active, uintptr(ptr))
	s.mu.Unlock()
}

// Len reports how many regions are currently outstanding. Mainly useful
// in tests asserting that every grown pool was eventually released.
func (s *Source) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
