package heapsrc_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mistuke/tlsf"
	"github.com/Mistuke/tlsf/heapsrc"
)

func TestMapGrantsAlignedRoundedSize(t *testing.T) {
	s := heapsrc.New()

	size := uintptr(100)
	ptr := s.Map(&size, nil)
	require.NotNil(t, ptr)
	assert.Equal(t, uintptr(104), size, "100 rounds up to the next multiple of Align")
	assert.Zero(t, uintptr(ptr)%tlsf.Align)
	assert.Equal(t, 1, s.Len())
}

func TestMapZeroRequestGrantsOneAlignUnit(t *testing.T) {
	s := heapsrc.New()

	size := uintptr(0)
	ptr := s.Map(&size, nil)
	require.NotNil(t, ptr)
	assert.Equal(t, tlsf.Align, size)
}

func TestUnmapReleasesTracking(t *testing.T) {
	s := heapsrc.New()

	size := uintptr(64)
	ptr := s.Map(&size, nil)
	require.Equal(t, 1, s.Len())

	s.Unmap(ptr, size, nil)
	assert.Equal(t, 0, s.Len())
}

func TestMultipleRegionsTrackedIndependently(t *testing.T) {
	s := heapsrc.New()

	var s1, s2 uintptr = 64, 128
	p1 := s.Map(&s1, nil)
	p2 := s.Map(&s2, nil)
	require.Equal(t, 2, s.Len())

	s.Unmap(p1, s1, nil)
	assert.Equal(t, 1, s.Len())
	s.Unmap(p2, s2, nil)
	assert.Equal(t, 0, s.Len())
}

// TestRegionIsUsableAsAControlBackingSource exercises Source end-to-end
// through a real Control, the way every other backing source is used.
func TestRegionIsUsableAsAControlBackingSource(t *testing.T) {
	s := heapsrc.New()
	c, err := tlsf.Create(s.Map, s.Unmap, nil, tlsf.WithInitialPoolSize(1<<16))
	require.NoError(t, err)
	defer c.Destroy()

	p, err := c.Malloc(128)
	require.NoError(t, err)

	buf := unsafe.Slice((*byte)(p), 128)
	for i := range buf {
		buf[i] = byte(i)
	}
	for i := range buf {
		assert.Equal(t, byte(i), buf[i])
	}

	require.NoError(t, c.Free(p))
	require.NoError(t, c.Check())
}
