package tlsf

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestControl(t *testing.T, size uintptr) *Control {
	t.Helper()
	mapFn := func(sz *uintptr, _ any) unsafe.Pointer {
		buf := make([]byte, *sz)
		return unsafe.Pointer(&buf[0])
	}
	c, err := Create(mapFn, nil, nil, WithInitialPoolSize(size))
	require.NoError(t, err)
	return c
}

func TestInitialPoolBlockIsIndexedWhereMappingInsertExpects(t *testing.T) {
	t.Parallel()
	c := newTestControl(t, 1<<16)

	var found *freeBlockHeader
	var foundFL, foundSL int
	for fl := 0; fl < flCount; fl++ {
		for sl := 0; sl < slCount; sl++ {
			if c.blocks[fl][sl] != &c.blockNull {
				found, foundFL, foundSL = c.blocks[fl][sl], fl, sl
			}
		}
	}
	require.NotNil(t, found)
	wantFL, wantSL := mappingInsert(found.size())
	assert.Equal(t, wantFL, foundFL)
	assert.Equal(t, wantSL, foundSL)
}

func TestInsertRemoveFreeBlockBitmaps(t *testing.T) {
	t.Parallel()
	c := newTestControl(t, 1<<16)

	// Drain the initial free block from the index so we can control
	// exactly what's in it.
	for fl := 0; fl < flCount; fl++ {
		for sl := 0; sl < slCount; sl++ {
			if c.blocks[fl][sl] != &c.blockNull {
				c.removeFreeBlock(c.blocks[fl][sl], fl, sl)
			}
		}
	}
	assert.Zero(t, c.flBitmap)

	var b freeBlockHeader
	b.setSize(512)
	b.setFreeFlag(true)
	fl, sl := mappingInsert(b.size())

	c.insertFreeBlock(&b, fl, sl)
	assert.NotZero(t, c.flBitmap&(1<<uint(fl)))
	assert.NotZero(t, c.slBitmap[fl]&(1<<uint(sl)))
	assert.True(t, c.blocks[fl][sl] == &b)

	c.removeFreeBlock(&b, fl, sl)
	assert.True(t, c.blocks[fl][sl] == &c.blockNull)
	assert.Zero(t, c.slBitmap[fl])
	assert.Zero(t, c.flBitmap)
}

func TestSearchSuitableBlockFallsBackToLargerCell(t *testing.T) {
	t.Parallel()
	c := newTestControl(t, 1<<16)

	block := c.blockLocateFree(4096)
	require.NotNil(t, block)
	fl, sl := mappingSearch(4096)
	found, foundFL, _ := c.searchSuitableBlock(fl, sl)
	// After removing the only suitable block, a fresh search at the
	// same cell must fail (nil) or find a different, larger cell.
	if found != nil {
		assert.True(t, foundFL >= fl)
	}
}
