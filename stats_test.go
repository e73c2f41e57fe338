package tlsf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAccounting(t *testing.T) {
	t.Parallel()
	c := newTestControl(t, 1<<16)

	initial := c.Stats()
	assert.Zero(t, initial.UsedSize)
	assert.Equal(t, initial.FreeSize, initial.TotalSize)

	block := c.blockLocateFree(256)
	require.NotNil(t, block)
	c.blockTrimFree(block, 256)
	blockSetFree(block, false)
	c.stats.mallocCount++

	afterMalloc := c.Stats()
	assert.Equal(t, uint64(1), afterMalloc.MallocCount)
	assert.Equal(t, afterMalloc.FreeSize+afterMalloc.UsedSize, afterMalloc.TotalSize)

	require.NoError(t, freeRaw(c, block))
	c.stats.freeCount++

	final := c.Stats()
	assert.Equal(t, initial.FreeSize, final.FreeSize)
	assert.Equal(t, initial.UsedSize, final.UsedSize)
}

func TestStatsString(t *testing.T) {
	t.Parallel()
	s := Stats{MallocCount: 3, FreeCount: 1, PoolCount: 1, FreeSize: 10, UsedSize: 20, TotalSize: 30}
	out := s.String()
	assert.True(t, strings.Contains(out, "free_size=10"))
	assert.True(t, strings.Contains(out, "malloc_count=3"))
}
