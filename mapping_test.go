package tlsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappingInsert(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		size   uintptr
		wantFL int
		wantSL int
	}{
		{"small size 64", 64, 0, 8},
		{"small size 0", 0, 0, 0},
		{"just below SMALL", smallBlockSize - Align, 0, slCount - 1},
		{"exact SMALL", smallBlockSize, 1, 0},
		{"size 420", 420, 1, 20},
		{"size 460", 460, 1, 25},
		{"size 464", 464, 1, 26},
		{"size 500", 500, 1, 30},
		{"size 512", 512, 2, 0},
		{"size 1024", 1024, 3, 0},
		{"tiny size rounds sl down", 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl, sl := mappingInsert(tt.size)
			assert.Equal(t, tt.wantFL, fl, "fl")
			assert.Equal(t, tt.wantSL, sl, "sl")
		})
	}
}

// TestMappingSearchSufficiency checks the rounding behind the good-fit
// guarantee: the cell mappingSearch returns for a request is never below
// the cell mappingInsert files that same size in.
func TestMappingSearchSufficiency(t *testing.T) {
	t.Parallel()
	for size := smallBlockSize; size < smallBlockSize*64; size += 17 {
		fl, sl := mappingSearch(size)
		// The search cell must equal or follow the insert cell, i.e.
		// rounding only ever moves forward.
		insFL, insSL := mappingInsert(size)
		if insFL == fl && insSL == sl {
			continue
		}
		assert.True(t, fl > insFL || (fl == insFL && sl > insSL),
			"mappingSearch(%d) = (%d,%d) must not be smaller than mappingInsert = (%d,%d)",
			size, fl, sl, insFL, insSL)
	}
}

func TestMappingSearchSmallPassesThrough(t *testing.T) {
	t.Parallel()
	fl, sl := mappingSearch(64)
	wantFL, wantSL := mappingInsert(64)
	assert.Equal(t, wantFL, fl)
	assert.Equal(t, wantSL, sl)
}
