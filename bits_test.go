package tlsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFFS(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input uint32
		want  int
	}{
		{"bit 0", 1, 0},
		{"bit 1", 2, 1},
		{"bit 3", 8, 3},
		{"lowest of many", 0b1011000, 3},
		{"high bit", 1 << 31, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ffs(tt.input))
		})
	}
}

func TestFLS(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input uint64
		want  int
	}{
		{"bit 0", 1, 0},
		{"bit 3", 8, 3},
		{"highest of many", 0b1011000, 6},
		{"large", 1 << 40, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fls(tt.input))
		})
	}
}

func TestSetClearBit(t *testing.T) {
	t.Parallel()
	var word uint32
	setBit(3, &word)
	setBit(9, &word)
	assert.Equal(t, uint32(1<<3|1<<9), word)

	clearBit(3, &word)
	assert.Equal(t, uint32(1<<9), word)

	clearBit(9, &word)
	assert.Zero(t, word)
}

func TestAlignUp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		size uintptr
		want uintptr
	}{
		{0, 0},
		{1, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{1024, 1024},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, alignUp(tt.size))
	}
}
