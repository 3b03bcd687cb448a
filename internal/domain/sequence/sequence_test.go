package sequence

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadWidth(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 2},
		{99, 2},
		{100, 3},
		{1234, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PadWidth(tc.total), "total=%d", tc.total)
	}
}

func TestSharedWidth(t *testing.T) {
	// Two 9-frame sources share one directory: 18 indices need 2 digits,
	// even though each source alone would only need 1.
	assert.Equal(t, 2, SharedWidth(9, 9))
	assert.Equal(t, 1, SharedWidth(9))
	assert.Equal(t, 4, SharedWidth(1000, 200))
	assert.Equal(t, 1, SharedWidth())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "0000.png", FileName(0, 4))
	assert.Equal(t, "0042.png", FileName(42, 4))
	assert.Equal(t, "7.png", FileName(7, 1))
	// Width never truncates an index that outgrows it.
	assert.Equal(t, "123.png", FileName(123, 2))
}

func TestLexicalOrderMatchesNumericOrder(t *testing.T) {
	width := PadWidth(150)
	var names []string
	for i := 0; i < 150; i++ {
		names = append(names, FileName(i, width))
	}
	assert.True(t, sort.StringsAreSorted(names))
}
