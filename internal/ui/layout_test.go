package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLayoutTooSmall(t *testing.T) {
	assert.True(t, ComputeLayout(29, 40, 1, 1).TooSmall)
	assert.True(t, ComputeLayout(120, 9, 1, 1).TooSmall)
	assert.False(t, ComputeLayout(30, 10, 1, 1).TooSmall)
}

func TestComputeLayoutFileListGrowsWithContent(t *testing.T) {
	// 1 staged + header, 2 unstaged + header, plus the border.
	l := ComputeLayout(120, 40, 1, 2)
	assert.Equal(t, 7, l.FileList.H)
	assert.Equal(t, 1, l.FileList.Y)
	assert.Equal(t, 8, l.Diff.Y)
	assert.Equal(t, 40-2-7, l.Diff.H)
	assert.Equal(t, 39, l.Footer.Y)
}

func TestComputeLayoutFileListIsCapped(t *testing.T) {
	l := ComputeLayout(120, 40, 50, 50)
	assert.Equal(t, 13, l.FileList.H)

	// Small screens still get five rows.
	l = ComputeLayout(40, 12, 50, 0)
	assert.Equal(t, 5, l.FileList.H)
	assert.Equal(t, 5, l.Diff.H)
}

func TestComputeLayoutEmptyList(t *testing.T) {
	l := ComputeLayout(80, 24, 0, 0)
	assert.Equal(t, 2, l.FileList.H)
	assert.Equal(t, 20, l.Diff.H)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abcdefgh", 1))
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "abc", TruncateLeft("abc", 5))
	assert.Equal(t, "…efgh", TruncateLeft("abcdefgh", 5))
	assert.Equal(t, "…", TruncateLeft("abcdefgh", 1))
}
