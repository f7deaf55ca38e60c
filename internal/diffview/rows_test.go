package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/bgs/internal/git"
)

func textDiff(lines ...git.DiffLine) git.DiffContent {
	return git.DiffContent{Kind: git.DiffText, Lines: lines}
}

func TestRowsGutterAndPrefix(t *testing.T) {
	content := textDiff(
		git.DiffLine{Kind: git.LineHeader, Content: "diff --git a/f b/f"},
		git.DiffLine{Kind: git.LineHunk, Content: "@@ -1,2 +1,2 @@"},
		git.DiffLine{Kind: git.LineContext, Content: "same", NewLineNo: 1},
		git.DiffLine{Kind: git.LineDeleted, Content: "old"},
		git.DiffLine{Kind: git.LineAdded, Content: "new", NewLineNo: 2},
	)

	rows := Rows(content, 80)
	require.Len(t, rows, 5)

	assert.Equal(t, "    │", rows[0].Gutter)
	assert.Equal(t, "", rows[0].Prefix)
	assert.Equal(t, "    │", rows[1].Gutter)
	assert.Equal(t, "  1 │", rows[2].Gutter)
	assert.Equal(t, " ", rows[2].Prefix)
	assert.Equal(t, "  - │", rows[3].Gutter)
	assert.Equal(t, "-", rows[3].Prefix)
	assert.Equal(t, "  2 │", rows[4].Gutter)
	assert.Equal(t, "+", rows[4].Prefix)
	assert.Equal(t, "new", rows[4].Text)
}

func TestGutterGrowsWithLineNumbers(t *testing.T) {
	content := textDiff(git.DiffLine{Kind: git.LineAdded, Content: "x", NewLineNo: 12345})
	assert.Equal(t, 7, GutterWidth(content))
	assert.Equal(t, "12345 │", Rows(content, 80)[0].Gutter)
}

func TestRowsWrapLongLines(t *testing.T) {
	content := textDiff(git.DiffLine{Kind: git.LineAdded, Content: "abcdefghij", NewLineNo: 1})

	// 5 gutter columns + 1 prefix column leaves 5 for text.
	rows := Rows(content, 11)
	require.Len(t, rows, 2)
	assert.Equal(t, "abcde", rows[0].Text)
	assert.False(t, rows[0].Continuation)
	assert.Equal(t, "fghij", rows[1].Text)
	assert.True(t, rows[1].Continuation)
	assert.Equal(t, "    │", rows[1].Gutter)
	assert.Equal(t, " ", rows[1].Prefix)
}

func TestRowsKeepEmptyLines(t *testing.T) {
	content := textDiff(git.DiffLine{Kind: git.LineContext, Content: "", NewLineNo: 1})
	rows := Rows(content, 20)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Text)
}

func TestMaxScroll(t *testing.T) {
	var lines []git.DiffLine
	for i := 1; i <= 10; i++ {
		lines = append(lines, git.DiffLine{Kind: git.LineAdded, Content: "x", NewLineNo: i})
	}
	content := textDiff(lines...)

	assert.Equal(t, 6, MaxScroll(content, 4, 80))
	assert.Equal(t, 0, MaxScroll(content, 20, 80))
	assert.Equal(t, 0, MaxScroll(git.BinaryDiff, 4, 80))
}

func TestPlaceholders(t *testing.T) {
	assert.Nil(t, Rows(git.ConflictDiff, 80))
	assert.Equal(t, "Binary file", Placeholder(git.DiffBinary))
	assert.Equal(t, "", Placeholder(git.DiffText))
}
