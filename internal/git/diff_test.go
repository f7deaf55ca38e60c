package git_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/bgs/internal/git"
	"github.com/Akashdeep-Patra/bgs/internal/git/gittest"
)

func TestMaterializeUntrackedNumbersEveryLine(t *testing.T) {
	eng := gittest.New().Write("x.txt", "one\ntwo\nthree\n")

	got := git.MaterializeUntracked(eng, "x.txt")
	require.Equal(t, git.DiffText, got.Kind)

	var added []git.DiffLine
	for _, l := range got.Lines {
		switch l.Kind {
		case git.LineAdded:
			added = append(added, l)
		case git.LineDeleted, git.LineContext:
			t.Fatalf("unexpected %v line %q", l.Kind, l.Content)
		}
	}
	require.Len(t, added, 3)
	for i, l := range added {
		assert.Equal(t, i+1, l.NewLineNo)
	}
	assert.Equal(t, "two", added[1].Content)
	assert.Equal(t, "diff --git a/x.txt b/x.txt", got.Lines[0].Content)
	assert.Equal(t, "@@ -0,0 +1,3 @@", got.Lines[4].Content)
}

func TestMaterializeUntrackedEmptyFileHasNoHunk(t *testing.T) {
	eng := gittest.New().Write("empty", "")

	got := git.MaterializeUntracked(eng, "empty")
	require.Equal(t, git.DiffText, got.Kind)
	require.Len(t, got.Lines, 4)
	for _, l := range got.Lines {
		assert.Equal(t, git.LineHeader, l.Kind)
	}
}

func TestMaterializeUntrackedSentinels(t *testing.T) {
	eng := gittest.New().Write("bad", "ok\n\xff\n")

	assert.Equal(t, git.InvalidUTF8Diff, git.MaterializeUntracked(eng, "bad"))
	assert.Equal(t, git.EmptyDiff, git.MaterializeUntracked(eng, "missing"))
}

func TestMaterializeUntrackedKeepsNULText(t *testing.T) {
	eng := gittest.New().Write("nul", "a\x00b\n")

	got := git.MaterializeUntracked(eng, "nul")
	require.Equal(t, git.DiffText, got.Kind)
	last := got.Lines[len(got.Lines)-1]
	assert.Equal(t, git.LineAdded, last.Kind)
	assert.Equal(t, "a\x00b", last.Content)
	assert.Equal(t, 1, last.NewLineNo)
}

func TestMaterializeTracked(t *testing.T) {
	eng := gittest.New().Commit("f", "a\nb\n").Write("f", "a\nc\n")

	got := git.Materialize(eng, "f", "", git.Unstaged)
	require.Equal(t, git.DiffText, got.Kind)

	var added, deleted int
	for _, l := range got.Lines {
		switch l.Kind {
		case git.LineAdded:
			added++
		case git.LineDeleted:
			deleted++
			assert.False(t, l.HasLineNo())
		}
	}
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, deleted)

	// Nothing staged for the path.
	assert.Equal(t, git.EmptyDiff, git.Materialize(eng, "f", "", git.Staged))
}

func TestMaterializeTrackedBinary(t *testing.T) {
	eng := gittest.New().Commit("img", "\x00a").Write("img", "\x00b")
	assert.Equal(t, git.BinaryDiff, git.Materialize(eng, "img", "", git.Unstaged))
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		binary bool
	}{
		{"empty", "", 0, false},
		{"single newline", "\n", 1, false},
		{"no trailing newline", "a\nb", 2, false},
		{"crlf", "a\r\nb\r\n", 2, false},
		{"nul", "a\x00", 0, true},
		{"invalid utf8", "\xff\xfe", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, binary := git.CountLines([]byte(tt.in))
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.binary, binary)
		})
	}
}
