package git_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/bgs/internal/git"
	"github.com/Akashdeep-Patra/bgs/internal/git/gittest"
)

// recordEngine serves fixed status records on top of the fake.
type recordEngine struct {
	*gittest.Engine
	records []git.StatusRecord
	stats   map[git.Section]map[string]git.NumStat
}

func (r recordEngine) Status() ([]git.StatusRecord, error) { return r.records, nil }

func (r recordEngine) NumStat(s git.Section) (map[string]git.NumStat, error) {
	return r.stats[s], nil
}

func TestClassifyUntrackedFileCountsLines(t *testing.T) {
	eng := gittest.New().Write("x.txt", "one\ntwo\nthree\n")

	res, err := git.Classify(eng)
	require.NoError(t, err)

	require.Empty(t, res.Staged)
	require.Len(t, res.Unstaged, 1)
	e := res.Unstaged[0]
	assert.Equal(t, "x.txt", e.Path)
	assert.Equal(t, git.StatusUntracked, e.Status)
	added, deleted, ok := e.Counts()
	require.True(t, ok)
	assert.Equal(t, 3, added)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, 1, res.UntrackedCount)
	assert.Equal(t, 1, res.UnstagedCount)
}

func TestClassifyUnstagedCountIncludesUntracked(t *testing.T) {
	eng := gittest.New().Commit("a", "1\n").Write("a", "2\n").Write("new", "x\n")

	res, err := git.Classify(eng)
	require.NoError(t, err)

	require.Len(t, res.Unstaged, 2)
	assert.Equal(t, 2, res.UnstagedCount)
	assert.Equal(t, 1, res.UntrackedCount)
}

func TestClassifyPathOnBothSides(t *testing.T) {
	eng := gittest.New().Commit("a.go", "v1\n")
	eng.StageContent("a.go", "v2\n").Write("a.go", "v3\nmore\n")

	res, err := git.Classify(eng)
	require.NoError(t, err)

	require.Len(t, res.Staged, 1)
	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, git.StatusModified, res.Staged[0].Status)
	assert.Equal(t, git.StatusModified, res.Unstaged[0].Status)
	assert.Equal(t, 1, res.StagedCount)
	assert.Equal(t, 1, res.UnstagedCount)

	added, deleted, ok := res.Unstaged[0].Counts()
	require.True(t, ok)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, deleted)
}

func TestClassifyStatusResolution(t *testing.T) {
	eng := gittest.New().
		Commit("deleted.txt", "x\n").
		Commit("removed-in-tree.txt", "y\n")
	delete(eng.Index, "deleted.txt")
	delete(eng.Worktree, "deleted.txt")
	eng.Remove("removed-in-tree.txt")
	eng.StageContent("new.txt", "n\n").Write("new.txt", "n\n")

	res, err := git.Classify(eng)
	require.NoError(t, err)

	require.Len(t, res.Staged, 2)
	assert.Equal(t, "deleted.txt", res.Staged[0].Path)
	assert.Equal(t, git.StatusDeleted, res.Staged[0].Status)
	assert.Equal(t, "new.txt", res.Staged[1].Path)
	assert.Equal(t, git.StatusAdded, res.Staged[1].Status)

	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, git.StatusDeleted, res.Unstaged[0].Status)
}

func TestClassifyConflictTakesPrecedence(t *testing.T) {
	eng := gittest.New().Commit("c.go", "base\n").Conflict("c.go")

	res, err := git.Classify(eng)
	require.NoError(t, err)

	require.Empty(t, res.Staged)
	require.Len(t, res.Unstaged, 1)
	e := res.Unstaged[0]
	assert.Equal(t, git.StatusConflict, e.Status)
	_, _, ok := e.Counts()
	assert.False(t, ok)
	assert.Equal(t, 1, res.UnstagedCount)
}

func TestClassifyBinaryHasNoCounts(t *testing.T) {
	eng := gittest.New().Commit("img.bin", "a\x00b").Write("img.bin", "a\x00c")

	res, err := git.Classify(eng)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	e := res.Unstaged[0]
	assert.True(t, e.IsBinary)
	assert.Nil(t, e.AddedLines)
	assert.Nil(t, e.DeletedLines)
}

func TestClassifySortsByPath(t *testing.T) {
	eng := gittest.New().Write("zeta", "z").Write("alpha", "a").Write("mid/x", "m")

	res, err := git.Classify(eng)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid/x", "zeta"}, git.Paths(res.Unstaged))
}

func TestClassifyTypeChangeIsSingleEntry(t *testing.T) {
	eng := recordEngine{
		Engine: gittest.New(),
		records: []git.StatusRecord{
			{Path: "link", Index: 'T', Worktree: 'M'},
			{Path: "sub", Index: '.', Worktree: 'M', Submodule: true},
		},
		stats: map[git.Section]map[string]git.NumStat{
			git.Staged:   {"link": {Added: 1, Deleted: 1}},
			git.Unstaged: {"sub": {Added: 1, Deleted: 1}},
		},
	}

	res, err := git.Classify(eng)
	require.NoError(t, err)

	require.Len(t, res.Staged, 1)
	assert.Equal(t, "link", res.Staged[0].Path)
	assert.True(t, res.Staged[0].IsSubmodule)
	assert.Equal(t, git.StatusModified, res.Staged[0].Status)

	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, "sub", res.Unstaged[0].Path)
	assert.True(t, res.Unstaged[0].IsSubmodule)
}

func TestClassifyRenameKeepsOldPath(t *testing.T) {
	eng := recordEngine{
		Engine: gittest.New(),
		records: []git.StatusRecord{
			{Path: "new.go", OrigPath: "old.go", Index: 'R', Worktree: '.'},
		},
	}

	res, err := git.Classify(eng)
	require.NoError(t, err)
	require.Len(t, res.Staged, 1)
	assert.Equal(t, git.StatusRenamed, res.Staged[0].Status)
	assert.Equal(t, "old.go", res.Staged[0].OldPath)
	// No numstat for the section: counts unknown but not binary.
	assert.False(t, res.Staged[0].IsBinary)
}

func TestClassifyPropagatesStatusError(t *testing.T) {
	eng := gittest.New()
	eng.Fail["Status"] = errors.New("boom")

	_, err := git.Classify(eng)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
