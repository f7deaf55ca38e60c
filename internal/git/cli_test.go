package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := gitCmdErr(dir, args...)
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return out
}

func gitCmdErr(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// newTestRepo creates an empty repository on branch main.
func newTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	gitCmd(t, dir, "init", "-q")
	gitCmd(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	gitCmd(t, dir, "config", "user.email", "test@example.com")
	gitCmd(t, dir, "config", "user.name", "Test")
	gitCmd(t, dir, "config", "commit.gpgsign", "false")
	gitCmd(t, dir, "config", "core.autocrlf", "false")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func commitAll(t *testing.T, dir, msg string) {
	t.Helper()
	gitCmd(t, dir, "add", "-A")
	gitCmd(t, dir, "commit", "-q", "-m", msg)
}

func openTestRepo(t *testing.T, dir string) *CLIService {
	t.Helper()
	svc, err := Open(dir)
	require.NoError(t, err)
	return svc
}

func TestOpenRejectsNonRepository(t *testing.T) {
	requireGit(t)
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotARepo)
}

func TestOpenRejectsBareRepository(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	gitCmd(t, dir, "init", "-q", "--bare")

	_, err := Open(dir)
	assert.ErrorIs(t, err, ErrBareRepo)
}

func TestOpenFromSubdirectory(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "sub/deep/f.txt", "x\n")
	commitAll(t, dir, "init")

	svc := openTestRepo(t, filepath.Join(dir, "sub", "deep"))
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(svc.RepoRoot())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, filepath.IsAbs(svc.GitDir()))
}

func TestBranchInfo(t *testing.T) {
	dir := newTestRepo(t)
	svc := openTestRepo(t, dir)

	// Unborn branch still reports its name.
	assert.Equal(t, "main", svc.Branch().String())

	writeFile(t, dir, "f.txt", "x\n")
	commitAll(t, dir, "init")
	assert.Equal(t, BranchInfo{Name: "main"}, svc.Branch())

	gitCmd(t, dir, "checkout", "-q", "--detach")
	b := svc.Branch()
	assert.True(t, b.Detached)
	assert.Len(t, b.Hash, 7)
	assert.Equal(t, "HEAD@"+b.Hash, b.String())
}

func TestCLIUntrackedFileScenario(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "x.txt", "a\nb\nc\n")
	svc := openTestRepo(t, dir)

	res, err := Classify(svc)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	e := res.Unstaged[0]
	assert.Equal(t, StatusUntracked, e.Status)
	added, _, ok := e.Counts()
	require.True(t, ok)
	assert.Equal(t, 3, added)

	diff := MaterializeUntracked(svc, "x.txt")
	require.Equal(t, DiffText, diff.Kind)
	var numbers []int
	for _, l := range diff.Lines {
		require.NotEqual(t, LineDeleted, l.Kind)
		require.NotEqual(t, LineContext, l.Kind)
		if l.Kind == LineAdded {
			numbers = append(numbers, l.NewLineNo)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, numbers)
}

func TestCLIBinaryModification(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "blob.bin", "a\x00b")
	commitAll(t, dir, "init")
	writeFile(t, dir, "blob.bin", "a\x00c")
	svc := openTestRepo(t, dir)

	res, err := Classify(svc)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	e := res.Unstaged[0]
	assert.True(t, e.IsBinary)
	assert.Nil(t, e.AddedLines)
	assert.Nil(t, e.DeletedLines)

	assert.Equal(t, BinaryDiff, Materialize(svc, "blob.bin", "", Unstaged))
}

func TestCLITrackedDiffNumbersLines(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "f.txt", "1\n2\n3\n4\n5\n")
	commitAll(t, dir, "init")
	writeFile(t, dir, "f.txt", "1\n2\nthree\n4\n5\n")
	svc := openTestRepo(t, dir)

	res, err := Classify(svc)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	added, deleted, ok := res.Unstaged[0].Counts()
	require.True(t, ok)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, deleted)

	diff := Materialize(svc, "f.txt", "", Unstaged)
	require.Equal(t, DiffText, diff.Kind)
	for _, l := range diff.Lines {
		if l.Kind == LineAdded {
			assert.Equal(t, "three", l.Content)
			assert.Equal(t, 3, l.NewLineNo)
		}
	}
}

func TestCLIStageUnstageRoundTrip(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	writeFile(t, dir, "b.txt", "b\n")
	commitAll(t, dir, "init")
	writeFile(t, dir, "a.txt", "a2\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "b.txt")))
	writeFile(t, dir, "c.txt", "c\n")
	svc := openTestRepo(t, dir)

	before, err := Classify(svc)
	require.NoError(t, err)
	require.Empty(t, before.Staged)
	require.Len(t, before.Unstaged, 3)

	paths := Paths(before.Unstaged)
	require.NoError(t, svc.Stage(paths...))

	staged, err := Classify(svc)
	require.NoError(t, err)
	assert.Equal(t, paths, Paths(staged.Staged))
	assert.Empty(t, staged.Unstaged)
	assert.Equal(t, StatusDeleted, staged.Staged[1].Status)
	assert.Equal(t, StatusAdded, staged.Staged[2].Status)

	require.NoError(t, svc.Unstage(paths...))
	after, err := Classify(svc)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCLIUnstageOnUnbornBranch(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "first.txt", "hello\n")
	svc := openTestRepo(t, dir)

	require.NoError(t, svc.Stage("first.txt"))
	res, err := Classify(svc)
	require.NoError(t, err)
	require.Len(t, res.Staged, 1)
	assert.Equal(t, StatusAdded, res.Staged[0].Status)

	require.NoError(t, svc.Unstage("first.txt"))
	res, err = Classify(svc)
	require.NoError(t, err)
	assert.Empty(t, res.Staged)
	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, StatusUntracked, res.Unstaged[0].Status)
}

func TestCLIStagedRename(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "old.txt", "same content\nacross the rename\n")
	commitAll(t, dir, "init")
	gitCmd(t, dir, "mv", "old.txt", "new.txt")
	svc := openTestRepo(t, dir)

	res, err := Classify(svc)
	require.NoError(t, err)
	require.Len(t, res.Staged, 1)
	e := res.Staged[0]
	assert.Equal(t, StatusRenamed, e.Status)
	assert.Equal(t, "new.txt", e.Path)
	assert.Equal(t, "old.txt", e.OldPath)

	diff := Materialize(svc, e.Path, e.OldPath, Staged)
	require.Equal(t, DiffText, diff.Kind)
	var headers []string
	for _, l := range diff.Lines {
		headers = append(headers, l.Content)
	}
	assert.Contains(t, headers, "rename from old.txt")
}

func TestCLIDiscardAllSkipsConflicts(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	writeFile(t, dir, "b.txt", "b\n")
	writeFile(t, dir, "c.txt", "base\n")
	commitAll(t, dir, "init")

	gitCmd(t, dir, "checkout", "-q", "-b", "other")
	writeFile(t, dir, "c.txt", "other\n")
	commitAll(t, dir, "other")
	gitCmd(t, dir, "checkout", "-q", "main")
	writeFile(t, dir, "c.txt", "main\n")
	commitAll(t, dir, "main")
	_, err := gitCmdErr(dir, "merge", "-q", "other")
	require.Error(t, err, "merge should conflict")

	writeFile(t, dir, "a.txt", "changed\n")
	writeFile(t, dir, "b.txt", "changed\n")
	svc := openTestRepo(t, dir)

	res, err := Classify(svc)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 3)
	assert.Equal(t, StatusConflict, res.Unstaged[2].Status)

	out, err := DiscardAllUnstaged(svc)
	require.NoError(t, err)
	assert.Equal(t, DiscardResult{Discarded: 2, Skipped: 1}, out)

	res, err = Classify(svc)
	require.NoError(t, err)
	require.Len(t, res.Unstaged, 1)
	assert.Equal(t, "c.txt", res.Unstaged[0].Path)

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))
}

func TestCLIRemoveUntracked(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "junk/tmp.txt", "x")
	svc := openTestRepo(t, dir)

	require.NoError(t, svc.RemoveUntracked("junk/tmp.txt"))
	_, err := os.Stat(filepath.Join(dir, "junk", "tmp.txt"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, svc.RemoveUntracked("../outside"))
}
