package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// cmdTimeout is the maximum duration any single git command may run.
const cmdTimeout = 30 * time.Second

// CLIService implements Engine by shelling out to the git CLI. Reads run
// with GIT_OPTIONAL_LOCKS=0 so a refresh never contends with the user's own
// git commands for index.lock.
type CLIService struct {
	root   string // Absolute path to the work tree root.
	gitDir string // Path to the .git directory.

	// repo answers HEAD queries without a subprocess. Nil when go-git
	// could not open the repository; Branch then falls back to the CLI.
	repo *gogit.Repository
}

// Compile-time check that CLIService implements Engine.
var _ Engine = (*CLIService)(nil)

// NewCLIService opens the work tree containing path using the CLI alone.
// Prefer Open, which also rejects bare repositories.
func NewCLIService(path string) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	topLevel, err := runGit(abs, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotARepo
	}
	root := strings.TrimSpace(topLevel)
	if root == "" {
		return nil, ErrBareRepo
	}
	gitDir, err := runGit(abs, nil, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	return &CLIService{
		root:   root,
		gitDir: strings.TrimSpace(gitDir),
	}, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is the environment set on all read-only git commands.
// GIT_LITERAL_PATHSPECS keeps file names like ":foo" or "*.go" literal.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0", "GIT_LITERAL_PATHSPECS=1"}

var writeEnv = []string{"GIT_LITERAL_PATHSPECS=1"}

// run executes a git command at the repo root with read-optimised env.
func (s *CLIService) run(args ...string) (string, error) {
	return runGit(s.root, readEnv, args...)
}

// runWrite executes a write git command (no optional-locks override).
func (s *CLIService) runWrite(args ...string) (string, error) {
	return runGit(s.root, writeEnv, args...)
}

// runGit executes a git command with a context timeout.
// Stdout and stderr are separated so stderr noise doesn't corrupt output.
func runGit(dir string, extraEnv []string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return stdout.String(), nil
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot returns the work tree root.
func (s *CLIService) RepoRoot() string { return s.root }

// GitDir returns the absolute path to the .git directory.
func (s *CLIService) GitDir() string { return s.gitDir }

// Branch reports what HEAD points at. It never fails: an unresolvable HEAD
// is reported as detached at "unknown".
func (s *CLIService) Branch() BranchInfo {
	if s.repo != nil {
		if info, err := headInfo(s.repo); err == nil {
			return info
		}
	}
	if ref, err := s.run("symbolic-ref", "--short", "-q", "HEAD"); err == nil {
		return BranchInfo{Name: strings.TrimSpace(ref)}
	}
	if hash, err := s.run("rev-parse", "--short=7", "HEAD"); err == nil {
		return BranchInfo{Detached: true, Hash: strings.TrimSpace(hash)}
	}
	return BranchInfo{Detached: true, Hash: "unknown"}
}

// hasHead reports whether HEAD resolves to a commit (false on an unborn
// branch).
func (s *CLIService) hasHead() bool {
	_, err := s.run("rev-parse", "--verify", "-q", "HEAD")
	return err == nil
}

// ── Status & diff ───────────────────────────────────────────────────────────

// Status returns the raw porcelain v2 records for the whole work tree.
func (s *CLIService) Status() ([]StatusRecord, error) {
	out, err := s.run("status", "--porcelain=v2", "-z",
		"--untracked-files=all", "--find-renames")
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	return ParseStatusV2(out), nil
}

// NumStat returns per-path insertion/deletion counts for one section.
// Renames are not paired so every path is keyed on its own, matching a
// single-path diff.
func (s *CLIService) NumStat(section Section) (map[string]NumStat, error) {
	args := []string{"diff", "--numstat", "-z", "--no-renames", "--no-ext-diff", "--no-color"}
	if section == Staged {
		args = append(args, "--cached")
	}
	out, err := s.run(args...)
	if err != nil {
		return nil, fmt.Errorf("getting %s numstat: %w", section, err)
	}
	return ParseNumStat(out), nil
}

// Diff returns the unified patch for one path. oldPath, when set, is
// included so git can pair a rename.
func (s *CLIService) Diff(section Section, path, oldPath string) (string, error) {
	args := []string{"diff", "--no-color", "--no-ext-diff", "--find-renames"}
	if section == Staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	if oldPath != "" && oldPath != path {
		args = append(args, oldPath)
	}
	return s.run(args...)
}

// ReadWorktreeFile reads a file relative to the work tree root.
func (s *CLIService) ReadWorktreeFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
}

// ── Index & work tree mutations ─────────────────────────────────────────────

// Stage adds the given paths to the index. Paths missing from the work
// tree are staged as deletions.
func (s *CLIService) Stage(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "-A", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// Unstage resets the index entries of the given paths to HEAD. On an
// unborn branch the entries are removed from the index instead.
func (s *CLIService) Unstage(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	var args []string
	if s.hasHead() {
		args = append([]string{"reset", "-q", "HEAD", "--"}, paths...)
	} else {
		args = append([]string{"rm", "--cached", "-r", "-q", "--ignore-unmatch", "--"}, paths...)
	}
	_, err := s.runWrite(args...)
	return err
}

// DiscardWorktree restores work tree content of the given paths from the
// index.
func (s *CLIService) DiscardWorktree(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"checkout", "-q", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// RemoveUntracked deletes untracked files from the work tree.
func (s *CLIService) RemoveUntracked(paths ...string) error {
	for _, p := range paths {
		full := filepath.Join(s.root, filepath.FromSlash(p))
		if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
			return fmt.Errorf("refusing to remove %q outside the work tree", p)
		}
		info, err := os.Lstat(full)
		if err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
		if info.IsDir() {
			err = os.RemoveAll(full)
		} else {
			err = os.Remove(full)
		}
		if err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}
