// Package gittest provides an in-memory git.Engine for tests.
//
// The fake models three snapshots (HEAD, index, work tree) as path→content
// maps and derives status records, numstats and patches from them, so
// mutations behave like the real index: staging copies work tree content
// into the index, unstaging copies HEAD content back.
package gittest

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/Akashdeep-Patra/bgs/internal/git"
)

// Engine is a fake git.Engine. The zero value is not usable; call New.
type Engine struct {
	mu sync.Mutex

	Head      map[string]string
	Index     map[string]string
	Worktree  map[string]string
	Conflicts map[string]bool
	BranchVal git.BranchInfo

	// Fail makes the named operation ("Stage", "Unstage", "DiscardWorktree",
	// "RemoveUntracked", "Status") return the error.
	Fail map[string]error

	// Calls records mutating calls as "Op path1 path2...".
	Calls []string
}

var _ git.Engine = (*Engine)(nil)

// New returns an empty repository on branch "main".
func New() *Engine {
	return &Engine{
		Head:      map[string]string{},
		Index:     map[string]string{},
		Worktree:  map[string]string{},
		Conflicts: map[string]bool{},
		BranchVal: git.BranchInfo{Name: "main"},
		Fail:      map[string]error{},
	}
}

// Commit records a file as committed, staged and checked out.
func (e *Engine) Commit(path, content string) *Engine {
	e.Head[path] = content
	e.Index[path] = content
	e.Worktree[path] = content
	return e
}

// Write changes the work tree copy of path.
func (e *Engine) Write(path, content string) *Engine {
	e.Worktree[path] = content
	return e
}

// Remove deletes the work tree copy of path.
func (e *Engine) Remove(path string) *Engine {
	delete(e.Worktree, path)
	return e
}

// StageContent places content in the index.
func (e *Engine) StageContent(path, content string) *Engine {
	e.Index[path] = content
	return e
}

// Conflict marks path as unmerged.
func (e *Engine) Conflict(path string) *Engine {
	e.Conflicts[path] = true
	e.Worktree[path] = "<<<<<<<\n=======\n>>>>>>>\n"
	return e
}

func (e *Engine) RepoRoot() string       { return "/fake" }
func (e *Engine) GitDir() string         { return "/fake/.git" }
func (e *Engine) Branch() git.BranchInfo { return e.BranchVal }

func (e *Engine) Status() ([]git.StatusRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.Fail["Status"]; err != nil {
		return nil, err
	}
	var out []git.StatusRecord
	for _, p := range e.allPaths() {
		if e.Conflicts[p] {
			out = append(out, git.StatusRecord{Path: p, Index: 'U', Worktree: 'U', Conflict: true})
			continue
		}
		head, inHead := e.Head[p]
		idx, inIndex := e.Index[p]
		wt, inWT := e.Worktree[p]

		rec := git.StatusRecord{Path: p, Index: '.', Worktree: '.'}
		switch {
		case !inHead && inIndex:
			rec.Index = 'A'
		case inHead && !inIndex:
			rec.Index = 'D'
		case inHead && inIndex && head != idx:
			rec.Index = 'M'
		}
		switch {
		case inIndex && !inWT:
			rec.Worktree = 'D'
		case inIndex && inWT && idx != wt:
			rec.Worktree = 'M'
		}
		if rec.IndexChanged() || rec.WorktreeChanged() {
			out = append(out, rec)
		}
		if !inIndex && inWT {
			out = append(out, git.StatusRecord{Path: p, Index: '?', Worktree: '?', Untracked: true})
		}
	}
	return out, nil
}

func (e *Engine) NumStat(section git.Section) (map[string]git.NumStat, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stats := map[string]git.NumStat{}
	for _, p := range e.allPaths() {
		if e.Conflicts[p] {
			continue
		}
		oldC, oldOK, newC, newOK := e.sides(section, p)
		if !oldOK && !newOK || (oldOK && newOK && oldC == newC) {
			continue
		}
		if section == git.Unstaged && !oldOK {
			continue // untracked
		}
		if isBinary(oldC) || isBinary(newC) {
			stats[p] = git.NumStat{Binary: true}
			continue
		}
		stats[p] = git.NumStat{Added: countLines(newC), Deleted: countLines(oldC)}
	}
	return stats, nil
}

// Diff renders a whole-file replacement patch.
func (e *Engine) Diff(section git.Section, path, _ string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	oldC, oldOK, newC, newOK := e.sides(section, path)
	if oldOK && newOK && oldC == newC || !oldOK && !newOK {
		return "", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	if isBinary(oldC) || isBinary(newC) {
		fmt.Fprintf(&b, "Binary files a/%s and b/%s differ\n", path, path)
		return b.String(), nil
	}
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	oldLines, newLines := splitLines(oldC), splitLines(newC)
	newStart := 1
	if len(newLines) == 0 {
		newStart = 0
	}
	oldStart := 1
	if len(oldLines) == 0 {
		oldStart = 0
	}
	fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, len(oldLines), newStart, len(newLines))
	for _, l := range oldLines {
		b.WriteString("-" + l + "\n")
	}
	for _, l := range newLines {
		b.WriteString("+" + l + "\n")
	}
	return b.String(), nil
}

func (e *Engine) ReadWorktreeFile(path string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.Worktree[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return []byte(c), nil
}

func (e *Engine) Stage(paths ...string) error {
	return e.mutate("Stage", paths, func(p string) {
		delete(e.Conflicts, p)
		if c, ok := e.Worktree[p]; ok {
			e.Index[p] = c
		} else {
			delete(e.Index, p)
		}
	})
}

func (e *Engine) Unstage(paths ...string) error {
	return e.mutate("Unstage", paths, func(p string) {
		if c, ok := e.Head[p]; ok {
			e.Index[p] = c
		} else {
			delete(e.Index, p)
		}
	})
}

func (e *Engine) DiscardWorktree(paths ...string) error {
	return e.mutate("DiscardWorktree", paths, func(p string) {
		if c, ok := e.Index[p]; ok {
			e.Worktree[p] = c
		}
	})
}

func (e *Engine) RemoveUntracked(paths ...string) error {
	return e.mutate("RemoveUntracked", paths, func(p string) {
		delete(e.Worktree, p)
	})
}

func (e *Engine) mutate(op string, paths []string, apply func(string)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(paths) == 0 {
		return nil
	}
	if err := e.Fail[op]; err != nil {
		return err
	}
	e.Calls = append(e.Calls, op+" "+strings.Join(paths, " "))
	for _, p := range paths {
		apply(p)
	}
	return nil
}

// sides returns the old and new content compared by a section's diff.
func (e *Engine) sides(section git.Section, p string) (oldC string, oldOK bool, newC string, newOK bool) {
	if section == git.Staged {
		oldC, oldOK = e.Head[p]
		newC, newOK = e.Index[p]
		return
	}
	oldC, oldOK = e.Index[p]
	newC, newOK = e.Worktree[p]
	return
}

func (e *Engine) allPaths() []string {
	seen := map[string]struct{}{}
	for _, m := range []map[string]string{e.Head, e.Index, e.Worktree} {
		for p := range m {
			seen[p] = struct{}{}
		}
	}
	for p := range e.Conflicts {
		seen[p] = struct{}{}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func isBinary(s string) bool { return strings.IndexByte(s, 0) >= 0 }

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func countLines(s string) int { return len(splitLines(s)) }
