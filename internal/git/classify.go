package git

import (
	"fmt"
	"sort"
)

// Classify turns raw status records into the staged/unstaged change model.
//
// Per record the precedence is conflict, then untracked, then type change
// or submodule (one entry on whichever side changed), then regular changes
// which may emit one entry on each side.
func Classify(eng Engine) (StatusResult, error) {
	records, err := eng.Status()
	if err != nil {
		return StatusResult{}, fmt.Errorf("classifying status: %w", err)
	}

	c := &classifier{eng: eng}
	for _, r := range records {
		c.add(r)
	}

	sortEntries(c.staged)
	sortEntries(c.unstaged)

	return StatusResult{
		Staged:         c.staged,
		Unstaged:       c.unstaged,
		StagedCount:    len(c.stagedPaths),
		UnstagedCount:  len(c.unstagedPaths),
		UntrackedCount: len(c.untrackedPaths),
	}, nil
}

type classifier struct {
	eng Engine

	staged, unstaged []FileEntry

	stagedPaths, unstagedPaths, untrackedPaths map[string]struct{}

	// numstats are fetched at most once per section per pass.
	numstats [2]map[string]NumStat
	loaded   [2]bool
}

func (c *classifier) add(r StatusRecord) {
	switch {
	case r.Conflict:
		c.emit(Unstaged, FileEntry{Path: r.Path, Status: StatusConflict})

	case r.Untracked:
		e := FileEntry{Path: r.Path, Status: StatusUntracked}
		added := 0
		if data, err := c.eng.ReadWorktreeFile(r.Path); err == nil {
			added, e.IsBinary = CountLines(data)
		}
		deleted := 0
		e.AddedLines, e.DeletedLines = &added, &deleted
		c.emit(Unstaged, e)

	case r.TypeChanged() || r.Submodule:
		section, status := Unstaged, unstagedStatus(r)
		if r.IndexChanged() {
			section, status = Staged, stagedStatus(r)
		}
		e := c.withCounts(FileEntry{Path: r.Path, Status: status, IsSubmodule: true}, section)
		if status == StatusRenamed {
			e.OldPath = r.OrigPath
		}
		c.emit(section, e)

	default:
		if r.IndexChanged() {
			e := FileEntry{Path: r.Path, Status: stagedStatus(r)}
			if e.Status == StatusRenamed {
				e.OldPath = r.OrigPath
			}
			c.emit(Staged, c.withCounts(e, Staged))
		}
		if r.WorktreeChanged() {
			e := FileEntry{Path: r.Path, Status: unstagedStatus(r)}
			if e.Status == StatusRenamed {
				e.OldPath = r.OrigPath
			}
			c.emit(Unstaged, c.withCounts(e, Unstaged))
		}
	}
}

func (c *classifier) emit(section Section, e FileEntry) {
	if section == Staged {
		c.staged = append(c.staged, e)
		addPath(&c.stagedPaths, e.Path)
		return
	}
	c.unstaged = append(c.unstaged, e)
	addPath(&c.unstagedPaths, e.Path)
	if e.Status == StatusUntracked {
		addPath(&c.untrackedPaths, e.Path)
	}
}

func addPath(set *map[string]struct{}, path string) {
	if *set == nil {
		*set = make(map[string]struct{})
	}
	(*set)[path] = struct{}{}
}

// withCounts fills line counts from the section's numstat. A path the
// numstat does not mention had no textual change. A failed numstat leaves
// the counts unknown.
func (c *classifier) withCounts(e FileEntry, section Section) FileEntry {
	if !c.loaded[section] {
		c.loaded[section] = true
		if stats, err := c.eng.NumStat(section); err == nil {
			c.numstats[section] = stats
		}
	}
	stats := c.numstats[section]
	if stats == nil {
		return e
	}
	ns := stats[e.Path]
	if ns.Binary {
		e.IsBinary = true
		return e
	}
	added, deleted := ns.Added, ns.Deleted
	e.AddedLines, e.DeletedLines = &added, &deleted
	return e
}

// stagedStatus resolves Added, Deleted, Renamed, Modified in that order.
func stagedStatus(r StatusRecord) FileStatus {
	switch {
	case r.Index == 'A' || r.Index == 'C':
		return StatusAdded
	case r.Index == 'D':
		return StatusDeleted
	case r.Index == 'R':
		return StatusRenamed
	default:
		return StatusModified
	}
}

// unstagedStatus resolves Deleted, Renamed, Modified in that order.
func unstagedStatus(r StatusRecord) FileStatus {
	switch {
	case r.Worktree == 'D':
		return StatusDeleted
	case r.Worktree == 'R':
		return StatusRenamed
	default:
		return StatusModified
	}
}

func sortEntries(entries []FileEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}
