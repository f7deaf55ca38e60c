package git

// FileStatus is the display status of a single changed path.
type FileStatus byte

// File statuses, rendered as their single-character symbol.
const (
	StatusAdded     FileStatus = 'A'
	StatusModified  FileStatus = 'M'
	StatusDeleted   FileStatus = 'D'
	StatusRenamed   FileStatus = 'R'
	StatusUntracked FileStatus = '?'
	StatusConflict  FileStatus = 'C'
)

// Symbol returns the single-character representation.
func (s FileStatus) Symbol() string { return string(s) }

// Label returns a human-readable description of the status.
func (s FileStatus) Label() string {
	switch s {
	case StatusAdded:
		return "Added"
	case StatusModified:
		return "Modified"
	case StatusDeleted:
		return "Deleted"
	case StatusRenamed:
		return "Renamed"
	case StatusUntracked:
		return "Untracked"
	case StatusConflict:
		return "Conflict"
	default:
		return ""
	}
}

// Section is the half of the change model a file entry belongs to.
type Section int

const (
	Staged Section = iota
	Unstaged
)

func (s Section) String() string {
	if s == Staged {
		return "staged"
	}
	return "unstaged"
}

// FileEntry is one classified change. Entries are rebuilt on every
// classification pass and never mutated in place.
type FileEntry struct {
	Path         string
	OldPath      string // Only set for renames.
	Status       FileStatus
	AddedLines   *int // nil when unknown (binary).
	DeletedLines *int
	IsBinary     bool
	IsSubmodule  bool
}

// Counts returns the line counts and whether they are known.
func (f FileEntry) Counts() (added, deleted int, ok bool) {
	if f.AddedLines == nil || f.DeletedLines == nil {
		return 0, 0, false
	}
	return *f.AddedLines, *f.DeletedLines, true
}

// StatusResult holds the classified state of the whole repository.
type StatusResult struct {
	Staged         []FileEntry
	Unstaged       []FileEntry
	StagedCount    int
	// UnstagedCount covers every distinct unstaged path, untracked ones
	// included; UntrackedCount is the untracked subset.
	UnstagedCount  int
	UntrackedCount int
}

// Empty reports whether nothing is staged or unstaged.
func (sr StatusResult) Empty() bool {
	return len(sr.Staged) == 0 && len(sr.Unstaged) == 0
}

// BranchInfo describes what HEAD points at.
type BranchInfo struct {
	Name     string // Branch name; empty when detached.
	Hash     string // Short hash when detached; "unknown" if unresolved.
	Detached bool
}

// String returns the branch name or "HEAD@<hash>".
func (b BranchInfo) String() string {
	if b.Detached {
		return "HEAD@" + b.Hash
	}
	return b.Name
}

// ── Raw engine records ──────────────────────────────────────────────────────

// StatusRecord is one entry of `git status --porcelain=v2`.
// Index and Worktree hold the XY codes ('.' means unchanged).
type StatusRecord struct {
	Path      string
	OrigPath  string
	Index     byte
	Worktree  byte
	Conflict  bool
	Untracked bool
	Submodule bool
}

// IndexChanged reports whether the index differs from HEAD.
func (r StatusRecord) IndexChanged() bool { return r.Index != '.' && r.Index != 0 }

// WorktreeChanged reports whether the work tree differs from the index.
func (r StatusRecord) WorktreeChanged() bool { return r.Worktree != '.' && r.Worktree != 0 }

// TypeChanged reports a type change on either side.
func (r StatusRecord) TypeChanged() bool { return r.Index == 'T' || r.Worktree == 'T' }

// NumStat is one line of `git diff --numstat`. Binary deltas have no counts.
type NumStat struct {
	Added   int
	Deleted int
	Binary  bool
}

// ── Diff model ──────────────────────────────────────────────────────────────

// DiffKind tags the active variant of DiffContent.
type DiffKind int

const (
	DiffEmpty DiffKind = iota
	DiffClean
	DiffText
	DiffBinary
	DiffInvalidUTF8
	DiffConflict
)

// DiffContent is the materialized diff of one file. Lines is only set for
// DiffText.
type DiffContent struct {
	Kind  DiffKind
	Lines []DiffLine
}

// LineKind classifies a diff line.
type LineKind int

const (
	LineHeader LineKind = iota
	LineHunk
	LineContext
	LineAdded
	LineDeleted
)

// DiffLine is one renderable diff line. NewLineNo is zero for headers, hunk
// headers, and deleted lines.
type DiffLine struct {
	Kind      LineKind
	Content   string
	NewLineNo int
}

// HasLineNo reports whether the line carries a new-side line number.
func (l DiffLine) HasLineNo() bool { return l.NewLineNo > 0 }

// Convenience constructors for the payload-less variants.
var (
	EmptyDiff       = DiffContent{Kind: DiffEmpty}
	CleanDiff       = DiffContent{Kind: DiffClean}
	BinaryDiff      = DiffContent{Kind: DiffBinary}
	InvalidUTF8Diff = DiffContent{Kind: DiffInvalidUTF8}
	ConflictDiff    = DiffContent{Kind: DiffConflict}
)
