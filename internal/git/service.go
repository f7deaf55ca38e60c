package git

// Engine defines the contract for every version-control operation the
// dashboard needs. The classifier, the diff materializer and the session all
// depend on this interface, never on exec.Command directly, so they can be
// driven by in-memory fakes in tests.
type Engine interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	GitDir() string
	Branch() BranchInfo

	// ── Raw status & diff ────────────────────────────────────────────
	Status() ([]StatusRecord, error)
	NumStat(section Section) (map[string]NumStat, error)
	Diff(section Section, path, oldPath string) (string, error)
	ReadWorktreeFile(path string) ([]byte, error)

	// ── Index & work tree mutations ──────────────────────────────────
	Stage(paths ...string) error
	Unstage(paths ...string) error
	DiscardWorktree(paths ...string) error
	RemoveUntracked(paths ...string) error
}
