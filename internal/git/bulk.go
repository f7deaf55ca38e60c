package git

// ── Whole-section operations ────────────────────────────────────────────────

// StageAll stages every currently unstaged path and returns the paths it
// touched.
func StageAll(eng Engine) ([]string, error) {
	res, err := Classify(eng)
	if err != nil {
		return nil, err
	}
	paths := Paths(res.Unstaged)
	if len(paths) == 0 {
		return nil, nil
	}
	if err := eng.Stage(paths...); err != nil {
		return nil, err
	}
	return paths, nil
}

// UnstageAll unstages every currently staged path and returns the paths it
// touched.
func UnstageAll(eng Engine) ([]string, error) {
	res, err := Classify(eng)
	if err != nil {
		return nil, err
	}
	paths := Paths(res.Staged)
	if len(paths) == 0 {
		return nil, nil
	}
	if err := eng.Unstage(paths...); err != nil {
		return nil, err
	}
	return paths, nil
}

// DiscardResult reports what a discard did.
type DiscardResult struct {
	Discarded int
	Skipped   int // Conflicted entries left untouched.
}

// Discard reverts unstaged entries: tracked files are restored from the
// index, untracked files are deleted. Conflicts are skipped and counted.
func Discard(eng Engine, entries []FileEntry) (DiscardResult, error) {
	var (
		res       DiscardResult
		tracked   []string
		untracked []string
	)
	for _, e := range entries {
		switch e.Status {
		case StatusConflict:
			res.Skipped++
		case StatusUntracked:
			untracked = append(untracked, e.Path)
		default:
			tracked = append(tracked, e.Path)
		}
	}
	if err := eng.DiscardWorktree(tracked...); err != nil {
		return res, err
	}
	res.Discarded += len(tracked)
	if err := eng.RemoveUntracked(untracked...); err != nil {
		return res, err
	}
	res.Discarded += len(untracked)
	return res, nil
}

// DiscardAllUnstaged discards every currently unstaged entry.
func DiscardAllUnstaged(eng Engine) (DiscardResult, error) {
	res, err := Classify(eng)
	if err != nil {
		return DiscardResult{}, err
	}
	return Discard(eng, res.Unstaged)
}

// Paths returns the paths of entries in order.
func Paths(entries []FileEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
