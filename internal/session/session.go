// Package session holds the interactive state of a bgs run: the classified
// file lists, highlight and selection, multi-select, scroll offsets, the
// pending confirmation prompt, the undo slot and the flash message.
//
// A Session is not safe for concurrent use. The bubbletea model owns it and
// mutates it only from Update.
package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/Akashdeep-Patra/bgs/internal/git"
)

// DefaultFlashTimeout is how long a flash message stays visible.
const DefaultFlashTimeout = 3 * time.Second

// Key identifies a visible row across refreshes. Selections hold keys, never
// entries, so a key whose file vanished is detected by lookup failure.
type Key struct {
	Section git.Section
	Path    string
}

// ConfirmAction is what a confirmation prompt does when accepted.
type ConfirmAction int

const (
	ConfirmStageAll ConfirmAction = iota
	ConfirmUnstageAll
	ConfirmDiscardAll
	ConfirmDiscardSelected
)

// ConfirmPrompt is a pending yes/no question. Targets is only set for
// ConfirmDiscardSelected.
type ConfirmPrompt struct {
	Message string
	Action  ConfirmAction
	Targets []Key
}

// UndoKind names the mutation an UndoAction reverts.
type UndoKind int

const (
	UndoStage UndoKind = iota
	UndoUnstage
)

// UndoAction is the single retained undoable mutation.
type UndoAction struct {
	Kind  UndoKind
	Paths []string
}

// Flash is a transient status line message.
type Flash struct {
	Text    string
	IsError bool
	ShownAt time.Time
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	FlashTimeout time.Duration
	Now          func() time.Time
}

// invalidator is implemented by engines that cache reads.
type invalidator interface {
	Invalidate()
}

// Session is the interaction state machine.
type Session struct {
	eng          git.Engine
	now          func() time.Time
	flashTimeout time.Duration

	branch git.BranchInfo
	status git.StatusResult
	rows   []Key

	highlight   int // -1 when nothing is highlighted.
	selected    Key
	hasSelected bool
	multi       map[Key]struct{}

	diff       git.DiffContent
	diffScroll int
	listScroll int
	listHeight int

	prompt *ConfirmPrompt
	undo   *UndoAction
	flash  *Flash
}

// New builds a session over eng and loads the initial state.
func New(eng git.Engine, opts Options) (*Session, error) {
	s := &Session{
		eng:          eng,
		now:          opts.Now,
		flashTimeout: opts.FlashTimeout,
		highlight:    -1,
		multi:        map[Key]struct{}{},
		diff:         git.CleanDiff,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.flashTimeout <= 0 {
		s.flashTimeout = DefaultFlashTimeout
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh reclassifies the work tree and reconciles every piece of state
// with the new file lists. On error the previous lists are kept.
func (s *Session) Refresh() error {
	if inv, ok := s.eng.(invalidator); ok {
		inv.Invalidate()
	}
	res, err := git.Classify(s.eng)
	if err != nil {
		return fmt.Errorf("refreshing status: %w", err)
	}
	s.branch = s.eng.Branch()
	s.status = res
	s.rows = buildRows(res)

	if len(s.rows) == 0 {
		s.highlight = -1
		s.hasSelected = false
		s.selected = Key{}
		clear(s.multi)
		s.diff = git.CleanDiff
		s.diffScroll = 0
		s.listScroll = 0
		return nil
	}

	s.pruneMultiSelect()

	switch {
	case s.highlight < 0:
		s.highlight = 0
	case s.highlight >= len(s.rows):
		s.highlight = len(s.rows) - 1
	}

	if s.hasSelected {
		if _, ok := s.entry(s.selected); ok {
			s.loadDiff()
		} else {
			s.hasSelected = false
			s.selected = Key{}
			s.diff = git.EmptyDiff
			s.diffScroll = 0
		}
	} else {
		s.diff = git.EmptyDiff
	}

	s.scrollToHighlight()
	return nil
}

// buildRows flattens staged then unstaged entries into visible rows.
func buildRows(res git.StatusResult) []Key {
	rows := make([]Key, 0, len(res.Staged)+len(res.Unstaged))
	for _, e := range res.Staged {
		rows = append(rows, Key{Section: git.Staged, Path: e.Path})
	}
	for _, e := range res.Unstaged {
		rows = append(rows, Key{Section: git.Unstaged, Path: e.Path})
	}
	return rows
}

func (s *Session) pruneMultiSelect() {
	for k := range s.multi {
		if _, ok := s.entry(k); !ok {
			delete(s.multi, k)
		}
	}
}

// entry resolves a key against the current lists.
func (s *Session) entry(k Key) (git.FileEntry, bool) {
	list := s.status.Unstaged
	if k.Section == git.Staged {
		list = s.status.Staged
	}
	for _, e := range list {
		if e.Path == k.Path {
			return e, true
		}
	}
	return git.FileEntry{}, false
}

// loadDiff recomputes the diff of the selected entry.
func (s *Session) loadDiff() {
	e, ok := s.entry(s.selected)
	if !ok {
		return
	}
	switch {
	case e.Status == git.StatusConflict:
		s.diff = git.ConflictDiff
	case e.IsBinary:
		s.diff = git.BinaryDiff
	case e.Status == git.StatusUntracked:
		s.diff = git.MaterializeUntracked(s.eng, e.Path)
	default:
		s.diff = git.Materialize(s.eng, e.Path, e.OldPath, s.selected.Section)
	}
}

// ── Accessors ───────────────────────────────────────────────────────────────

func (s *Session) Branch() git.BranchInfo   { return s.branch }
func (s *Session) Status() git.StatusResult { return s.status }
func (s *Session) Diff() git.DiffContent    { return s.diff }
func (s *Session) DiffScroll() int          { return s.diffScroll }
func (s *Session) ListScroll() int          { return s.listScroll }

// Rows returns the visible rows, staged first.
func (s *Session) Rows() []Key { return s.rows }

// Highlight returns the highlighted row index.
func (s *Session) Highlight() (int, bool) { return s.highlight, s.highlight >= 0 }

// HighlightedKey returns the key of the highlighted row.
func (s *Session) HighlightedKey() (Key, bool) {
	if s.highlight < 0 || s.highlight >= len(s.rows) {
		return Key{}, false
	}
	return s.rows[s.highlight], true
}

// Selected returns the key whose diff is shown.
func (s *Session) Selected() (Key, bool) { return s.selected, s.hasSelected }

// IsMultiSelected reports whether k is in the multi-select set.
func (s *Session) IsMultiSelected(k Key) bool {
	_, ok := s.multi[k]
	return ok
}

// MultiSelected returns the multi-select set in display order.
func (s *Session) MultiSelected() []Key {
	keys := make([]Key, 0, len(s.multi))
	for k := range s.multi {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Entry resolves k to its current file entry.
func (s *Session) Entry(k Key) (git.FileEntry, bool) { return s.entry(k) }

// Prompt returns the pending confirmation, or nil.
func (s *Session) Prompt() *ConfirmPrompt { return s.prompt }

// LastAction returns the undo slot, or nil.
func (s *Session) LastAction() *UndoAction { return s.undo }

// Flash returns the live flash message, or nil.
func (s *Session) Flash() *Flash { return s.flash }

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Section != keys[j].Section {
			return keys[i].Section < keys[j].Section
		}
		return keys[i].Path < keys[j].Path
	})
}
