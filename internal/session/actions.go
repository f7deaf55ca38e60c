package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/Akashdeep-Patra/bgs/internal/git"
)

// ── Stage / unstage / undo ──────────────────────────────────────────────────

// StageSelected stages the unstaged action targets. Staged targets are
// ignored.
func (s *Session) StageSelected() error {
	paths := s.targetPaths(git.Unstaged)
	if len(paths) == 0 {
		return nil
	}
	if err := s.eng.Stage(paths...); err != nil {
		return fmt.Errorf("staging: %w", err)
	}
	s.undo = &UndoAction{Kind: UndoStage, Paths: paths}
	s.ClearMultiSelect()
	if err := s.Refresh(); err != nil {
		return err
	}
	s.FlashSuccess("Staged " + plural(len(paths), "file"))
	return nil
}

// UnstageSelected unstages the staged action targets. Unstaged targets are
// ignored.
func (s *Session) UnstageSelected() error {
	paths := s.targetPaths(git.Staged)
	if len(paths) == 0 {
		return nil
	}
	if err := s.eng.Unstage(paths...); err != nil {
		return fmt.Errorf("unstaging: %w", err)
	}
	s.undo = &UndoAction{Kind: UndoUnstage, Paths: paths}
	s.ClearMultiSelect()
	if err := s.Refresh(); err != nil {
		return err
	}
	s.FlashSuccess("Unstaged " + plural(len(paths), "file"))
	return nil
}

func (s *Session) targetPaths(section git.Section) []string {
	var paths []string
	for _, k := range s.ActionTargets() {
		if k.Section == section {
			paths = append(paths, k.Path)
		}
	}
	return paths
}

// Undo reverts the last stage or unstage. The slot is cleared only once
// the inverse mutation succeeded, and undo itself is not undoable.
func (s *Session) Undo() error {
	if s.undo == nil {
		return nil
	}
	action := *s.undo
	var msg string
	switch action.Kind {
	case UndoStage:
		if err := s.eng.Unstage(action.Paths...); err != nil {
			return fmt.Errorf("undoing stage: %w", err)
		}
		msg = "Undid stage of " + plural(len(action.Paths), "file")
	case UndoUnstage:
		if err := s.eng.Stage(action.Paths...); err != nil {
			return fmt.Errorf("undoing unstage: %w", err)
		}
		msg = "Undid unstage of " + plural(len(action.Paths), "file")
	}
	s.undo = nil
	if err := s.Refresh(); err != nil {
		return err
	}
	s.FlashSuccess(msg)
	return nil
}

// ── Confirmation prompts ────────────────────────────────────────────────────

// ShowStageAllConfirm asks before staging every unstaged entry.
func (s *Session) ShowStageAllConfirm() {
	n := len(s.status.Unstaged)
	if n == 0 {
		return
	}
	s.prompt = &ConfirmPrompt{
		Message: fmt.Sprintf("Stage %s? [y/N]", plural(n, "file")),
		Action:  ConfirmStageAll,
	}
}

// ShowUnstageAllConfirm asks before unstaging every staged entry.
func (s *Session) ShowUnstageAllConfirm() {
	n := len(s.status.Staged)
	if n == 0 {
		return
	}
	s.prompt = &ConfirmPrompt{
		Message: fmt.Sprintf("Unstage %s? [y/N]", plural(n, "file")),
		Action:  ConfirmUnstageAll,
	}
}

// ShowDiscardSelectedConfirm asks before discarding the unstaged action
// targets. Conflicted targets refuse the whole request.
func (s *Session) ShowDiscardSelectedConfirm() {
	var (
		targets      []Key
		hasUntracked bool
	)
	for _, k := range s.ActionTargets() {
		if k.Section != git.Unstaged {
			continue
		}
		e, ok := s.entry(k)
		if !ok {
			continue
		}
		if e.Status == git.StatusConflict {
			s.FlashError("Cannot discard conflicted files. Resolve conflicts first.")
			return
		}
		if e.Status == git.StatusUntracked {
			hasUntracked = true
		}
		targets = append(targets, k)
	}

	var msg string
	switch n := len(targets); {
	case n == 0:
		return
	case n == 1 && hasUntracked:
		msg = "Delete untracked file? [y/N]"
	case n == 1:
		msg = "Discard changes? [y/N]"
	case hasUntracked:
		msg = fmt.Sprintf("Discard %d changes (including untracked files)? [y/N]", n)
	default:
		msg = fmt.Sprintf("Discard %d changes? [y/N]", n)
	}
	s.prompt = &ConfirmPrompt{Message: msg, Action: ConfirmDiscardSelected, Targets: targets}
}

// ShowDiscardAllConfirm asks before discarding every unstaged entry.
func (s *Session) ShowDiscardAllConfirm() {
	n := len(s.status.Unstaged)
	if n == 0 {
		return
	}
	msg := fmt.Sprintf("Discard all changes (%s)? [y/N]", plural(n, "file"))
	for _, e := range s.status.Unstaged {
		if e.Status == git.StatusUntracked {
			msg = fmt.Sprintf("Discard all changes and delete untracked files (%s)? [y/N]", plural(n, "file"))
			break
		}
	}
	s.prompt = &ConfirmPrompt{Message: msg, Action: ConfirmDiscardAll}
}

// HandleConfirm consumes the pending prompt. A denial just drops it.
func (s *Session) HandleConfirm(confirmed bool) error {
	p := s.prompt
	s.prompt = nil
	if p == nil || !confirmed {
		return nil
	}
	switch p.Action {
	case ConfirmStageAll:
		return s.applyAll(git.StageAll, UndoStage, "Staged ")
	case ConfirmUnstageAll:
		return s.applyAll(git.UnstageAll, UndoUnstage, "Unstaged ")
	case ConfirmDiscardSelected:
		var entries []git.FileEntry
		for _, k := range p.Targets {
			if e, ok := s.entry(k); ok && k.Section == git.Unstaged {
				entries = append(entries, e)
			}
		}
		res, err := git.Discard(s.eng, entries)
		return s.finishDiscard(res, err)
	case ConfirmDiscardAll:
		res, err := git.DiscardAllUnstaged(s.eng)
		return s.finishDiscard(res, err)
	}
	return nil
}

func (s *Session) applyAll(op func(git.Engine) ([]string, error), kind UndoKind, verb string) error {
	paths, err := op(s.eng)
	if err != nil {
		return fmt.Errorf("%s: %w", verbNoun(kind), err)
	}
	if len(paths) > 0 {
		s.undo = &UndoAction{Kind: kind, Paths: paths}
	}
	s.ClearMultiSelect()
	if err := s.Refresh(); err != nil {
		return err
	}
	if len(paths) > 0 {
		s.FlashSuccess(verb + plural(len(paths), "file"))
	}
	return nil
}

func verbNoun(kind UndoKind) string {
	if kind == UndoStage {
		return "staging all"
	}
	return "unstaging all"
}

// finishDiscard runs after any discard, successful or not: discards are
// irreversible so the undo slot no longer applies.
func (s *Session) finishDiscard(res git.DiscardResult, err error) error {
	s.undo = nil
	s.ClearMultiSelect()
	refreshErr := s.Refresh()
	if err != nil {
		return errors.Join(fmt.Errorf("discarding: %w", err), refreshErr)
	}
	if refreshErr != nil {
		return refreshErr
	}
	switch {
	case res.Discarded > 0 && res.Skipped > 0:
		s.FlashSuccess(fmt.Sprintf("Discarded %s (%s skipped)",
			plural(res.Discarded, "file"), plural(res.Skipped, "conflict")))
	case res.Discarded > 0:
		s.FlashSuccess("Discarded " + plural(res.Discarded, "file"))
	case res.Skipped > 0:
		s.FlashError(fmt.Sprintf("No files discarded (%s skipped)", plural(res.Skipped, "conflict")))
	}
	return nil
}

// ── Flash ───────────────────────────────────────────────────────────────────

func (s *Session) FlashSuccess(text string) {
	s.flash = &Flash{Text: text, ShownAt: s.now()}
}

func (s *Session) FlashError(text string) {
	s.flash = &Flash{Text: text, IsError: true, ShownAt: s.now()}
}

func (s *Session) ClearFlash() { s.flash = nil }

// CheckFlashExpiry drops the flash once it has been visible for the flash
// timeout.
func (s *Session) CheckFlashExpiry(now time.Time) {
	if s.flash != nil && now.Sub(s.flash.ShownAt) >= s.flashTimeout {
		s.flash = nil
	}
}

// plural renders "1 file" or "N files".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
