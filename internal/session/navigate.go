package session

import "github.com/Akashdeep-Patra/bgs/internal/diffview"

// MoveHighlight moves the highlight by delta rows, clamped to the list.
func (s *Session) MoveHighlight(delta int) {
	if len(s.rows) == 0 {
		return
	}
	n := len(s.rows)
	idx := max(s.highlight, 0) + min(max(delta, -n), n)
	s.highlight = min(max(idx, 0), n-1)
	s.scrollToHighlight()
}

// Jump highlights the first or last row.
func (s *Session) Jump(top bool) {
	if top {
		s.MoveHighlight(-len(s.rows))
		return
	}
	s.MoveHighlight(len(s.rows))
}

// SetListHeight records how many file-list rows the renderer can show and
// keeps the highlight inside that window.
func (s *Session) SetListHeight(h int) {
	s.listHeight = max(h, 0)
	s.scrollToHighlight()
}

// scrollToHighlight keeps the highlighted row visible, counting the
// section headers drawn above it.
func (s *Session) scrollToHighlight() {
	if s.highlight < 0 {
		return
	}
	visual := s.highlight + s.headersBefore(s.highlight)
	switch {
	case visual < s.listScroll:
		s.listScroll = visual
	case s.listHeight > 0 && visual >= s.listScroll+s.listHeight:
		s.listScroll = visual - s.listHeight + 1
	}
}

func (s *Session) headersBefore(idx int) int {
	n := 0
	if len(s.status.Staged) > 0 {
		n++
	}
	if len(s.status.Unstaged) > 0 && idx >= len(s.status.Staged) {
		n++
	}
	return n
}

// SelectCurrent shows the diff of the highlighted row.
func (s *Session) SelectCurrent() {
	k, ok := s.HighlightedKey()
	if !ok {
		return
	}
	s.selected = k
	s.hasSelected = true
	s.diffScroll = 0
	s.loadDiff()
}

// ToggleMultiSelect flips the highlighted row's membership in the
// multi-select set. The single selection is unaffected.
func (s *Session) ToggleMultiSelect() {
	k, ok := s.HighlightedKey()
	if !ok {
		return
	}
	if _, in := s.multi[k]; in {
		delete(s.multi, k)
	} else {
		s.multi[k] = struct{}{}
	}
}

// ClearMultiSelect empties the multi-select set.
func (s *Session) ClearMultiSelect() { clear(s.multi) }

// HasMultiSelect reports whether any row is multi-selected.
func (s *Session) HasMultiSelect() bool { return len(s.multi) > 0 }

// ActionTargets is the input of every bulk action: the multi-select set
// when it is non-empty, otherwise the highlighted row.
func (s *Session) ActionTargets() []Key {
	if len(s.multi) == 0 {
		if k, ok := s.HighlightedKey(); ok {
			return []Key{k}
		}
		return nil
	}
	return s.MultiSelected()
}

// ClickRow handles a click on the file list. row is relative to the first
// visible list row; header rows are ignored.
func (s *Session) ClickRow(row int) {
	if row < 0 {
		return
	}
	visual := s.listScroll + row
	staged, unstaged := len(s.status.Staged), len(s.status.Unstaged)

	var idx int
	switch {
	case staged > 0 && unstaged > 0:
		unstagedHeader := staged + 1
		switch {
		case visual == 0 || visual == unstagedHeader:
			return
		case visual < unstagedHeader:
			idx = visual - 1
		default:
			idx = visual - 2
		}
	case staged > 0 || unstaged > 0:
		if visual == 0 {
			return
		}
		idx = visual - 1
	default:
		return
	}
	if idx >= len(s.rows) {
		return
	}
	s.highlight = idx
	s.SelectCurrent()
}

// ScrollDiff scrolls the diff pane by delta rows, clamped so the last
// wrapped row can reach the bottom of a height×width viewport.
func (s *Session) ScrollDiff(delta, height, width int) {
	limit := diffview.MaxScroll(s.diff, height, width)
	s.diffScroll = min(max(s.diffScroll+delta, 0), limit)
}

// PageDiff scrolls the diff pane by one viewport height.
func (s *Session) PageDiff(down bool, height, width int) {
	if down {
		s.ScrollDiff(height, height, width)
		return
	}
	s.ScrollDiff(-height, height, width)
}
