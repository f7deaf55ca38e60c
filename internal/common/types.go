package common

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen rectangle in cells. Panes are recorded as Rects after
// every layout so mouse events can be hit-tested against them.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inner returns r shrunk by a one-cell border on every side.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, W: max(r.W-2, 0), H: max(r.H-2, 0)}
}

// ── Custom messages ─────────────────────────────────────────────────────────

// TickMsg wakes the reconciliation loop.
type TickMsg time.Time

// CmdTick schedules a TickMsg after d.
func CmdTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}
