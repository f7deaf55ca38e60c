// Package ui provides shared TUI styling, layout helpers, and theme definitions.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/common"
)

// Minimum terminal size; below it only a warning is drawn.
const (
	MinWidth  = 30
	MinHeight = 10
)

// Layout is the screen split for one frame.
//
//	┌ status bar (1 row) ─────────┐
//	│ file list (bordered)        │
//	│ diff pane (bordered)        │
//	└ prompt / flash bar (1 row) ─┘
type Layout struct {
	StatusBar common.Rect
	FileList  common.Rect
	Diff      common.Rect
	Footer    common.Rect
	TooSmall  bool
}

// ComputeLayout splits a width×height screen. The file list grows with its
// content (one row per file plus one per non-empty section header) up to a
// third of the screen, never below five rows; the diff pane gets the rest.
func ComputeLayout(width, height, staged, unstaged int) Layout {
	if width < MinWidth || height < MinHeight {
		return Layout{TooSmall: true}
	}

	content := 0
	if staged > 0 {
		content += 1 + staged
	}
	if unstaged > 0 {
		content += 1 + unstaged
	}
	listH := min(content+2, max(height/3, 5))
	diffH := height - 2 - listH

	return Layout{
		StatusBar: common.Rect{X: 0, Y: 0, W: width, H: 1},
		FileList:  common.Rect{X: 0, Y: 1, W: width, H: listH},
		Diff:      common.Rect{X: 0, Y: 1 + listH, W: width, H: diffH},
		Footer:    common.Rect{X: 0, Y: height - 1, W: width, H: 1},
	}
}

// PlaceCentre centres content both horizontally and vertically within the given dimensions.
func PlaceCentre(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Truncate truncates s to maxLen cells, appending "…" if truncated.
func Truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// TruncateLeft keeps the tail of s so that "…"+tail fits in maxLen cells.
func TruncateLeft(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > maxLen {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

// PadRight pads s with spaces to the given width.
func PadRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// RenderKeyValue renders a "key: value" pair with styles.
func RenderKeyValue(styles Styles, key, value string) string {
	return styles.KeyBind.Render(key) + " " + styles.KeyDesc.Render(value)
}
