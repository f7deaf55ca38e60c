package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/ui"
)

// RenderScrollbar returns a vertical scrollbar track of the given height.
// The thumb is sized by the visible share of total and placed by offset,
// which ranges over [0, total-visible].
//
// Returns an empty string if all content fits (no scrolling needed).
func RenderScrollbar(styles ui.Styles, height, total, visible, offset int) string {
	if total <= visible || height < 1 {
		return ""
	}

	t := styles.Theme

	thumbSize := min(max(height*visible/total, 1), height)

	maxOffset := height - thumbSize
	thumbStart := 0
	if span := total - visible; span > 0 {
		thumbStart = offset * maxOffset / span
	}
	thumbStart = min(max(thumbStart, 0), maxOffset)

	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)

	var b strings.Builder
	b.Grow(height * 4)
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render("█"))
		} else {
			b.WriteString(trackStyle.Render("░"))
		}
	}
	return b.String()
}
