// Package views renders the two panes of the bgs screen from session
// state. Views are pure functions of their inputs; they never mutate the
// session.
package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/ui"
)

// framePane draws lines inside a rounded border of exactly width×height
// cells with title embedded in the top edge and hint right-aligned in it.
// lines must already fit the inner width; missing lines are blank.
func framePane(styles ui.Styles, title, hint string, lines []string, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	b := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(styles.Theme.Border)
	inner := width - 2

	label := ""
	if title != "" {
		label = " " + ui.Truncate(title, max(inner-2, 0)) + " "
	}
	tail := ""
	if hint != "" && lipgloss.Width(label)+lipgloss.Width(hint)+4 <= inner {
		tail = " " + hint + " "
	}
	fill := max(inner-1-lipgloss.Width(label)-lipgloss.Width(tail), 0)
	top := edge.Render(b.TopLeft+b.Top) + styles.PanelTitle.Render(label) +
		edge.Render(strings.Repeat(b.Top, fill)) + styles.Muted.Render(tail) +
		edge.Render(b.TopRight)

	out := make([]string, 0, height)
	out = append(out, top)
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, edge.Render(b.Left)+ui.PadRight(line, inner)+edge.Render(b.Right))
	}
	out = append(out, edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight))
	return strings.Join(out, "\n")
}
