package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/diffview"
	"github.com/Akashdeep-Patra/bgs/internal/git"
	"github.com/Akashdeep-Patra/bgs/internal/ui"
	"github.com/Akashdeep-Patra/bgs/internal/ui/components"
)

// DiffTextWidth is the width diff rows are wrapped to inside a diff pane
// width cells wide: the border and the scrollbar column are excluded.
func DiffTextWidth(width int) int {
	return max(width-3, 0)
}

// DiffTextHeight is the number of diff rows visible in a pane height
// cells tall.
func DiffTextHeight(height int) int {
	return max(height-2, 0)
}

// DiffPaneData is what the diff pane shows.
type DiffPaneData struct {
	Content git.DiffContent
	Path    string // File the diff belongs to; empty when none is selected.
	Scroll  int
}

// RenderDiffPane draws the bordered diff pane: gutter, wrapped rows and a
// scrollbar, or a centred placeholder for contents without text.
func RenderDiffPane(styles ui.Styles, data DiffPaneData, width, height int) string {
	textW := DiffTextWidth(width)
	textH := DiffTextHeight(height)

	title := "Diff"
	if data.Path != "" {
		title += " " + data.Path
	}

	if data.Content.Kind != git.DiffText {
		msg := styles.Placeholder.Render(diffview.Placeholder(data.Content.Kind))
		body := lipgloss.Place(width-2, textH, lipgloss.Center, lipgloss.Center, msg)
		return framePane(styles, title, "", strings.Split(body, "\n"), width, height)
	}

	rows := diffview.Rows(data.Content, textW)
	start := min(max(data.Scroll, 0), len(rows))
	end := min(start+textH, len(rows))

	var bar []string
	if sb := components.RenderScrollbar(styles, textH, len(rows), textH, start); sb != "" {
		bar = strings.Split(sb, "\n")
	}

	lines := make([]string, 0, textH)
	for i, r := range rows[start:end] {
		line := ui.PadRight(renderDiffRow(styles, r), textW)
		if i < len(bar) {
			line += bar[i]
		}
		lines = append(lines, line)
	}
	for i := len(lines); i < len(bar); i++ {
		lines = append(lines, strings.Repeat(" ", textW)+bar[i])
	}

	hint := ""
	if len(rows) > textH {
		hint = fmt.Sprintf("%d/%d", end, len(rows))
	}
	return framePane(styles, title, hint, lines, width, height)
}

func renderDiffRow(styles ui.Styles, r diffview.Row) string {
	return styles.DiffGutter.Render(r.Gutter) + styles.DiffLine(r.Kind).Render(r.Prefix+r.Text)
}
