package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/ui"
)

// FooterData is what the bottom bar can show. A pending prompt wins over a
// flash message, which wins over the key hints.
type FooterData struct {
	Prompt     string
	Flash      string
	FlashError bool
	Hints      []HelpEntry
}

// RenderFooter renders the one-row prompt / flash / hint bar.
func RenderFooter(styles ui.Styles, data FooterData, width int) string {
	var content string
	switch {
	case data.Prompt != "":
		content = styles.Prompt.Render(ui.Truncate(data.Prompt, width-1))
	case data.Flash != "":
		style := styles.FlashSuccess
		if data.FlashError {
			style = styles.FlashError
		}
		content = style.Render(ui.Truncate(data.Flash, width-1))
	default:
		content = renderHints(styles, data.Hints, width-1)
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(" " + content)
}

// renderHints lays out as many "key desc" pairs as fit.
func renderHints(styles ui.Styles, hints []HelpEntry, width int) string {
	var parts []string
	used := 0
	for _, h := range hints {
		part := ui.RenderKeyValue(styles, h.Key, h.Desc)
		w := lipgloss.Width(part)
		if used > 0 {
			w += 2
		}
		if used+w > width {
			break
		}
		parts = append(parts, part)
		used += w
	}
	return strings.Join(parts, "  ")
}
