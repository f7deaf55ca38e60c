package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/ui"
)

// StatusBarData carries the info displayed in the top status bar.
type StatusBarData struct {
	Branch    string
	Staged    int
	Unstaged  int
	Untracked int
	Polling   bool
	RepoRoot  string
}

// RenderStatusBar renders the one-row branch and count summary.
//
// Wide (>= 60):   main  S:1 U:2 ?:0                    poll  bgs
// Narrow (< 60):  main  S:1 U:2 ?:0
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	branchStyle := lipgloss.NewStyle().Foreground(t.Header).Bold(true)
	left := " " + branchStyle.Render(data.Branch) + " " + strings.Join([]string{
		styles.FileAdded.Render(fmt.Sprintf("S:%d", data.Staged)),
		styles.FileModified.Render(fmt.Sprintf("U:%d", data.Unstaged)),
		styles.FileUntracked.Render(fmt.Sprintf("?:%d", data.Untracked)),
	}, " ")

	var right string
	if width >= 60 {
		var parts []string
		if data.Polling {
			parts = append(parts, styles.Muted.Render("poll"))
		}
		if data.RepoRoot != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(t.TextSubtle).Render(filepath.Base(data.RepoRoot)))
		}
		if len(parts) > 0 {
			right = strings.Join(parts, "  ") + " "
		}
	}

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW
	if gap < 0 {
		gap = 1
		right = ""
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).MaxHeight(1).Render(content)
}
