package views

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	devicons "github.com/epilande/go-devicons"

	"github.com/Akashdeep-Patra/bgs/internal/git"
	"github.com/Akashdeep-Patra/bgs/internal/session"
	"github.com/Akashdeep-Patra/bgs/internal/ui"
)

const maxIndent = 4

// FileListOptions tunes the file list rendering.
type FileListOptions struct {
	Icons bool
}

// RenderFileList draws the bordered file list: a [STAGED] and an
// [UNSTAGED] section, each with a header row, scrolled to the session's
// list offset. width and height include the border.
func RenderFileList(styles ui.Styles, s *session.Session, opts FileListOptions, width, height int) string {
	inner := width - 2
	innerH := max(height-2, 0)

	all := fileListLines(styles, s, opts, inner)
	start := min(s.ListScroll(), len(all))
	end := min(start+innerH, len(all))

	st := s.Status()
	title := fmt.Sprintf("Files (%d)", len(st.Staged)+len(st.Unstaged))
	hint := ""
	if n := len(s.MultiSelected()); n > 0 {
		hint = fmt.Sprintf("%d selected", n)
	}
	return framePane(styles, title, hint, all[start:end], width, height)
}

// fileListLines renders every visual row of the list, headers included.
func fileListLines(styles ui.Styles, s *session.Session, opts FileListOptions, width int) []string {
	st := s.Status()
	hl, hasHL := s.HighlightedKey()
	sel, hasSel := s.Selected()

	var lines []string
	section := func(header string, sec git.Section, entries []git.FileEntry) {
		if len(entries) == 0 {
			return
		}
		lines = append(lines, styles.SectionHeader.Render(header))
		for _, e := range entries {
			k := session.Key{Section: sec, Path: e.Path}
			lines = append(lines, renderFileRow(styles, e, fileRowState{
				highlighted: hasHL && hl == k,
				selected:    hasSel && sel == k,
				marked:      s.IsMultiSelected(k),
			}, opts, width))
		}
	}
	section("[STAGED]", git.Staged, st.Staged)
	section("[UNSTAGED]", git.Unstaged, st.Unstaged)
	return lines
}

type fileRowState struct {
	highlighted bool // Keyboard cursor.
	selected    bool // Diff shown in the diff pane.
	marked      bool // Member of the multi-select set.
}

// renderFileRow lays out one file row:
//
//	>● M   src/main.go +3/-1
//
// cursor, mark, status symbol, indentation by directory depth, path and
// line counts. When the row is too narrow the counts go first, then the
// head of the path, then everything but the file name.
func renderFileRow(styles ui.Styles, e git.FileEntry, st fileRowState, opts FileListOptions, width int) string {
	cursor, mark := " ", " "
	if st.highlighted {
		cursor = ">"
	}
	if st.marked {
		mark = styles.Marker.Render("●")
	}

	icon := ""
	if opts.Icons {
		icon = fileIcon(e.Path)
	}
	indent := strings.Repeat("  ", min(strings.Count(e.Path, "/"), maxIndent))
	counts := formatCounts(e)

	fixed := 3 + lipgloss.Width(icon) + 2 + len(indent)
	display, showCounts := fitPath(e.Path, counts, width-fixed)

	pathStyle := lipgloss.NewStyle().Foreground(styles.Theme.Text)
	if st.highlighted {
		pathStyle = pathStyle.Bold(true)
	}
	row := cursor + mark + " " + icon +
		styles.FileStatus(e.Status).Render(e.Status.Symbol()) + " " +
		indent + pathStyle.Render(display)
	if showCounts && counts != "" {
		row += styles.Counts.Render(" " + counts)
	}
	if st.selected {
		row = styles.ListSelected.Render(ui.PadRight(row, width))
	}
	return row
}

// formatCounts renders "+a/-d", "-/-" for binary files and "" when the
// counts are unknown.
func formatCounts(e git.FileEntry) string {
	if e.IsBinary {
		return "-/-"
	}
	if a, d, ok := e.Counts(); ok {
		return fmt.Sprintf("+%d/-%d", a, d)
	}
	return ""
}

// fitPath shortens p to avail cells and reports whether the counts still
// fit after it.
func fitPath(p, counts string, avail int) (string, bool) {
	countsW := 0
	if counts != "" {
		countsW = len(counts) + 1
	}
	pathW := lipgloss.Width(p)
	switch {
	case pathW+countsW <= avail:
		return p, true
	case pathW <= avail:
		return p, false
	}

	name := path.Base(p)
	nameW := lipgloss.Width(name)
	switch {
	case nameW < avail:
		return ui.TruncateLeft(p, avail), false
	case nameW <= avail:
		return name, false
	case avail > 0:
		return ui.Truncate(name, avail), false
	}
	return "", false
}

// iconFileInfo satisfies os.FileInfo for devicons lookups by name.
type iconFileInfo struct{ name string }

func (i iconFileInfo) Name() string       { return i.name }
func (i iconFileInfo) Size() int64        { return 0 }
func (i iconFileInfo) Mode() os.FileMode  { return 0 }
func (i iconFileInfo) ModTime() time.Time { return time.Time{} }
func (i iconFileInfo) IsDir() bool        { return false }
func (i iconFileInfo) Sys() any           { return nil }

func fileIcon(p string) string {
	style := devicons.IconForInfo(iconFileInfo{name: path.Base(p)})
	if style.Icon == "" {
		return ""
	}
	icon := style.Icon
	if style.Color != "" {
		icon = lipgloss.NewStyle().Foreground(lipgloss.Color(style.Color)).Render(icon)
	}
	return icon + " "
}
