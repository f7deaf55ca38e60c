// Package diffview lays a structured diff out as terminal rows: a line
// number gutter, an origin prefix and content hard-wrapped to the pane
// width. The session uses the row count to clamp scrolling and the diff
// pane renders the same rows, so both always agree.
package diffview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wrap"

	"github.com/Akashdeep-Patra/bgs/internal/git"
)

const (
	minGutterDigits = 3
	gutterSep       = " │"
	tabWidth        = 4
)

// Row is one terminal line of a laid-out diff.
type Row struct {
	Kind   git.LineKind
	Gutter string // Right-aligned line number plus separator.
	Prefix string // "+", "-", " " or "" for header rows.
	Text   string
	// Continuation is set on the second and later rows of a wrapped line;
	// its gutter and prefix are blank.
	Continuation bool
}

// Placeholder returns the message shown in place of rows for diff kinds
// that carry no text. It returns "" for DiffText.
func Placeholder(kind git.DiffKind) string {
	switch kind {
	case git.DiffEmpty:
		return "↑/↓ navigate, Enter to view diff"
	case git.DiffClean:
		return "No changes (q to quit)"
	case git.DiffBinary:
		return "Binary file"
	case git.DiffInvalidUTF8:
		return "File contains invalid UTF-8 encoding"
	case git.DiffConflict:
		return "Conflict - resolve before viewing diff"
	default:
		return ""
	}
}

// GutterWidth is the printable width of the gutter for the given diff.
func GutterWidth(content git.DiffContent) int {
	return gutterDigits(content) + len([]rune(gutterSep))
}

func gutterDigits(content git.DiffContent) int {
	maxNo := 0
	for _, l := range content.Lines {
		if l.NewLineNo > maxNo {
			maxNo = l.NewLineNo
		}
	}
	return max(len(strconv.Itoa(maxNo)), minGutterDigits)
}

// Rows lays content out for a pane width columns wide. Non-text content
// yields no rows. A width too small to hold any text disables wrapping.
func Rows(content git.DiffContent, width int) []Row {
	if content.Kind != git.DiffText {
		return nil
	}
	digits := gutterDigits(content)
	blankGutter := strings.Repeat(" ", digits) + gutterSep

	rows := make([]Row, 0, len(content.Lines))
	for _, l := range content.Lines {
		prefix := linePrefix(l.Kind)
		gutter := blankGutter
		switch {
		case l.Kind == git.LineDeleted:
			gutter = fmt.Sprintf("%*s%s", digits, "-", gutterSep)
		case l.HasLineNo():
			gutter = fmt.Sprintf("%*d%s", digits, l.NewLineNo, gutterSep)
		}

		limit := width - digits - len([]rune(gutterSep)) - len(prefix)
		for i, part := range wrapText(l.Content, limit) {
			row := Row{Kind: l.Kind, Gutter: gutter, Prefix: prefix, Text: part}
			if i > 0 {
				row.Gutter = blankGutter
				row.Prefix = strings.Repeat(" ", len(prefix))
				row.Continuation = true
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Count returns the number of rows content occupies at width.
func Count(content git.DiffContent, width int) int {
	return len(Rows(content, width))
}

// MaxScroll is the largest useful scroll offset for a viewport of the
// given size.
func MaxScroll(content git.DiffContent, height, width int) int {
	return max(Count(content, width)-height, 0)
}

func linePrefix(kind git.LineKind) string {
	switch kind {
	case git.LineAdded:
		return "+"
	case git.LineDeleted:
		return "-"
	case git.LineContext:
		return " "
	default:
		return ""
	}
}

func wrapText(s string, limit int) []string {
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	if limit < 1 || s == "" {
		return []string{s}
	}
	w := wrap.NewWriter(limit)
	w.PreserveSpace = true
	_, _ = w.Write([]byte(s))
	return strings.Split(w.String(), "\n")
}
