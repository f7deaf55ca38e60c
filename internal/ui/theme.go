package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/git"
)

// Theme holds all colours for the application.
// Catppuccin Mocha, dark only.
type Theme struct {
	Surface      lipgloss.Color
	SurfaceHover lipgloss.Color
	Border       lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Header    lipgloss.Color

	Added     lipgloss.Color
	Modified  lipgloss.Color
	Deleted   lipgloss.Color
	Renamed   lipgloss.Color
	Conflict  lipgloss.Color
	Untracked lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Surface:      lipgloss.Color("#282840"),
		SurfaceHover: lipgloss.Color("#313152"),
		Border:       lipgloss.Color("#3b3b5c"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),
		Header:    lipgloss.Color("#89dceb"),

		Added:     lipgloss.Color("#a6e3a1"),
		Modified:  lipgloss.Color("#f9e2af"),
		Deleted:   lipgloss.Color("#f38ba8"),
		Renamed:   lipgloss.Color("#89b4fa"),
		Conflict:  lipgloss.Color("#cba6f7"),
		Untracked: lipgloss.Color("#9399b2"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
	}
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar  lipgloss.Style
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	// File list
	SectionHeader lipgloss.Style
	ListSelected  lipgloss.Style
	Marker        lipgloss.Style
	Counts        lipgloss.Style
	Muted         lipgloss.Style

	// Git file statuses
	FileAdded     lipgloss.Style
	FileModified  lipgloss.Style
	FileDeleted   lipgloss.Style
	FileRenamed   lipgloss.Style
	FileConflict  lipgloss.Style
	FileUntracked lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHeader     lipgloss.Style
	DiffHunkHeader lipgloss.Style
	DiffGutter     lipgloss.Style
	Placeholder    lipgloss.Style

	// Bottom bar
	Prompt       lipgloss.Style
	FlashSuccess lipgloss.Style
	FlashError   lipgloss.Style
	KeyBind      lipgloss.Style
	KeyDesc      lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	s.PanelTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)

	s.SectionHeader = lipgloss.NewStyle().Foreground(t.Header).Bold(true)
	s.ListSelected = lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true)
	s.Marker = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	s.Counts = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.FileAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.FileModified = lipgloss.NewStyle().Foreground(t.Modified)
	s.FileDeleted = lipgloss.NewStyle().Foreground(t.Deleted)
	s.FileRenamed = lipgloss.NewStyle().Foreground(t.Renamed)
	s.FileConflict = lipgloss.NewStyle().Foreground(t.Conflict).Bold(true)
	s.FileUntracked = lipgloss.NewStyle().Foreground(t.Untracked)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.Text)
	s.DiffHeader = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)
	s.DiffGutter = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.Placeholder = lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true)

	s.Prompt = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	s.FlashSuccess = lipgloss.NewStyle().Foreground(t.Success)
	s.FlashError = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

// FileStatus returns the style for a file status symbol.
func (s Styles) FileStatus(st git.FileStatus) lipgloss.Style {
	switch st {
	case git.StatusAdded:
		return s.FileAdded
	case git.StatusModified:
		return s.FileModified
	case git.StatusDeleted:
		return s.FileDeleted
	case git.StatusRenamed:
		return s.FileRenamed
	case git.StatusConflict:
		return s.FileConflict
	default:
		return s.FileUntracked
	}
}

// DiffLine returns the style for a diff row of the given kind.
func (s Styles) DiffLine(k git.LineKind) lipgloss.Style {
	switch k {
	case git.LineAdded:
		return s.DiffAdded
	case git.LineDeleted:
		return s.DiffRemoved
	case git.LineHeader:
		return s.DiffHeader
	case git.LineHunk:
		return s.DiffHunkHeader
	default:
		return s.DiffContext
	}
}
