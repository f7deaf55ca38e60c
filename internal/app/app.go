// Package app is the bubbletea model of bgs. It routes keys, mouse events
// and loop ticks to the session and draws the screen from session state.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/common"
	"github.com/Akashdeep-Patra/bgs/internal/config"
	"github.com/Akashdeep-Patra/bgs/internal/log"
	"github.com/Akashdeep-Patra/bgs/internal/reconcile"
	"github.com/Akashdeep-Patra/bgs/internal/session"
	"github.com/Akashdeep-Patra/bgs/internal/ui"
	"github.com/Akashdeep-Patra/bgs/internal/ui/components"
	"github.com/Akashdeep-Patra/bgs/internal/ui/views"
)

// wheelStep is how many rows one mouse wheel notch moves.
const wheelStep = 3

// Model is the top-level Bubbletea model.
type Model struct {
	sess     *session.Session
	loop     *reconcile.Loop
	cfg      *config.Config
	styles   ui.Styles
	keys     KeyMap
	repoRoot string

	width    int
	height   int
	layout   ui.Layout
	showHelp bool
}

// New creates the application model. cfg may be nil for defaults.
func New(sess *session.Session, loop *reconcile.Loop, cfg *config.Config, repoRoot string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	return Model{
		sess:     sess,
		loop:     loop,
		cfg:      cfg,
		styles:   ui.DefaultStyles(),
		keys:     NewKeyMap(cfg.Keys),
		repoRoot: repoRoot,
	}
}

// Init schedules the first loop tick.
func (m Model) Init() tea.Cmd {
	return common.CmdTick(m.loop.Timeout())
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.cfg.Mouse {
			return m, nil
		}
		return m.handleMouse(msg)

	case common.TickMsg:
		now := time.Time(msg)
		if m.loop.Tick(now) {
			m.refresh(now)
		}
		m.sess.CheckFlashExpiry(now)
		m.relayout()
		return m, common.CmdTick(m.loop.Timeout())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending prompt takes every key: confirm or anything else to deny.
	if m.sess.Prompt() != nil {
		m.report(m.sess.HandleConfirm(key.Matches(msg, m.keys.Confirm)))
		m.relayout()
		return m, nil
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.showHelp = false
		}
		return m, nil
	}

	m.sess.ClearFlash()
	diffH, diffW := m.diffSize()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if !m.sess.HasMultiSelect() {
			return m, tea.Quit
		}
		m.sess.ClearMultiSelect()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.sess.MoveHighlight(-1)
	case key.Matches(msg, m.keys.Down):
		m.sess.MoveHighlight(1)
	case key.Matches(msg, m.keys.Top):
		m.sess.Jump(true)
	case key.Matches(msg, m.keys.Bottom):
		m.sess.Jump(false)
	case key.Matches(msg, m.keys.ToggleSelect):
		m.sess.ToggleMultiSelect()
	case key.Matches(msg, m.keys.Select):
		m.sess.SelectCurrent()
	case key.Matches(msg, m.keys.Stage):
		m.report(m.sess.StageSelected())
	case key.Matches(msg, m.keys.Unstage):
		m.report(m.sess.UnstageSelected())
	case key.Matches(msg, m.keys.StageAll):
		m.sess.ShowStageAllConfirm()
	case key.Matches(msg, m.keys.UnstageAll):
		m.sess.ShowUnstageAllConfirm()
	case key.Matches(msg, m.keys.Discard):
		m.sess.ShowDiscardSelectedConfirm()
	case key.Matches(msg, m.keys.DiscardAll):
		m.sess.ShowDiscardAllConfirm()
	case key.Matches(msg, m.keys.PageDown):
		m.sess.PageDiff(true, diffH, diffW)
	case key.Matches(msg, m.keys.PageUp):
		m.sess.PageDiff(false, diffH, diffW)
	case key.Matches(msg, m.keys.Undo):
		m.report(m.sess.Undo())
	case key.Matches(msg, m.keys.Refresh):
		m.refresh(time.Now())
	}

	m.relayout()
	return m, nil
}

// handleMouse scrolls the pane under the pointer and selects clicked rows.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.layout.TooSmall || m.showHelp || m.sess.Prompt() != nil {
		return m, nil
	}
	list, diff := m.layout.FileList, m.layout.Diff
	diffH, diffW := m.diffSize()

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		step := wheelStep
		if msg.Button == tea.MouseButtonWheelUp {
			step = -step
		}
		switch {
		case list.Contains(msg.X, msg.Y):
			m.sess.MoveHighlight(step)
		case diff.Contains(msg.X, msg.Y):
			m.sess.ScrollDiff(step, diffH, diffW)
		}

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		if inner := list.Inner(); inner.Contains(msg.X, msg.Y) {
			m.sess.ClearFlash()
			m.sess.ClickRow(msg.Y - inner.Y)
		}
	}

	m.relayout()
	return m, nil
}

// refresh reloads the session. Failures keep the previous state on screen.
func (m Model) refresh(now time.Time) {
	if err := m.sess.Refresh(); err != nil {
		log.Error("refresh failed", "err", err)
		m.sess.FlashError("Error: " + err.Error())
	}
	m.loop.MarkRefreshed(now)
}

// report surfaces a failed session operation.
func (m Model) report(err error) {
	if err == nil {
		return
	}
	log.Error("operation failed", "err", err)
	m.sess.FlashError("Error: " + err.Error())
}

// relayout recomputes pane rectangles from the current file counts and
// feeds the resulting sizes back into the session's scroll clamps.
func (m *Model) relayout() {
	st := m.sess.Status()
	m.layout = ui.ComputeLayout(m.width, m.height, len(st.Staged), len(st.Unstaged))
	if m.layout.TooSmall {
		return
	}
	m.sess.SetListHeight(m.layout.FileList.Inner().H)
	diffH, diffW := m.diffSize()
	m.sess.ScrollDiff(0, diffH, diffW)
}

// diffSize is the visible row count and wrap width of the diff pane.
func (m Model) diffSize() (height, width int) {
	return views.DiffTextHeight(m.layout.Diff.H), views.DiffTextWidth(m.layout.Diff.W)
}

// View renders the entire UI from session state without I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.layout.TooSmall {
		return views.RenderTooSmall(m.styles, m.width, m.height)
	}
	if m.showHelp {
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", m.keys.HelpSections(), m.width, m.height)
	}

	st := m.sess.Status()
	statusBar := components.RenderStatusBar(m.styles, components.StatusBarData{
		Branch:    m.sess.Branch().String(),
		Staged:    st.StagedCount,
		Unstaged:  st.UnstagedCount,
		Untracked: st.UntrackedCount,
		Polling:   m.loop.Polling(),
		RepoRoot:  m.repoRoot,
	}, m.width)

	fileList := views.RenderFileList(m.styles, m.sess,
		views.FileListOptions{Icons: m.cfg.Icons},
		m.layout.FileList.W, m.layout.FileList.H)

	pane := views.DiffPaneData{Content: m.sess.Diff(), Scroll: m.sess.DiffScroll()}
	if k, ok := m.sess.Selected(); ok {
		pane.Path = k.Path
	}
	diff := views.RenderDiffPane(m.styles, pane, m.layout.Diff.W, m.layout.Diff.H)

	footer := components.FooterData{Hints: m.keys.ShortHelp()}
	if p := m.sess.Prompt(); p != nil {
		footer.Prompt = p.Message
	} else if f := m.sess.Flash(); f != nil {
		footer.Flash = f.Text
		footer.FlashError = f.IsError
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		fileList,
		diff,
		components.RenderFooter(m.styles, footer, m.width),
	)
}
