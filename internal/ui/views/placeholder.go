package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/bgs/internal/ui"
)

// RenderTooSmall fills the screen with the undersized-terminal warning.
func RenderTooSmall(styles ui.Styles, width, height int) string {
	msg := lipgloss.NewStyle().Foreground(styles.Theme.Warning).Bold(true).Render("Terminal too small")
	need := styles.Muted.Render(fmt.Sprintf("need %d×%d, have %d×%d", ui.MinWidth, ui.MinHeight, width, height))
	return ui.PlaceCentre(width, height, lipgloss.JoinVertical(lipgloss.Center, msg, need))
}
