package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/dailyreel/tui/styles"
)

// Theme returns a huh theme that matches the TUI color palette. Only the
// pieces a confirm prompt draws are restyled.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Lavender)
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Red)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.BrightPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Lavender)
	t.Blurred.Description = lipgloss.NewStyle().
		Foreground(styles.Purple)
	t.Blurred.FocusedButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)
	t.Blurred.BlurredButton = lipgloss.NewStyle().
		Background(styles.DeepPurple).
		Foreground(styles.Purple).
		Padding(0, 1)

	return t
}
