package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/dailyreel/tui/styles"
)

// ProgressState holds the state for the compile progress display.
type ProgressState struct {
	Active      bool
	Stage       string
	Total       int
	Completed   int
	Errors      int
	CurrentFile string
	Cancelling  bool
}

// Progress renders a bordered info box showing compile progress.
// It displays a progress bar, percentage, day counter, the current stage and
// source file, and the number of skipped days.
func Progress(state ProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	// Inner width for content (box border = 2, plus 1 space padding each side)
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var lines []string

	// Bar width: innerW minus " XXX%" label (5 chars) minus 1 space padding
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	pct, filled := 0, 0
	if state.Total > 0 {
		pct = state.Completed * 100 / state.Total
		filled = barWidth * state.Completed / state.Total
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))
	lines = append(lines, " "+bar+textStyle.Render(fmt.Sprintf(" %3d%%", pct)))

	counter := fmt.Sprintf(" %d/%d days", state.Completed, state.Total)
	if state.Errors > 0 {
		counter = textStyle.Render(counter) + "  " + redStyle.Render(fmt.Sprintf("%d skipped", state.Errors))
	} else {
		counter = textStyle.Render(counter)
	}
	lines = append(lines, counter)

	switch {
	case state.Cancelling:
		lines = append(lines, " "+redStyle.Render("Cancelling..."))
	case state.Stage != "":
		lines = append(lines, " "+dimStyle.Render(state.Stage))
	}

	if state.CurrentFile != "" && state.Completed < state.Total {
		maxFileW := innerW - 2
		file := state.CurrentFile
		if lipgloss.Width(file) > maxFileW {
			file = ansi.Truncate(file, maxFileW-3, "...")
		}
		lines = append(lines, " "+textStyle.Render(file))
	}

	return RenderInfoBox("Compile", lines, width)
}
