package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderInfoBox_Width(t *testing.T) {
	box := RenderInfoBox("Report", []string{" short", " " + strings.Repeat("x", 100)}, 30)
	lines := strings.Split(box, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	for i, l := range lines[:2] {
		if w := lipgloss.Width(l); w != 30 {
			t.Errorf("line %d width = %d, want 30: %q", i, w, ansi.Strip(l))
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), " Report ") {
		t.Errorf("header = %q", ansi.Strip(lines[0]))
	}
	if RenderInfoBox("x", nil, 3) != "" {
		t.Error("expected empty box for tiny width")
	}
}

func TestProgress(t *testing.T) {
	if Progress(ProgressState{}, 40) != "" {
		t.Error("inactive progress should render nothing")
	}

	out := ansi.Strip(Progress(ProgressState{
		Active:      true,
		Stage:       "extract",
		Total:       4,
		Completed:   2,
		Errors:      1,
		CurrentFile: "2024-01-03  2024-01-03_a-very-long-recording-name-that-will-not-fit.mp4",
	}, 40))

	for _, want := range []string{"50%", "2/4 days", "1 skipped", "extract", "..."} {
		if !strings.Contains(out, want) {
			t.Errorf("progress missing %q:\n%s", want, out)
		}
	}
	for i, l := range strings.Split(out, "\n") {
		if w := lipgloss.Width(l); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}
}

func TestProgress_Cancelling(t *testing.T) {
	out := ansi.Strip(Progress(ProgressState{Active: true, Stage: "extract", Total: 2, Cancelling: true}, 40))
	if !strings.Contains(out, "Cancelling") || strings.Contains(out, "extract") {
		t.Errorf("progress = \n%s", out)
	}
}
