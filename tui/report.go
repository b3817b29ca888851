package tui

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/pipeline"
	"github.com/user/dailyreel/pkg/timeutil"
	"github.com/user/dailyreel/tui/components"
	"github.com/user/dailyreel/tui/styles"
)

// ReportWidth is the box width used when the terminal size is unknown.
const ReportWidth = 72

// RenderReport renders the end-of-run summary box. runErr, when set, is shown
// in place of the output line.
func RenderReport(rep *pipeline.Report, runErr error, width int) string {
	if width <= 0 {
		width = ReportWidth
	}
	label := func(s string) string { return styles.SecondaryText.Render(fmt.Sprintf(" %-10s", s)) }

	var lines []string
	if runErr != nil {
		lines = append(lines, label("status")+styles.Warning.Render(statusText(runErr)))
	} else {
		lines = append(lines,
			label("status")+styles.Success.Render("ok"),
			label("output")+styles.Accent.Render(rep.Output)+
				styles.SecondaryText.Render(" ("+humanize.Bytes(uint64(rep.OutputSize))+")"),
		)
	}
	lines = append(lines,
		label("clips")+styles.PrimaryText.Render(fmt.Sprintf("%d of %d days", len(rep.Clips), rep.Days)),
		label("span")+styles.PrimaryText.Render(span(rep)),
		label("length")+styles.PrimaryText.Render("~"+timeutil.FormatTime(rep.EstimatedDuration())),
		label("elapsed")+styles.PrimaryText.Render(timeutil.FormatElapsed(rep.Elapsed)),
	)

	if len(rep.Skipped) > 0 {
		lines = append(lines, "", " "+styles.Warning.Render(fmt.Sprintf("%d skipped", len(rep.Skipped))))
		for _, s := range rep.Skipped {
			lines = append(lines, " "+styles.Accent.Render(s.Date.Format(corpus.DateLayout))+
				styles.SecondaryText.Render(fmt.Sprintf("  %-8s ", s.Stage))+
				styles.PrimaryText.Render(s.Reason))
		}
	}

	return components.RenderInfoBox("Report "+shortID(rep.RunID), lines, width)
}

// span is the first and last day in the reel.
func span(rep *pipeline.Report) string {
	dates := rep.Dates()
	if len(dates) == 0 {
		return "-"
	}
	return dates[0].Format(corpus.DateLayout) + " to " + dates[len(dates)-1].Format(corpus.DateLayout)
}

func statusText(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrFatalSetup):
		return "setup failed"
	case errors.Is(err, pipeline.ErrNoClips):
		return "no clips"
	default:
		return "failed"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
