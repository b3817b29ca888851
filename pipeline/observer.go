package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/user/dailyreel/clip"
	"github.com/user/dailyreel/corpus"
)

// Stage names a step of the run.
type Stage string

const (
	StagePreflight Stage = "preflight"
	StageScan      Stage = "scan"
	StageGroup     Stage = "group"
	StageSelect    Stage = "select"
	StageSort      Stage = "sort"
	StageExtract   Stage = "extract"
	StageConcat    Stage = "concat"
	StageReport    Stage = "report"
)

// Observer receives progress events. The driver only emits events and never
// writes to stdout itself, so the CLI decides between a live view, log lines
// or nothing. Events arrive from the driver's goroutine, in order.
type Observer interface {
	OnStage(stage Stage)
	OnPlan(plan *Plan)
	OnClipStart(index, total int, sel corpus.Selection)
	OnClipDone(index, total int, c *clip.Clip, err error)
	OnFinish(rep *Report, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnStage(Stage)                          {}
func (NopObserver) OnPlan(*Plan)                           {}
func (NopObserver) OnClipStart(int, int, corpus.Selection) {}
func (NopObserver) OnClipDone(int, int, *clip.Clip, error) {}
func (NopObserver) OnFinish(*Report, error)                {}

// Observers fans every event out to each observer in order.
type Observers []Observer

func (all Observers) OnStage(stage Stage) {
	for _, o := range all {
		o.OnStage(stage)
	}
}

func (all Observers) OnPlan(plan *Plan) {
	for _, o := range all {
		o.OnPlan(plan)
	}
}

func (all Observers) OnClipStart(index, total int, sel corpus.Selection) {
	for _, o := range all {
		o.OnClipStart(index, total, sel)
	}
}

func (all Observers) OnClipDone(index, total int, c *clip.Clip, err error) {
	for _, o := range all {
		o.OnClipDone(index, total, c, err)
	}
}

func (all Observers) OnFinish(rep *Report, err error) {
	for _, o := range all {
		o.OnFinish(rep, err)
	}
}

// LogObserver reports progress as log lines, for non-interactive runs.
type LogObserver struct {
	Log zerolog.Logger
}

func (l LogObserver) OnStage(stage Stage) {
	l.Log.Debug().Str("stage", string(stage)).Msg("stage")
}

func (l LogObserver) OnPlan(plan *Plan) {
	l.Log.Info().
		Int("files", len(plan.Files)).
		Int("undated", plan.Undated).
		Int("days", len(plan.Selections)).
		Msg("selected one recording per day")
}

func (l LogObserver) OnClipStart(index, total int, sel corpus.Selection) {
	l.Log.Info().
		Str("date", sel.Date.Format(corpus.DateLayout)).
		Str("source", sel.File.Name).
		Msgf("processing %d/%d", index+1, total)
}

func (l LogObserver) OnClipDone(index, total int, c *clip.Clip, err error) {
	if err != nil {
		return
	}
	l.Log.Info().
		Str("date", c.Date.Format(corpus.DateLayout)).
		Float64("duration", c.Duration).
		Msgf("clip %d/%d ok", index+1, total)
}

func (l LogObserver) OnFinish(rep *Report, err error) {
	if err != nil {
		l.Log.Error().Err(err).Msg("compilation failed")
		return
	}
	l.Log.Info().
		Int("clips", len(rep.Clips)).
		Int("skipped", len(rep.Skipped)).
		Str("output", rep.Output).
		Msg("compilation complete")
}
