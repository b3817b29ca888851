package db

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/user/dailyreel/config"
	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/pipeline"
)

// Recorder is a pipeline.Observer that writes each finished run to the
// history database. Recording is best-effort: failures are logged and never
// affect the run.
type Recorder struct {
	pipeline.NopObserver

	DB     *sql.DB
	Config *config.Config
	Log    zerolog.Logger
}

func (r *Recorder) OnFinish(rep *pipeline.Report, runErr error) {
	run, clips := RunFromReport(r.Config, rep, runErr)
	if err := InsertRun(r.DB, run, clips); err != nil {
		r.Log.Warn().Err(err).Msg("could not record run history")
	}
}

// RunFromReport flattens a report into history rows.
func RunFromReport(cfg *config.Config, rep *pipeline.Report, runErr error) (Run, []RunClip) {
	run := Run{
		ID:           rep.RunID,
		StartedAt:    rep.Started,
		FinishedAt:   rep.Started.Add(rep.Elapsed),
		SourceDir:    cfg.SourceDir,
		OutputPath:   rep.Output,
		Policy:       cfg.Selection.Policy,
		Seed:         cfg.Selection.Seed,
		ClipDuration: rep.ClipDuration,
		Status:       RunStatusOK,
		ClipCount:    len(rep.Clips),
		SkippedCount: len(rep.Skipped),
		OutputSize:   rep.OutputSize,
	}
	if runErr != nil {
		run.Status = RunStatusFailed
		run.Error = runErr.Error()
		run.OutputSize = 0
	}

	clips := make([]RunClip, 0, len(rep.Clips)+len(rep.Skipped))
	for _, c := range rep.Clips {
		clips = append(clips, RunClip{
			Day:        c.Date.Format(corpus.DateLayout),
			SourcePath: c.Source.Path,
			Status:     c.Status.String(),
		})
	}
	for _, s := range rep.Skipped {
		clips = append(clips, RunClip{
			Day:        s.Date.Format(corpus.DateLayout),
			SourcePath: s.Source,
			Status:     "skipped",
			Stage:      s.Stage,
			Reason:     s.Reason,
		})
	}
	return run, clips
}
