package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/user/dailyreel/clip"
	"github.com/user/dailyreel/config"
	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/deps"
	"github.com/user/dailyreel/media"
)

// Driver runs one compilation. Config is passed in explicitly; the driver
// keeps no package-level state.
type Driver struct {
	Config   *config.Config
	Runner   media.Runner
	Tools    *media.Toolkit
	Picker   corpus.Picker
	Observer Observer
	Log      zerolog.Logger

	// TempDir is the parent of the per-run workspace; empty means os.TempDir.
	TempDir string
	Now     func() time.Time
}

// New wires a driver from cfg. The picker follows cfg.Selection.
func New(cfg *config.Config, r media.Runner, log zerolog.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	picker, err := corpus.NewPicker(cfg.Selection.Policy, cfg.Selection.Seed)
	if err != nil {
		return nil, err
	}
	// Record the seed actually drawn so reports and history can replay it.
	if rp, ok := picker.(*corpus.RandomPicker); ok {
		cfg.Selection.Seed = rp.Seed
	}

	tools := media.NewToolkit(r, log)
	tools.FFmpeg = cfg.Tools.FFmpeg
	tools.FFprobe = cfg.Tools.FFprobe
	tools.Profile = cfg.Profile()
	tools.MinDuration = cfg.Clip.MinDuration

	return &Driver{
		Config:   cfg,
		Runner:   r,
		Tools:    tools,
		Picker:   picker,
		Observer: NopObserver{},
		Log:      log,
	}, nil
}

func (d *Driver) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Driver) observer() Observer {
	if d.Observer == nil {
		return NopObserver{}
	}
	return d.Observer
}

// Plan scans the source directory, groups by day, selects one recording per
// day and sorts the selections by date. It runs no external tools.
func (d *Driver) Plan() (*Plan, error) {
	return d.plan(NopObserver{})
}

func (d *Driver) plan(obs Observer) (*Plan, error) {
	cfg := d.Config

	obs.OnStage(StageScan)
	files, err := corpus.Scan(cfg.SourceDir, cfg.Extension)
	if err != nil {
		return nil, fatal(StageScan, err)
	}
	p := &Plan{SourceDir: cfg.SourceDir, Files: files}
	for _, f := range files {
		if !f.HasDate() {
			p.Undated++
		}
	}

	obs.OnStage(StageGroup)
	p.Buckets = corpus.GroupByDay(files)

	obs.OnStage(StageSelect)
	sel := &corpus.Selector{Picker: d.Picker}
	p.Selections = sel.Select(p.Buckets)

	obs.OnStage(StageSort)
	corpus.SortSelections(p.Selections)

	obs.OnPlan(p)
	return p, nil
}

// Run executes the whole pipeline. The returned report is never nil.
func (d *Driver) Run(ctx context.Context) (rep *Report, err error) {
	cfg := d.Config
	obs := d.observer()
	rep = &Report{
		RunID:        uuid.NewString(),
		Output:       cfg.Output,
		ClipDuration: cfg.Clip.Duration,
		Started:      d.now(),
	}
	defer func() {
		rep.Elapsed = d.now().Sub(rep.Started)
		obs.OnFinish(rep, err)
	}()

	obs.OnStage(StagePreflight)
	versions, err := deps.Preflight(ctx, d.Runner, deps.MediaTools(cfg.Tools.FFmpeg, cfg.Tools.FFprobe))
	if err != nil {
		return rep, fatal(StagePreflight, err)
	}
	for name, v := range versions {
		d.Log.Debug().Str("tool", name).Str("version", v).Msg("preflight ok")
	}

	plan, err := d.plan(obs)
	if err != nil {
		return rep, err
	}
	rep.Files = len(plan.Files)
	rep.Days = len(plan.Selections)
	if len(plan.Selections) == 0 {
		return rep, terminal(StageSelect, ErrNoClips)
	}

	work, err := os.MkdirTemp(d.TempDir, "dailyreel-*")
	if err != nil {
		return rep, fatal(StageExtract, fmt.Errorf("create workspace: %w", err))
	}
	defer os.RemoveAll(work)

	obs.OnStage(StageExtract)
	proc := &clip.Processor{
		Tools:    d.Tools,
		WorkDir:  work,
		Duration: cfg.Clip.Duration,
		Start:    cfg.Clip.Start,
	}
	total := len(plan.Selections)
	for i, sel := range plan.Selections {
		if err := ctx.Err(); err != nil {
			return rep, terminal(StageExtract, err)
		}
		obs.OnClipStart(i, total, sel)
		c, perr := proc.Process(ctx, i, sel)
		obs.OnClipDone(i, total, c, perr)
		if perr != nil {
			rep.Skipped = append(rep.Skipped, d.skip(sel, perr))
			continue
		}
		rep.Clips = append(rep.Clips, c)
	}

	if len(rep.Clips) == 0 {
		return rep, terminal(StageExtract, ErrNoClips)
	}

	obs.OnStage(StageConcat)
	// Only validated segments may reach the join.
	paths := make([]string, 0, len(rep.Clips))
	for _, c := range rep.Clips {
		if c.Valid() {
			paths = append(paths, c.Path)
		}
	}
	if err := d.Tools.Concat(ctx, media.ConcatRequest{Clips: paths, Output: cfg.Output, WorkDir: work}); err != nil {
		d.logToolError(err, "concatenation failed")
		return rep, terminal(StageConcat, err)
	}

	obs.OnStage(StageReport)
	if info, err := os.Stat(cfg.Output); err == nil {
		rep.OutputSize = info.Size()
	}
	return rep, nil
}

// skip logs a rejected day and turns it into a report entry.
func (d *Driver) skip(sel corpus.Selection, err error) Skip {
	s := Skip{
		Date:   sel.Date,
		Source: sel.File.Path,
		Reason: err.Error(),
	}
	var ce *clip.Error
	if errors.As(err, &ce) {
		s.Stage = ce.Stage
	}
	var te *media.ToolError
	if errors.As(err, &te) {
		s.Stderr = te.Stderr
	}

	ev := d.Log.Warn().
		Str("date", sel.Date.Format(corpus.DateLayout)).
		Str("source", sel.File.Name).
		Str("stage", s.Stage).
		Err(err)
	if s.Stderr != "" {
		ev = ev.Str("stderr", s.Stderr)
	}
	ev.Msg("skipping day")
	return s
}

func (d *Driver) logToolError(err error, msg string) {
	ev := d.Log.Error().Err(err)
	var te *media.ToolError
	if errors.As(err, &te) && te.Stderr != "" {
		ev = ev.Str("stderr", te.Stderr)
	}
	ev.Msg(msg)
}
