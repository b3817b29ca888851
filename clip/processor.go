package clip

import (
	"context"
	"fmt"
	"os"

	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/media"
)

// Stage names reported in errors and progress.
const (
	StageExtract  = "extract"
	StageValidate = "validate"
)

// Tools is the subset of media.Toolkit the processor needs.
type Tools interface {
	Extract(ctx context.Context, req media.ExtractRequest) (float64, error)
	Validate(ctx context.Context, path string) (*media.ProbeResult, error)
}

// Processor extracts and validates one selection at a time.
type Processor struct {
	Tools    Tools
	WorkDir  string
	Duration float64
	Start    float64
}

// Error reports which stage rejected a day.
type Error struct {
	Stage string
	Clip  *Clip
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Clip.Date.Format(corpus.DateLayout), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Process handles the full lifecycle of a single day's segment: cut it from
// the selected recording, then probe it. The returned clip always carries
// its final status; on failure the error is a *Error and the segment file
// has been removed.
func (p *Processor) Process(ctx context.Context, index int, sel corpus.Selection) (*Clip, error) {
	c := &Clip{
		Path:   ClipPath(p.WorkDir, index, sel.Date),
		Date:   sel.Date,
		Index:  index,
		Source: sel.File,
	}

	dur, err := p.Tools.Extract(ctx, media.ExtractRequest{
		Source:   sel.File.Path,
		Dest:     c.Path,
		Duration: p.Duration,
		Start:    p.Start,
	})
	if err != nil {
		c.Status = StatusInvalid
		return c, &Error{Stage: StageExtract, Clip: c, Err: err}
	}
	c.Duration = dur

	pr, err := p.Tools.Validate(ctx, c.Path)
	if err != nil {
		c.Status = StatusInvalid
		_ = os.Remove(c.Path)
		return c, &Error{Stage: StageValidate, Clip: c, Err: err}
	}
	if pr != nil && pr.DurationKnown {
		c.Duration = pr.Duration
	}

	c.Status = StatusValid
	return c, nil
}
