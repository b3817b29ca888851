package media

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
)

// DefaultClipDuration is the target segment length in seconds.
const DefaultClipDuration = 1.4

// ExtractRequest describes one segment to cut.
type ExtractRequest struct {
	Source   string
	Dest     string
	Duration float64
	Start    float64
}

// Extract cuts a normalized segment of req.Duration seconds starting at
// req.Start. The duration is clamped to what the source actually contains;
// if the source cannot be probed the requested duration is used as is. It
// returns the duration actually requested from ffmpeg. On failure any
// partial output is removed and the returned error wraps a *ToolError
// carrying ffmpeg's stderr.
func (t *Toolkit) Extract(ctx context.Context, req ExtractRequest) (float64, error) {
	if !(req.Duration > 0) || math.IsInf(req.Duration, 0) {
		return 0, fmt.Errorf("extract %q: duration must be positive, got %g", req.Source, req.Duration)
	}
	if !(req.Start >= 0) || math.IsInf(req.Start, 0) {
		return 0, fmt.Errorf("extract %q: start must be a finite offset >= 0, got %g", req.Source, req.Start)
	}

	dur := req.Duration
	if total, err := t.Duration(ctx, req.Source); err != nil {
		t.Log.Warn().Err(err).Str("source", req.Source).Msg("could not probe source duration, using requested duration")
	} else {
		dur = clampDuration(req.Start, req.Duration, total)
		if !(dur > 0) {
			return 0, fmt.Errorf("extract %q: start %gs is past the end of a %gs source", req.Source, req.Start, total)
		}
	}

	args := t.extractArgs(req, dur)
	t.Log.Debug().Strs("args", args).Msg("ffmpeg extract")

	if _, err := run(ctx, t.Runner, t.ffmpeg(), args...); err != nil {
		_ = os.Remove(req.Dest)
		return 0, fmt.Errorf("extract %q: %w", req.Source, err)
	}
	return dur, nil
}

func (t *Toolkit) extractArgs(req ExtractRequest, dur float64) []string {
	p := t.Profile
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", req.Source,
		"-ss", formatSeconds(req.Start),
		"-t", formatSeconds(dur),
		"-vf", p.videoFilter(),
	}
	args = append(args, p.videoArgs(p.CRF)...)
	args = append(args, p.audioArgs()...)
	args = append(args, syncArgs()...)
	args = append(args, "-shortest", "-y", req.Dest)
	return args
}

// clampDuration limits want so that start+want does not pass total.
func clampDuration(start, want, total float64) float64 {
	avail := total - start
	if avail < want {
		return avail
	}
	return want
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
