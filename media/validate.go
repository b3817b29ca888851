package media

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidClip is wrapped by every Validate failure.
var ErrInvalidClip = errors.New("invalid clip")

// Validate probes an extracted segment and checks it has a video stream,
// an audio stream and a duration of at least MinDuration. A probe failure
// is reported as an invalid clip too.
func (t *Toolkit) Validate(ctx context.Context, path string) (*ProbeResult, error) {
	pr, err := t.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClip, err)
	}
	if err := CheckClip(pr, t.minDuration()); err != nil {
		return pr, err
	}
	return pr, nil
}

// CheckClip applies the validation rules to a probe result.
func CheckClip(pr *ProbeResult, minDuration float64) error {
	switch {
	case !pr.HasVideo:
		return fmt.Errorf("%w: no video stream", ErrInvalidClip)
	case !pr.HasAudio:
		return fmt.Errorf("%w: no audio stream", ErrInvalidClip)
	case !pr.DurationKnown:
		return fmt.Errorf("%w: no duration", ErrInvalidClip)
	case pr.Duration < minDuration:
		return fmt.Errorf("%w: duration %.3fs below %.3fs", ErrInvalidClip, pr.Duration, minDuration)
	}
	return nil
}

func (t *Toolkit) minDuration() float64 {
	if t.MinDuration <= 0 {
		return DefaultMinDuration
	}
	return t.MinDuration
}
