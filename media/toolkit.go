package media

import (
	"github.com/rs/zerolog"
)

// Default tool names, resolved through PATH.
const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"
)

// DefaultMinDuration is the shortest segment Validate accepts, in seconds.
const DefaultMinDuration = 0.5

// Toolkit builds tool invocations from a Profile and runs them through Runner.
type Toolkit struct {
	Runner      Runner
	FFmpeg      string
	FFprobe     string
	Profile     Profile
	MinDuration float64
	Log         zerolog.Logger
}

// NewToolkit returns a Toolkit using the default tool names and profile.
func NewToolkit(r Runner, log zerolog.Logger) *Toolkit {
	return &Toolkit{
		Runner:      r,
		FFmpeg:      DefaultFFmpeg,
		FFprobe:     DefaultFFprobe,
		Profile:     DefaultProfile(),
		MinDuration: DefaultMinDuration,
		Log:         log,
	}
}

func (t *Toolkit) ffmpeg() string {
	if t.FFmpeg == "" {
		return DefaultFFmpeg
	}
	return t.FFmpeg
}

func (t *Toolkit) ffprobe() string {
	if t.FFprobe == "" {
		return DefaultFFprobe
	}
	return t.FFprobe
}
