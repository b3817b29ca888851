package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ProbeResult is the part of ffprobe's output the pipeline cares about.
type ProbeResult struct {
	Duration      float64
	DurationKnown bool
	HasVideo      bool
	HasAudio      bool
	Width         int
	Height        int
}

// ffprobe JSON wire types.

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ParseProbeJSON converts raw ffprobe JSON into a ProbeResult.
func ParseProbeJSON(data []byte) (*ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	pr := &ProbeResult{}
	if d := strings.TrimSpace(raw.Format.Duration); d != "" && d != "N/A" {
		v, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", d, err)
		}
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			pr.Duration = v
			pr.DurationKnown = true
		}
	}
	for _, s := range raw.Streams {
		switch s.CodecType {
		case "video":
			if !pr.HasVideo {
				pr.Width, pr.Height = s.Width, s.Height
			}
			pr.HasVideo = true
		case "audio":
			pr.HasAudio = true
		}
	}
	return pr, nil
}

// Probe runs a single ffprobe call against path.
func (t *Toolkit) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	res, err := run(ctx, t.Runner, t.ffprobe(),
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	return ParseProbeJSON(res.Stdout)
}

// Duration returns the container duration of path in seconds.
func (t *Toolkit) Duration(ctx context.Context, path string) (float64, error) {
	pr, err := t.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	if !pr.DurationKnown {
		return 0, fmt.Errorf("probe %q: no duration reported", path)
	}
	return pr.Duration, nil
}
