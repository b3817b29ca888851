package pipeline

import (
	"time"

	"github.com/user/dailyreel/clip"
	"github.com/user/dailyreel/corpus"
)

// Plan is the outcome of Scan, Group, Select and Sort.
type Plan struct {
	SourceDir  string
	Files      []corpus.MediaFile
	Undated    int
	Buckets    []corpus.DayBucket
	Selections []corpus.Selection
}

// Skip records a day dropped from the reel.
type Skip struct {
	Date   time.Time
	Source string
	Stage  string
	Reason string
	Stderr string
}

// Report summarizes a run. It is returned alongside a failure too, filled
// in as far as the run got.
type Report struct {
	RunID        string
	Output       string
	OutputSize   int64
	ClipDuration float64
	Files        int
	Days         int
	Clips        []*clip.Clip
	Skipped      []Skip
	Started      time.Time
	Elapsed      time.Duration
}

// EstimatedDuration is clip count × target duration, in seconds.
func (r *Report) EstimatedDuration() float64 {
	return float64(len(r.Clips)) * r.ClipDuration
}

// Dates returns the dates of the concatenated clips in reel order.
func (r *Report) Dates() []time.Time {
	out := make([]time.Time, len(r.Clips))
	for i, c := range r.Clips {
		out[i] = c.Date
	}
	return out
}
