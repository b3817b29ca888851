package db

import "time"

// Run statuses.
const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)

// Run represents a row in the runs table.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	SourceDir    string
	OutputPath   string
	Policy       string
	Seed         int64
	ClipDuration float64
	Status       string
	ClipCount    int
	SkippedCount int
	OutputSize   int64
	Error        string
}

// RunClip represents a row in the run_clips table: one day of a run, kept
// or skipped.
type RunClip struct {
	ID         int64
	RunID      string
	Day        string
	SourcePath string
	Status     string
	Stage      string
	Reason     string
}
