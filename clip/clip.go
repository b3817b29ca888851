// Package clip turns one day's selected recording into a validated segment.
package clip

import (
	"time"

	"github.com/user/dailyreel/corpus"
)

// Status is the validation state of an extracted segment.
type Status int

const (
	StatusUnknown Status = iota
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Clip is a segment extracted into the run workspace.
type Clip struct {
	Path     string
	Date     time.Time
	Index    int
	Source   corpus.MediaFile
	Duration float64
	Status   Status
}

// Valid reports whether the clip may be concatenated.
func (c *Clip) Valid() bool {
	return c != nil && c.Status == StatusValid
}
