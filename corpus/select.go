package corpus

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Selection policies.
const (
	PolicyRandom = "random"
	PolicyFirst  = "first"
)

// Picker chooses an index in [0, n). n is always at least 2.
type Picker interface {
	Pick(n int) int
}

// RandomPicker picks uniformly using the wrapped source. Seed is the seed
// Rand was created from; passing it back to NewRandomPicker replays the
// same picks.
type RandomPicker struct {
	Rand *rand.Rand
	Seed int64
}

// NewRandomPicker seeds a picker. A zero seed uses the current time.
func NewRandomPicker(seed int64) *RandomPicker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPicker{Rand: rand.New(rand.NewSource(seed)), Seed: seed}
}

func (p *RandomPicker) Pick(n int) int {
	return p.Rand.Intn(n)
}

// FirstPicker always picks the first candidate. Buckets are sorted by path,
// so this is the lexicographically smallest file.
type FirstPicker struct{}

func (FirstPicker) Pick(int) int { return 0 }

// NewPicker returns the picker for a named policy.
func NewPicker(policy string, seed int64) (Picker, error) {
	switch policy {
	case PolicyRandom, "":
		return NewRandomPicker(seed), nil
	case PolicyFirst:
		return FirstPicker{}, nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", policy)
	}
}

// Selection is the one recording chosen for a day.
type Selection struct {
	Date       time.Time
	File       MediaFile
	Candidates int
}

// Selector picks one file per day.
type Selector struct {
	Picker Picker
}

// Select returns one selection per non-empty bucket, sorted ascending by
// date. A bucket with a single file always yields that file.
func (s *Selector) Select(buckets []DayBucket) []Selection {
	out := make([]Selection, 0, len(buckets))
	for _, b := range buckets {
		n := len(b.Files)
		if n == 0 {
			continue
		}
		i := 0
		if n > 1 {
			i = s.Picker.Pick(n)
			if i < 0 || i >= n {
				i = 0
			}
		}
		out = append(out, Selection{Date: b.Date, File: b.Files[i], Candidates: n})
	}
	SortSelections(out)
	return out
}

// SortSelections orders selections ascending by date.
func SortSelections(sel []Selection) {
	sort.SliceStable(sel, func(i, j int) bool { return sel[i].Date.Before(sel[j].Date) })
}
