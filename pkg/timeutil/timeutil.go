// Package timeutil converts between clip offsets in seconds and the
// clock-style strings used on the command line and in reports.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTime formats seconds as H:MM:SS.mmm, dropping the fraction when it
// is zero (e.g. 0:00:01.400, 0:01:30).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(seconds*1000 + 0.5)
	hours := ms / 3_600_000
	mins := (ms % 3_600_000) / 60_000
	secs := (ms % 60_000) / 1000
	frac := ms % 1000
	if frac == 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%02d:%02d.%03d", hours, mins, secs, frac)
}

// FormatElapsed renders a wall-clock duration rounded to tenths of a second.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(100 * time.Millisecond).String()
}

// ParseTimeToSeconds parses an offset in HH:MM:SS, MM:SS, or raw seconds
// format. The last field may carry a fraction ("1:02.5").
func ParseTimeToSeconds(timeStr string) (float64, error) {
	s := strings.TrimSpace(timeStr)
	parts := strings.Split(s, ":")
	if s == "" || len(parts) > 3 {
		return 0, badTime(timeStr)
	}

	var total float64
	for i, p := range parts {
		last := i == len(parts)-1
		if last {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil || v < 0 || (len(parts) > 1 && v >= 60) {
				return 0, badTime(timeStr)
			}
			total = total*60 + v
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || (i > 0 && v >= 60) {
			return 0, badTime(timeStr)
		}
		total = total*60 + float64(v)
	}
	return total, nil
}

func badTime(s string) error {
	return fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", s)
}
