// Package corpus turns a flat directory of dated recordings into one
// selected file per calendar day.
package corpus

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the layout of the date prefix in a recording's filename.
const DateLayout = "2006-01-02"

// datePrefix matches YYYY-MM-DD_<anything>.
var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})_.*$`)

// ParseDate extracts the calendar date from a filename of the form
// YYYY-MM-DD_<id><ext>. The extension is compared case-insensitively and must
// include the leading dot. Returns false when the name does not match or the
// digits are not a real date. The date is returned at midnight UTC; no time
// zone is applied.
func ParseDate(name, ext string) (time.Time, bool) {
	if ext == "" || !strings.EqualFold(filepath.Ext(name), ext) {
		return time.Time{}, false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	m := datePrefix.FindStringSubmatch(stem)
	if m == nil {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
