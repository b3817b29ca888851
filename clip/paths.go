package clip

import (
	"fmt"
	"path/filepath"
	"time"
)

// ClipPath computes where a day's segment is written inside the run workspace.
// Filename format: clip_{index:04d}_{YYYYMMDD}.mp4
func ClipPath(workDir string, index int, date time.Time) string {
	filename := fmt.Sprintf("clip_%04d_%s.mp4", index, date.Format("20060102"))
	return filepath.Join(workDir, filename)
}
