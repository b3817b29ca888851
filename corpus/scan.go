package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrSourceDir is returned when the source directory is missing or unreadable.
var ErrSourceDir = errors.New("source directory unavailable")

// MediaFile is a candidate recording. Date is the zero time when the name
// carries no parsable date.
type MediaFile struct {
	Path string
	Name string
	Date time.Time
}

// HasDate reports whether the filename carried a parsable date.
func (f MediaFile) HasDate() bool {
	return !f.Date.IsZero()
}

// isRegular reports whether e is a regular file or a symlink to one.
func isRegular(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}

// Scan lists the regular files (symlinks followed) directly inside dir whose extension matches
// ext (case-insensitive). It does not recurse. Results are sorted by name.
func Scan(dir, ext string) ([]MediaFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceDir, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceDir, err)
	}

	var files []MediaFile
	for _, e := range entries {
		if !isRegular(dir, e) {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		f := MediaFile{Path: filepath.Join(dir, name), Name: name}
		if d, ok := ParseDate(name, ext); ok {
			f.Date = d
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
