package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/user/dailyreel/media"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// Tool describes an external binary and where to get it.
type Tool struct {
	Name       string
	Path       string
	InstallURL string
}

// MediaTools returns ffmpeg and ffprobe, resolved to the given binaries.
func MediaTools(ffmpegPath, ffprobePath string) []Tool {
	return []Tool{
		{Name: "ffmpeg", Path: ffmpegPath, InstallURL: FfmpegInstallURL},
		{Name: "ffprobe", Path: ffprobePath, InstallURL: FfmpegInstallURL},
	}
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return lookPath(Tool{Name: "mpv", Path: "mpv", InstallURL: MpvInstallURL})
}

func lookPath(t Tool) error {
	if _, err := exec.LookPath(t.Path); err != nil {
		return &DependencyError{Name: t.Name, InstallURL: t.InstallURL, Err: err}
	}
	return nil
}

// Preflight runs each tool with -version and fails on the first one that
// cannot be invoked or exits non-zero. It returns the first line of each
// tool's version banner.
func Preflight(ctx context.Context, r media.Runner, tools []Tool) (map[string]string, error) {
	versions := make(map[string]string, len(tools))
	for _, t := range tools {
		path := t.Path
		if path == "" {
			path = t.Name
		}
		res, err := r.Run(ctx, path, "-version")
		if err != nil {
			return nil, &DependencyError{Name: t.Name, InstallURL: t.InstallURL, Err: err}
		}
		if res.ExitCode != 0 {
			return nil, &DependencyError{
				Name:       t.Name,
				InstallURL: t.InstallURL,
				Err:        fmt.Errorf("%s -version exited with status %d", path, res.ExitCode),
			}
		}
		versions[t.Name] = firstLine(string(res.Stdout))
	}
	return versions, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
