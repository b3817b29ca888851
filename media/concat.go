package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoClips is returned by Concat when given nothing to join.
var ErrNoClips = errors.New("no clips to concatenate")

// ConcatRequest lists the segments to join, in order.
type ConcatRequest struct {
	Clips   []string
	Output  string
	WorkDir string
}

// Concat writes a concat-demuxer manifest and joins the clips into Output,
// re-encoding with the same profile used for extraction. ffmpeg writes to a
// sibling partial file that replaces Output only on success, so a failed
// join never clobbers an existing output. The manifest is always removed.
func (t *Toolkit) Concat(ctx context.Context, req ConcatRequest) error {
	if len(req.Clips) == 0 {
		return ErrNoClips
	}

	manifest, err := writeManifest(req.WorkDir, req.Clips)
	if err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	defer os.Remove(manifest)

	created, err := makeOutputDir(filepath.Dir(req.Output))
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	joined := false
	defer func() {
		if !joined {
			removeDirs(created)
		}
	}()

	partial := PartialPath(req.Output)
	defer os.Remove(partial)

	args := t.concatArgs(manifest, partial)
	t.Log.Debug().Strs("args", args).Msg("ffmpeg concat")

	if _, err := run(ctx, t.Runner, t.ffmpeg(), args...); err != nil {
		return fmt.Errorf("concat %d clips: %w", len(req.Clips), err)
	}
	if err := os.Rename(partial, req.Output); err != nil {
		return fmt.Errorf("move concat output into place: %w", err)
	}
	joined = true
	return nil
}

// makeOutputDir creates dir and any missing parents. It returns the
// directories it created, deepest first.
func makeOutputDir(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; {
		_, err := os.Stat(d)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		missing = append(missing, d)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	if len(missing) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return missing, nil
}

// removeDirs removes directories deepest first. Non-empty ones are kept.
func removeDirs(dirs []string) {
	for _, d := range dirs {
		_ = os.Remove(d)
	}
}

func (t *Toolkit) concatArgs(manifest, out string) []string {
	p := t.Profile
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", manifest,
	}
	args = append(args, p.videoArgs(p.ConcatCRF)...)
	args = append(args, p.audioArgs()...)
	args = append(args, syncArgs()...)
	args = append(args, "-max_muxing_queue_size", "1024", "-y", out)
	return args
}

// PartialPath is the temporary path Concat writes before renaming, e.g.
// reel.mp4 -> reel.partial.mp4.
func PartialPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + ".partial" + ext
}

// writeManifest creates the manifest in dir (the system temp dir when empty).
func writeManifest(dir string, clips []string) (path string, err error) {
	f, err := os.CreateTemp(dir, "concat-*.txt")
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	for _, c := range clips {
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", err
		}
		if _, err := fmt.Fprintf(w, "file '%s'\n", escapeManifestPath(abs)); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// escapeManifestPath quotes a path for a single-quoted concat manifest entry.
func escapeManifestPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}
