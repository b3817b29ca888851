// Package mediatest provides a scripted media.Runner that imitates ffmpeg
// and ffprobe closely enough for pipeline tests.
package mediatest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/user/dailyreel/media"
)

// Call records one invocation.
type Call struct {
	Name string
	Args []string
}

// Behavior scripts how the fake treats one source file.
type Behavior struct {
	FailExtract  bool
	NoVideo      bool
	NoAudio      bool
	ProbeFails   bool
	ClipDuration float64
}

// Runner is a fake media.Runner. Source files are keyed by base name.
//
// Extraction writes the source path into the destination file and concat
// writes one line per manifest entry into the output (the segment's content
// when readable, its path otherwise), so tests can read back what was joined
// and in which order with Joined.
type Runner struct {
	Calls          []Call
	SourceDuration float64
	Sources        map[string]Behavior
	FailConcat     bool
	Missing        map[string]bool

	clips map[string]string
}

var _ media.Runner = (*Runner)(nil)

// New returns a fake with 10 second sources.
func New() *Runner {
	return &Runner{
		SourceDuration: 10,
		Sources:        map[string]Behavior{},
		Missing:        map[string]bool{},
		clips:          map[string]string{},
	}
}

func (r *Runner) Run(_ context.Context, name string, args ...string) (media.Result, error) {
	r.Calls = append(r.Calls, Call{Name: name, Args: append([]string(nil), args...)})
	if r.clips == nil {
		r.clips = map[string]string{}
	}

	if r.Missing[name] {
		return media.Result{}, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if len(args) == 1 && args[0] == "-version" {
		return media.Result{Stdout: []byte(name + " version fake")}, nil
	}

	switch {
	case strings.Contains(filepath.Base(name), "ffprobe"):
		return r.probe(args[len(args)-1])
	case isConcat(args):
		return r.concat(args)
	default:
		return r.extract(args)
	}
}

// CallsTo returns the recorded invocations of the named tool.
func (r *Runner) CallsTo(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (r *Runner) probe(path string) (media.Result, error) {
	if src, ok := r.clips[path]; ok {
		b := r.Sources[src]
		if b.ProbeFails {
			return media.Result{ExitCode: 1, Stderr: []byte("moov atom not found")}, nil
		}
		d := b.ClipDuration
		if d == 0 {
			d = media.DefaultClipDuration
		}
		return media.Result{Stdout: ProbeJSON(d, !b.NoVideo, !b.NoAudio)}, nil
	}
	return media.Result{Stdout: ProbeJSON(r.SourceDuration, true, true)}, nil
}

func (r *Runner) extract(args []string) (media.Result, error) {
	src := argAfter(args, "-i")
	dest := args[len(args)-1]
	base := filepath.Base(src)
	if r.Sources[base].FailExtract {
		return media.Result{ExitCode: 1, Stderr: []byte(src + ": Invalid data found when processing input")}, nil
	}
	if err := os.WriteFile(dest, []byte(src), 0o644); err != nil {
		return media.Result{}, err
	}
	r.clips[dest] = base
	return media.Result{}, nil
}

func (r *Runner) concat(args []string) (media.Result, error) {
	if r.FailConcat {
		return media.Result{ExitCode: 1, Stderr: []byte("Non-monotonous DTS in output stream")}, nil
	}
	manifest, err := os.ReadFile(argAfter(args, "-i"))
	if err != nil {
		return media.Result{}, err
	}
	var out strings.Builder
	for _, seg := range ManifestEntries(manifest) {
		if data, err := os.ReadFile(seg); err == nil {
			seg = string(data)
		}
		out.WriteString(seg + "\n")
	}
	if err := os.WriteFile(args[len(args)-1], []byte(out.String()), 0o644); err != nil {
		return media.Result{}, err
	}
	return media.Result{}, nil
}

// ProbeJSON renders an ffprobe -show_format -show_streams document.
func ProbeJSON(duration float64, video, audio bool) []byte {
	type stream struct {
		Index     int    `json:"index"`
		CodecType string `json:"codec_type"`
		Width     int    `json:"width,omitempty"`
		Height    int    `json:"height,omitempty"`
	}
	var streams []stream
	if video {
		streams = append(streams, stream{Index: len(streams), CodecType: "video", Width: 540, Height: 960})
	}
	if audio {
		streams = append(streams, stream{Index: len(streams), CodecType: "audio"})
	}
	doc := map[string]any{
		"streams": streams,
		"format":  map[string]string{"duration": fmt.Sprintf("%.6f", duration)},
	}
	out, _ := json.Marshal(doc)
	return out
}

// ManifestEntries parses the `file '...'` lines written by media.Concat.
func ManifestEntries(data []byte) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		line = strings.TrimPrefix(line, "file '")
		line = strings.TrimSuffix(line, "'")
		if line != "" {
			out = append(out, strings.ReplaceAll(line, `'\''`, "'"))
		}
	}
	return out
}

// Joined splits an output written by the fake concat into its entries.
func Joined(data []byte) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isConcat(args []string) bool {
	return argAfter(args, "-f") == "concat"
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
