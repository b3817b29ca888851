package media_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/user/dailyreel/media"
	"github.com/user/dailyreel/media/mediatest"
)

func newToolkit(r media.Runner) *media.Toolkit {
	return media.NewToolkit(r, zerolog.Nop())
}

// --- Probe ---

func TestParseProbeJSON(t *testing.T) {
	pr, err := media.ParseProbeJSON(mediatest.ProbeJSON(1.4, true, true))
	if err != nil {
		t.Fatalf("ParseProbeJSON: %v", err)
	}
	if !pr.HasVideo || !pr.HasAudio {
		t.Errorf("streams: video=%v audio=%v", pr.HasVideo, pr.HasAudio)
	}
	if !pr.DurationKnown || pr.Duration < 1.39 || pr.Duration > 1.41 {
		t.Errorf("duration = %v (known=%v)", pr.Duration, pr.DurationKnown)
	}
	if pr.Width != 540 || pr.Height != 960 {
		t.Errorf("geometry = %dx%d", pr.Width, pr.Height)
	}
}

func TestParseProbeJSON_MissingDuration(t *testing.T) {
	pr, err := media.ParseProbeJSON([]byte(`{"streams":[{"codec_type":"video"}],"format":{}}`))
	if err != nil {
		t.Fatalf("ParseProbeJSON: %v", err)
	}
	if pr.DurationKnown {
		t.Error("DurationKnown should be false")
	}
}

func TestParseProbeJSON_Malformed(t *testing.T) {
	if _, err := media.ParseProbeJSON([]byte(`{"streams":`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := media.ParseProbeJSON([]byte(`{"format":{"duration":"abc"}}`)); err == nil {
		t.Fatal("expected error for non-numeric duration")
	}
}

func TestDuration(t *testing.T) {
	fake := mediatest.New()
	fake.SourceDuration = 3.25
	d, err := newToolkit(fake).Duration(context.Background(), "/v/2024-01-01_a.mp4")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if d < 3.24 || d > 3.26 {
		t.Errorf("Duration = %v, want 3.25", d)
	}
}

// --- Extract ---

func TestExtract_WritesDestAndClampsToSource(t *testing.T) {
	dir := t.TempDir()
	fake := mediatest.New()
	fake.SourceDuration = 0.9
	dest := filepath.Join(dir, "clip.mp4")

	got, err := newToolkit(fake).Extract(context.Background(), media.ExtractRequest{
		Source:   "/v/2024-01-01_a.mp4",
		Dest:     dest,
		Duration: 1.4,
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got < 0.89 || got > 0.91 {
		t.Errorf("clamped duration = %v, want 0.9", got)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("dest not written: %v", err)
	}

	calls := fake.CallsTo(media.DefaultFFmpeg)
	if len(calls) != 1 {
		t.Fatalf("ffmpeg calls = %d, want 1", len(calls))
	}
	args := strings.Join(calls[0].Args, " ")
	if !strings.Contains(args, "-t 0.900") {
		t.Errorf("args missing clamped -t: %s", args)
	}
}

func TestExtract_StartPastEnd(t *testing.T) {
	fake := mediatest.New()
	fake.SourceDuration = 2
	_, err := newToolkit(fake).Extract(context.Background(), media.ExtractRequest{
		Source:   "/v/a.mp4",
		Dest:     filepath.Join(t.TempDir(), "clip.mp4"),
		Duration: 1.4,
		Start:    5,
	})
	if err == nil {
		t.Fatal("expected error when start is past the end")
	}
	if n := len(fake.CallsTo(media.DefaultFFmpeg)); n != 0 {
		t.Errorf("ffmpeg should not run, ran %d times", n)
	}
}

func TestExtract_RejectsBadTiming(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		start    float64
	}{
		{"zero duration", 0, 0},
		{"NaN duration", math.NaN(), 0},
		{"infinite duration", math.Inf(1), 0},
		{"negative start", 1.4, -1},
		{"NaN start", 1.4, math.NaN()},
		{"infinite start", 1.4, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := mediatest.New()
			_, err := newToolkit(fake).Extract(context.Background(), media.ExtractRequest{
				Source: "/v/a.mp4", Dest: filepath.Join(t.TempDir(), "clip.mp4"),
				Duration: tt.duration, Start: tt.start,
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if n := len(fake.Calls); n != 0 {
				t.Errorf("no tool should run, got %d calls", n)
			}
		})
	}
}

func TestParseProbeJSON_NonFiniteDurationUnknown(t *testing.T) {
	pr, err := media.ParseProbeJSON([]byte(`{"format":{"duration":"nan"},"streams":[]}`))
	if err != nil {
		t.Fatalf("ParseProbeJSON: %v", err)
	}
	if pr.DurationKnown {
		t.Errorf("NaN duration reported as known: %+v", pr)
	}
}

func TestExtract_FailureCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	fake := mediatest.New()
	fake.Sources["2024-01-01_a.mp4"] = mediatest.Behavior{FailExtract: true}
	dest := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(dest, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := newToolkit(fake).Extract(context.Background(), media.ExtractRequest{
		Source: "/v/2024-01-01_a.mp4", Dest: dest, Duration: 1.4,
	})
	var te *media.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *ToolError", err)
	}
	if te.ExitCode != 1 || !strings.Contains(te.Stderr, "Invalid data") {
		t.Errorf("ToolError = %+v", te)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("partial dest should be removed, stat err = %v", err)
	}
}

// --- Validate ---

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		behavior mediatest.Behavior
		wantErr  string
	}{
		{"valid", mediatest.Behavior{}, ""},
		{"no video", mediatest.Behavior{NoVideo: true}, "no video stream"},
		{"no audio", mediatest.Behavior{NoAudio: true}, "no audio stream"},
		{"too short", mediatest.Behavior{ClipDuration: 0.3}, "below"},
		{"probe fails", mediatest.Behavior{ProbeFails: true}, "probe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			fake := mediatest.New()
			fake.Sources["src.mp4"] = tt.behavior
			tk := newToolkit(fake)
			dest := filepath.Join(dir, "clip.mp4")
			if _, err := tk.Extract(context.Background(), media.ExtractRequest{
				Source: "/v/src.mp4", Dest: dest, Duration: 1.4,
			}); err != nil {
				t.Fatalf("Extract: %v", err)
			}

			_, err := tk.Validate(context.Background(), dest)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, media.ErrInvalidClip) {
				t.Fatalf("err = %v, want ErrInvalidClip", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestCheckClip_MissingDuration(t *testing.T) {
	err := media.CheckClip(&media.ProbeResult{HasVideo: true, HasAudio: true}, 0.5)
	if !errors.Is(err, media.ErrInvalidClip) {
		t.Fatalf("err = %v, want ErrInvalidClip", err)
	}
}

// --- Concat ---

func TestConcat_OrderAndManifestCleanup(t *testing.T) {
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	if err := os.Mkdir(work, 0o755); err != nil {
		t.Fatal(err)
	}
	clips := []string{
		filepath.Join(work, "clip_0000_20240101.mp4"),
		filepath.Join(work, "clip_0001_20240103.mp4"),
		filepath.Join(work, "it's.mp4"),
	}
	out := filepath.Join(dir, "reel.mp4")

	fake := mediatest.New()
	if err := newToolkit(fake).Concat(context.Background(), media.ConcatRequest{
		Clips: clips, Output: out, WorkDir: work,
	}); err != nil {
		t.Fatalf("Concat: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	got := mediatest.Joined(data)
	if len(got) != len(clips) {
		t.Fatalf("manifest entries = %v", got)
	}
	for i := range clips {
		if got[i] != clips[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], clips[i])
		}
	}
	assertEmptyDir(t, work)
	if _, err := os.Stat(media.PartialPath(out)); !os.IsNotExist(err) {
		t.Errorf("partial output left behind")
	}
}

func TestConcat_FailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "reel.mp4")
	if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := mediatest.New()
	fake.FailConcat = true
	err := newToolkit(fake).Concat(context.Background(), media.ConcatRequest{
		Clips: []string{filepath.Join(dir, "a.mp4")}, Output: out, WorkDir: dir,
	})
	var te *media.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *ToolError", err)
	}

	data, _ := os.ReadFile(out)
	if string(data) != "previous" {
		t.Errorf("previous output clobbered: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "concat-") {
			t.Errorf("manifest %s leaked", e.Name())
		}
	}
}

func TestConcat_OutputDirectory(t *testing.T) {
	dir := t.TempDir()
	clips := []string{filepath.Join(dir, "a.mp4")}

	t.Run("failed join leaves no new directory", func(t *testing.T) {
		fake := mediatest.New()
		fake.FailConcat = true
		out := filepath.Join(dir, "failed", "nested", "reel.mp4")
		err := newToolkit(fake).Concat(context.Background(), media.ConcatRequest{
			Clips: clips, Output: out, WorkDir: dir,
		})
		if err == nil {
			t.Fatal("expected concat error")
		}
		if _, err := os.Stat(filepath.Join(dir, "failed")); !os.IsNotExist(err) {
			t.Errorf("output directory left behind, stat err = %v", err)
		}
	})

	t.Run("successful join creates it", func(t *testing.T) {
		out := filepath.Join(dir, "ok", "nested", "reel.mp4")
		if err := newToolkit(mediatest.New()).Concat(context.Background(), media.ConcatRequest{
			Clips: clips, Output: out, WorkDir: dir,
		}); err != nil {
			t.Fatalf("Concat: %v", err)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("output missing: %v", err)
		}
	})
}

func TestConcat_Empty(t *testing.T) {
	err := newToolkit(mediatest.New()).Concat(context.Background(), media.ConcatRequest{Output: "x.mp4"})
	if !errors.Is(err, media.ErrNoClips) {
		t.Fatalf("err = %v, want ErrNoClips", err)
	}
}

// --- ToolError ---

func TestToolError_Message(t *testing.T) {
	te := &media.ToolError{Tool: "ffmpeg", ExitCode: 1, Stderr: "line one\nConversion failed!\n"}
	if got := te.Error(); got != "ffmpeg exited with status 1: Conversion failed!" {
		t.Errorf("Error() = %q", got)
	}
}

func TestToolError_MissingBinary(t *testing.T) {
	fake := mediatest.New()
	fake.Missing[media.DefaultFFprobe] = true
	_, err := newToolkit(fake).Probe(context.Background(), "/v/a.mp4")
	var te *media.ToolError
	if !errors.As(err, &te) || te.Err == nil {
		t.Fatalf("err = %v, want *ToolError wrapping the exec error", err)
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("%s not empty: %v", dir, names)
	}
}
