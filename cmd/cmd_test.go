package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/pflag"

	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/pipeline"
)

func parseRunFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	runFlags = struct {
		source   string
		output   string
		ext      string
		policy   string
		start    string
		duration float64
		seed     int64
	}{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addSelectionFlags(fs)
	addClipFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return fs
}

func TestLoadRunConfig_FlagsOverrideDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	fs := parseRunFlags(t, "--source", "clips", "-o", "out/year.mp4", "--ext", "MOV",
		"--policy", "first", "--duration", "2", "--start", "0:01.5")

	cfg, err := loadRunConfig(fs)
	if err != nil {
		t.Fatalf("loadRunConfig: %v", err)
	}
	if cfg.SourceDir != "clips" || cfg.Output != "out/year.mp4" || cfg.Extension != ".MOV" {
		t.Errorf("paths = %q %q %q", cfg.SourceDir, cfg.Output, cfg.Extension)
	}
	if cfg.Selection.Policy != corpus.PolicyFirst || cfg.Selection.Seed != 0 {
		t.Errorf("selection = %+v, want first policy without a seed", cfg.Selection)
	}
	if cfg.Clip.Duration != 2 || cfg.Clip.Start != 1.5 {
		t.Errorf("clip = %+v", cfg.Clip)
	}
}

func TestLoadRunConfig_UnsetFlagsKeepDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := loadRunConfig(parseRunFlags(t))
	if err != nil {
		t.Fatalf("loadRunConfig: %v", err)
	}
	if cfg.SourceDir != "videos" || cfg.Output != "snap-one-second-videos.mp4" || cfg.Clip.Duration != 1.4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Selection.Seed == 0 {
		t.Error("random policy should get a concrete seed")
	}
}

func TestLoadRunConfig_ExplicitSeedKept(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := loadRunConfig(parseRunFlags(t, "--seed", "42"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Selection.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Selection.Seed)
	}
}

func TestLoadRunConfig_MixedCasePolicyGetsSeed(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := loadRunConfig(parseRunFlags(t, "--policy", "Random"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Selection.Policy != corpus.PolicyRandom || cfg.Selection.Seed == 0 {
		t.Errorf("selection = %+v, want random with a concrete seed", cfg.Selection)
	}
}

func TestLoadRunConfig_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	for _, args := range [][]string{
		{"--duration", "0"},
		{"--policy", "newest"},
		{"--start", "1:99"},
		{"--duration", "NaN"},
		{"--duration", "+Inf"},
	} {
		if _, err := loadRunConfig(parseRunFlags(t, args...)); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestExitCode(t *testing.T) {
	setup := &pipeline.StageError{Stage: pipeline.StagePreflight, Kind: pipeline.ErrFatalSetup, Err: errors.New("ffmpeg missing")}
	if got := exitCode(fmt.Errorf("run: %w", setup)); got != 2 {
		t.Errorf("setup failure exit = %d, want 2", got)
	}
	if got := exitCode(errors.New("other")); got != 1 {
		t.Errorf("other failure exit = %d, want 1", got)
	}
}
