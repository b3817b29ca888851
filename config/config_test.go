package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate(): %v", err)
	}
	if cfg.Clip.Duration != 1.4 || cfg.Extension != ".mp4" {
		t.Errorf("unexpected defaults: %+v", cfg.Clip)
	}
}

func TestLoad_MissingDefaultFileIgnored(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourceDir != "videos" {
		t.Errorf("SourceDir = %q", cfg.SourceDir)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reel.yaml")
	writeFile(t, path, `
source_dir: /media/memories
extension: MOV
clip:
  duration: 1.6
video:
  fps: 25
selection:
  policy: First
  seed: 99
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourceDir != "/media/memories" || cfg.Clip.Duration != 1.6 || cfg.Video.FPS != 25 {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	if cfg.Extension != ".MOV" {
		t.Errorf("Extension = %q, want .MOV", cfg.Extension)
	}
	if cfg.Selection.Policy != "first" || cfg.Selection.Seed != 99 {
		t.Errorf("Selection = %+v", cfg.Selection)
	}
	if cfg.Video.Width != 540 || cfg.Audio.SampleRate != 44100 {
		t.Errorf("untouched defaults lost: %+v %+v", cfg.Video, cfg.Audio)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "clip: [1, 2")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero duration", func(c *Config) { c.Clip.Duration = 0 }, "clip.duration"},
		{"NaN duration", func(c *Config) { c.Clip.Duration = math.NaN() }, "clip.duration"},
		{"infinite duration", func(c *Config) { c.Clip.Duration = math.Inf(1) }, "clip.duration"},
		{"negative start", func(c *Config) { c.Clip.Start = -1 }, "clip.start"},
		{"NaN start", func(c *Config) { c.Clip.Start = math.NaN() }, "clip.start"},
		{"infinite start", func(c *Config) { c.Clip.Start = math.Inf(1) }, "clip.start"},
		{"NaN min duration", func(c *Config) { c.Clip.MinDuration = math.NaN() }, "clip.min_duration"},
		{"odd width", func(c *Config) { c.Video.Width = 541 }, "even"},
		{"zero height", func(c *Config) { c.Video.Height = 0 }, "positive"},
		{"zero fps", func(c *Config) { c.Video.FPS = 0 }, "video.fps"},
		{"bad preset", func(c *Config) { c.Video.Preset = "turbo" }, "video.preset"},
		{"bad crf", func(c *Config) { c.Video.CRF = 60 }, "0-51"},
		{"zero channels", func(c *Config) { c.Audio.Channels = 0 }, "audio"},
		{"bad policy", func(c *Config) { c.Selection.Policy = "newest" }, "selection.policy"},
		{"no source", func(c *Config) { c.SourceDir = "" }, "source_dir"},
		{"no output", func(c *Config) { c.Output = "" }, "output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	cfg := Default()
	cfg.Video.FPS = 24
	cfg.Audio.BitrateKbps = 128
	p := cfg.Profile()
	if p.FPS != 24 || p.AudioBitrateKbps != 128 || p.Width != 540 {
		t.Errorf("Profile = %+v", p)
	}
}

func TestEstimatedDuration(t *testing.T) {
	cfg := Default()
	cfg.Clip.Duration = 1.5
	if got := cfg.EstimatedDuration(4); got != 6 {
		t.Errorf("EstimatedDuration(4) = %v, want 6", got)
	}
}

func TestHistoryPath_Override(t *testing.T) {
	cfg := Default()
	cfg.History.Path = "/tmp/h.db"
	got, err := cfg.HistoryPath()
	if err != nil || got != "/tmp/h.db" {
		t.Errorf("HistoryPath = %q, %v", got, err)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}
