// Package config holds the run configuration: defaults, the optional YAML
// file, and validation. Command-line flags are applied on top by cmd.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/media"
)

// DefaultFile is looked up in the working directory when --config is not given.
const DefaultFile = "dailyreel.yaml"

// Config is everything a run needs.
type Config struct {
	SourceDir string          `yaml:"source_dir"`
	Output    string          `yaml:"output"`
	Extension string          `yaml:"extension"`
	Clip      ClipConfig      `yaml:"clip"`
	Video     VideoConfig     `yaml:"video"`
	Audio     AudioConfig     `yaml:"audio"`
	Selection SelectionConfig `yaml:"selection"`
	Tools     ToolsConfig     `yaml:"tools"`
	History   HistoryConfig   `yaml:"history"`
}

// ClipConfig controls the segment cut from each day's recording.
type ClipConfig struct {
	Duration    float64 `yaml:"duration"`
	Start       float64 `yaml:"start"`
	MinDuration float64 `yaml:"min_duration"`
}

// VideoConfig contains the output frame and encoder settings.
type VideoConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FPS       int    `yaml:"fps"`
	CRF       int    `yaml:"crf"`
	ConcatCRF int    `yaml:"concat_crf"`
	Preset    string `yaml:"preset"`
}

// AudioConfig describes audio encoding parameters.
type AudioConfig struct {
	SampleRate  int `yaml:"sample_rate"`
	Channels    int `yaml:"channels"`
	BitrateKbps int `yaml:"bitrate_kbps"`
}

// SelectionConfig picks the per-day policy. Seed 0 means time-seeded.
type SelectionConfig struct {
	Policy string `yaml:"policy"`
	Seed   int64  `yaml:"seed"`
}

// ToolsConfig overrides the ffmpeg/ffprobe binaries.
type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
}

// HistoryConfig controls the SQLite run ledger.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

var allowedPresets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
}

// Default returns the built-in configuration.
func Default() *Config {
	p := media.DefaultProfile()
	return &Config{
		SourceDir: "videos",
		Output:    "snap-one-second-videos.mp4",
		Extension: ".mp4",
		Clip: ClipConfig{
			Duration:    media.DefaultClipDuration,
			MinDuration: media.DefaultMinDuration,
		},
		Video: VideoConfig{
			Width:     p.Width,
			Height:    p.Height,
			FPS:       p.FPS,
			CRF:       p.CRF,
			ConcatCRF: p.ConcatCRF,
			Preset:    p.Preset,
		},
		Audio: AudioConfig{
			SampleRate:  p.SampleRate,
			Channels:    p.Channels,
			BitrateKbps: p.AudioBitrateKbps,
		},
		Selection: SelectionConfig{Policy: corpus.PolicyRandom},
		Tools: ToolsConfig{
			FFmpeg:  media.DefaultFFmpeg,
			FFprobe: media.DefaultFFprobe,
		},
		History: HistoryConfig{Enabled: true},
	}
}

// Load returns the defaults overlaid with the YAML file at path. When path
// is empty DefaultFile is tried and silently skipped if absent; an explicit
// path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Extension = strings.TrimSpace(c.Extension)
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	c.Selection.Policy = strings.ToLower(strings.TrimSpace(c.Selection.Policy))
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	c.normalize()
	var errs []error
	if c.SourceDir == "" {
		errs = append(errs, errors.New("source_dir is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	if c.Extension == "" || c.Extension == "." {
		errs = append(errs, errors.New("extension is required"))
	}
	if !positive(c.Clip.Duration) {
		errs = append(errs, fmt.Errorf("clip.duration must be > 0, got %g", c.Clip.Duration))
	}
	if !nonNegative(c.Clip.Start) {
		errs = append(errs, fmt.Errorf("clip.start must be >= 0, got %g", c.Clip.Start))
	}
	if !nonNegative(c.Clip.MinDuration) {
		errs = append(errs, fmt.Errorf("clip.min_duration must be >= 0, got %g", c.Clip.MinDuration))
	}
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		errs = append(errs, fmt.Errorf("video dimensions must be positive, got %dx%d", c.Video.Width, c.Video.Height))
	} else if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		errs = append(errs, fmt.Errorf("video dimensions must be even for yuv420p, got %dx%d", c.Video.Width, c.Video.Height))
	}
	if c.Video.FPS <= 0 {
		errs = append(errs, fmt.Errorf("video.fps must be > 0, got %d", c.Video.FPS))
	}
	if c.Video.CRF < 0 || c.Video.CRF > 51 || c.Video.ConcatCRF < 0 || c.Video.ConcatCRF > 51 {
		errs = append(errs, errors.New("video.crf and video.concat_crf must be within 0-51"))
	}
	if _, ok := allowedPresets[c.Video.Preset]; !ok {
		errs = append(errs, fmt.Errorf("unknown video.preset %q", c.Video.Preset))
	}
	if c.Audio.SampleRate <= 0 || c.Audio.Channels <= 0 || c.Audio.BitrateKbps <= 0 {
		errs = append(errs, errors.New("audio sample_rate, channels and bitrate_kbps must be positive"))
	}
	switch c.Selection.Policy {
	case corpus.PolicyRandom, corpus.PolicyFirst:
	default:
		errs = append(errs, fmt.Errorf("unknown selection.policy %q (want %s or %s)",
			c.Selection.Policy, corpus.PolicyRandom, corpus.PolicyFirst))
	}
	return errors.Join(errs...)
}

// positive reports whether v is a finite number above zero. NaN fails.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// nonNegative reports whether v is a finite number at or above zero.
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Profile converts the video and audio sections into a media.Profile.
func (c *Config) Profile() media.Profile {
	return media.Profile{
		Width:            c.Video.Width,
		Height:           c.Video.Height,
		FPS:              c.Video.FPS,
		Preset:           c.Video.Preset,
		CRF:              c.Video.CRF,
		ConcatCRF:        c.Video.ConcatCRF,
		SampleRate:       c.Audio.SampleRate,
		Channels:         c.Audio.Channels,
		AudioBitrateKbps: c.Audio.BitrateKbps,
	}
}

// HistoryPath returns the configured ledger path or the default location
// under ~/.local/share/dailyreel.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "dailyreel", "history.db"), nil
}

// EstimatedDuration is the reel length for n clips of the target duration.
func (c *Config) EstimatedDuration(n int) float64 {
	return float64(n) * c.Clip.Duration
}
