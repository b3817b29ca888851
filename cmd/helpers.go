package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/user/dailyreel/config"
	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/db"
	"github.com/user/dailyreel/logging"
	"github.com/user/dailyreel/pkg/timeutil"
)

// runFlags back the flags shared by compile and plan. Only flags the user
// actually set override the config file.
var runFlags struct {
	source   string
	output   string
	ext      string
	policy   string
	start    string
	duration float64
	seed     int64
}

func configDefaultFile() string { return config.DefaultFile }

func addSelectionFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&runFlags.source, "source", "s", "", "directory holding the dated recordings (default \"videos\")")
	fs.StringVar(&runFlags.ext, "ext", "", "recording file extension (default \".mp4\")")
	fs.StringVar(&runFlags.policy, "policy", "", "how to pick among several recordings of one day: random or first")
	fs.Int64Var(&runFlags.seed, "seed", 0, "seed for the random policy; 0 picks a new seed and logs it")
}

func addClipFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&runFlags.output, "output", "o", "", "output reel path (default \"snap-one-second-videos.mp4\")")
	fs.Float64VarP(&runFlags.duration, "duration", "d", 0, "clip length in seconds (default 1.4)")
	fs.StringVar(&runFlags.start, "start", "", "offset into each recording, as seconds or MM:SS")
}

// loadRunConfig loads the config file and applies changed flags on top.
func loadRunConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(globalFlags.configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(fs, cfg); err != nil {
		return nil, err
	}
	// Validate normalizes the policy name, so it runs before the seed check.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Selection.Policy == corpus.PolicyRandom && cfg.Selection.Seed == 0 {
		cfg.Selection.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("source") {
		cfg.SourceDir = runFlags.source
	}
	if fs.Changed("output") {
		cfg.Output = runFlags.output
	}
	if fs.Changed("ext") {
		cfg.Extension = runFlags.ext
	}
	if fs.Changed("policy") {
		cfg.Selection.Policy = runFlags.policy
	}
	if fs.Changed("seed") {
		cfg.Selection.Seed = runFlags.seed
	}
	if fs.Changed("duration") {
		cfg.Clip.Duration = runFlags.duration
	}
	if fs.Changed("start") {
		start, err := timeutil.ParseTimeToSeconds(runFlags.start)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		cfg.Clip.Start = start
	}
	return nil
}

func newLogger(w io.Writer) zerolog.Logger {
	return logging.New(w, logging.Options{
		Verbose: globalFlags.verbose,
		JSON:    globalFlags.json,
		NoColor: globalFlags.noColor,
	})
}

// openHistory opens the run ledger at the configured path.
func openHistory(cfg *config.Config) (*sql.DB, error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	return database, nil
}
