package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/db"
	"github.com/user/dailyreel/logging"
	"github.com/user/dailyreel/media"
	"github.com/user/dailyreel/pipeline"
	"github.com/user/dailyreel/tui"
	"github.com/user/dailyreel/tui/forms"
)

var compileFlags struct {
	dryRun     bool
	yes        bool
	noProgress bool
	noHistory  bool
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Build the daily reel",
	Long: `Pick one recording per day, cut a short segment from each, and join the
segments in date order into the output video.

Days whose segment cannot be extracted or fails validation are skipped with
a warning. The run fails only when no segment survives or the final join
fails; in both cases an existing output file is left untouched.`,
	Example: `  dailyreel compile
  dailyreel compile -s ~/Videos/daily -o year.mp4 --policy first
  dailyreel compile --seed 42 --duration 1 --start 0:02`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd.Flags())
		if err != nil {
			return err
		}
		if compileFlags.dryRun {
			return printPlan(cfg)
		}

		if info, err := os.Stat(cfg.Output); err == nil && !compileFlags.yes &&
			logging.IsTerminal(os.Stdin) && logging.IsTerminal(os.Stdout) {
			overwrite := false
			if err := forms.NewConfirmOverwriteForm(cfg.Output, info.Size(), &overwrite).Run(); err != nil {
				return err
			}
			if !overwrite {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		// The progress view owns the terminal while it runs; log lines are
		// held back and flushed once it exits.
		progress := !compileFlags.noProgress && !globalFlags.json && logging.IsTerminal(os.Stdout)
		var held bytes.Buffer
		var logOut io.Writer = os.Stderr
		if progress {
			logOut = &held
		}
		log := newLogger(logOut)

		d, err := pipeline.New(cfg, media.ExecRunner{}, log)
		if err != nil {
			return err
		}
		if cfg.Selection.Policy == corpus.PolicyRandom {
			log.Info().Int64("seed", cfg.Selection.Seed).Msg("random selection")
		}

		var observers pipeline.Observers
		if !progress {
			observers = append(observers, pipeline.LogObserver{Log: log})
		}
		if cfg.History.Enabled && !compileFlags.noHistory {
			database, err := openHistory(cfg)
			if err != nil {
				log.Warn().Err(err).Msg("run history disabled")
			} else {
				defer database.Close()
				observers = append(observers, &db.Recorder{DB: database, Config: cfg, Log: log})
			}
		}
		d.Observer = observers

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var rep *pipeline.Report
		var runErr error
		if progress {
			rep, runErr = tui.RunCompile(ctx, d)
			io.Copy(os.Stderr, &held)
		} else {
			rep, runErr = d.Run(ctx)
		}

		if !globalFlags.json {
			fmt.Println(tui.RenderReport(rep, runErr, 0))
		}
		return runErr
	},
}

func init() {
	fs := compileCmd.Flags()
	addSelectionFlags(fs)
	addClipFlags(fs)
	fs.BoolVar(&compileFlags.dryRun, "dry-run", false, "print the per-day selection and exit without running ffmpeg")
	fs.BoolVarP(&compileFlags.yes, "yes", "y", false, "overwrite an existing output without asking")
	fs.BoolVar(&compileFlags.noProgress, "no-progress", false, "log progress lines instead of the live view")
	fs.BoolVar(&compileFlags.noHistory, "no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(compileCmd)
}
