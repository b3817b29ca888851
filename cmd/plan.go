package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/dailyreel/config"
	"github.com/user/dailyreel/corpus"
	"github.com/user/dailyreel/media"
	"github.com/user/dailyreel/pipeline"
	"github.com/user/dailyreel/pkg/timeutil"
	"github.com/user/dailyreel/tui/styles"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show which recording each day would use",
	Long: `Scan the source directory, group recordings by the date in their file
name and print the recording selected for every day, in reel order.
No ffmpeg or ffprobe process is started.

With the random policy pass --seed to see the same choice compile makes
with that seed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd.Flags())
		if err != nil {
			return err
		}
		return printPlan(cfg)
	},
}

func printPlan(cfg *config.Config) error {
	d, err := pipeline.New(cfg, media.ExecRunner{}, newLogger(os.Stderr))
	if err != nil {
		return err
	}
	plan, err := d.Plan()
	if err != nil {
		return err
	}

	if len(plan.Selections) == 0 {
		fmt.Printf("No dated %s recordings in %s\n", cfg.Extension, cfg.SourceDir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDate\tRecording\tCandidates")
	fmt.Fprintln(w, "-\t----\t---------\t----------")
	for i, sel := range plan.Selections {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, sel.Date.Format(corpus.DateLayout), filepath.Base(sel.File.Path), sel.Candidates)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(styles.SecondaryText.Render(fmt.Sprintf(
		"%d days from %d files (%d undated), policy %s, seed %d, estimated length %s",
		len(plan.Selections), len(plan.Files), plan.Undated,
		cfg.Selection.Policy, cfg.Selection.Seed,
		timeutil.FormatTime(cfg.EstimatedDuration(len(plan.Selections))),
	)))
	return nil
}

func init() {
	addSelectionFlags(planCmd.Flags())
	rootCmd.AddCommand(planCmd)
}
