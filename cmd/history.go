package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/dailyreel/config"
	"github.com/user/dailyreel/db"
	"github.com/user/dailyreel/pkg/timeutil"
)

var historyFlags struct {
	limit     int
	olderThan time.Duration
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past compile runs",
	Long:  `List past compile runs recorded in the history database, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openHistoryFromConfig()
		if err != nil {
			return err
		}
		defer database.Close()

		runs, err := db.SelectRuns(database, historyFlags.limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tStarted\tStatus\tClips\tSkipped\tSize\tOutput")
		fmt.Fprintln(w, "--\t-------\t------\t-----\t-------\t----\t------")
		for _, r := range runs {
			size := "-"
			if r.OutputSize > 0 {
				size = humanize.Bytes(uint64(r.OutputSize))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				shortRunID(r.ID), humanize.Time(r.StartedAt), r.Status,
				r.ClipCount, r.SkippedCount, size, r.OutputPath)
		}
		w.Flush()
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the days of one run",
	Long:  `Show the settings of one run and the recording used or skipped for each day. The run ID may be abbreviated.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openHistoryFromConfig()
		if err != nil {
			return err
		}
		defer database.Close()

		run, err := db.SelectRunByPrefix(database, args[0])
		if err != nil {
			return err
		}
		clips, err := db.SelectRunClips(database, run.ID)
		if err != nil {
			return err
		}

		fmt.Printf("Run      %s\n", run.ID)
		fmt.Printf("Started  %s (%s)\n", run.StartedAt.Format(time.DateTime), humanize.Time(run.StartedAt))
		fmt.Printf("Elapsed  %s\n", timeutil.FormatElapsed(run.FinishedAt.Sub(run.StartedAt)))
		fmt.Printf("Source   %s\n", run.SourceDir)
		fmt.Printf("Output   %s\n", run.OutputPath)
		fmt.Printf("Policy   %s (seed %d)\n", run.Policy, run.Seed)
		fmt.Printf("Status   %s\n", run.Status)
		if run.Error != "" {
			fmt.Printf("Error    %s\n", run.Error)
		}
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Day\tStatus\tStage\tRecording\tReason")
		fmt.Fprintln(w, "---\t------\t-----\t---------\t------")
		for _, c := range clips {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Day, c.Status, c.Stage, c.SourcePath, c.Reason)
		}
		w.Flush()
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs from the history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyFlags.olderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		database, err := openHistoryFromConfig()
		if err != nil {
			return err
		}
		defer database.Close()

		n, err := db.DeleteRunsBefore(database, time.Now().Add(-historyFlags.olderThan))
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d run(s)\n", n)
		return nil
	},
}

func openHistoryFromConfig() (*sql.DB, error) {
	cfg, err := config.Load(globalFlags.configPath)
	if err != nil {
		return nil, err
	}
	return openHistory(cfg)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "number of runs to list")
	historyPruneCmd.Flags().DurationVar(&historyFlags.olderThan, "older-than", 90*24*time.Hour, "delete runs started longer ago than this")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
