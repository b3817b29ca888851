package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/dailyreel/pipeline"
	"github.com/user/dailyreel/tui/styles"
)

var Version = "0.1.0"

// globalFlags are the persistent flags shared by every command.
var globalFlags struct {
	configPath string
	verbose    bool
	json       bool
	noColor    bool
}

var rootCmd = &cobra.Command{
	Use:   "dailyreel",
	Short: "Compile one short clip per day into a single reel",
	Long: `dailyreel builds a "one second a day" video from a folder of recordings
named YYYY-MM-DD_<id>.mp4.

It picks one recording per calendar day, cuts a short normalized segment
from each with ffmpeg, checks every segment with ffprobe, and joins them
in date order into one video.

Commands:
  - compile  build the reel
  - plan     show which recording each day would use
  - history  list past runs
  - doctor   check ffmpeg, ffprobe and mpv
  - preview  play the reel in mpv`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dailyreel version %s\n", Version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&globalFlags.configPath, "config", "c", "", "config file (default ./"+configDefaultFile()+" if present)")
	pf.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "log debug output, including tool command lines")
	pf.BoolVar(&globalFlags.json, "json", false, "log JSON lines instead of console output")
	pf.BoolVar(&globalFlags.noColor, "no-color", false, "disable colored log output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Setup failures exit with status 2, every
// other failure with 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Warning.Render("Error:"), err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, pipeline.ErrFatalSetup) {
		return 2
	}
	return 1
}
