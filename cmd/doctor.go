package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/dailyreel/config"
	"github.com/user/dailyreel/deps"
	"github.com/user/dailyreel/media"
	"github.com/user/dailyreel/tui/styles"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long: `Check that ffmpeg and ffprobe can be run, using the binaries named in the
config file. mpv is optional and only needed by preview.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(globalFlags.configPath)
		if err != nil {
			return err
		}

		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		for _, tool := range deps.MediaTools(cfg.Tools.FFmpeg, cfg.Tools.FFprobe) {
			versions, err := deps.Preflight(cmd.Context(), media.ExecRunner{}, []deps.Tool{tool})
			if err != nil {
				fmt.Println(styles.Warning.Render("✗ " + tool.Name + ": NOT WORKING"))
				var de *deps.DependencyError
				if errors.As(err, &de) && de.Err != nil {
					fmt.Printf("  %v\n", de.Err)
				}
				fmt.Printf("  Install from: %s\n", tool.InstallURL)
				allGood = false
				continue
			}
			fmt.Println(styles.Success.Render("✓ "+tool.Name+": OK") + "  " + styles.SecondaryText.Render(versions[tool.Name]))
		}

		if err := deps.CheckMpv(); err != nil {
			fmt.Println(styles.SecondaryText.Render("- mpv: not found (optional, used by preview)"))
			fmt.Printf("  Install from: %s\n", deps.MpvInstallURL)
		} else {
			fmt.Println(styles.Success.Render("✓ mpv: OK"))
		}

		fmt.Println()
		if !allGood {
			return errors.New("ffmpeg and ffprobe are required to compile a reel")
		}
		fmt.Println("All required dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
