package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/dailyreel/config"
	"github.com/user/dailyreel/mpv"
)

var previewFlags mpv.Options

var previewCmd = &cobra.Command{
	Use:   "preview [video-file]",
	Short: "Play the compiled reel in mpv",
	Long:  `Open a reel in mpv. Without an argument the configured output file is played.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath := ""
		if len(args) == 1 {
			videoPath = args[0]
		} else {
			cfg, err := config.Load(globalFlags.configPath)
			if err != nil {
				return err
			}
			videoPath = cfg.Output
		}

		// Resolve to absolute path
		absPath, err := filepath.Abs(videoPath)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		info, err := os.Stat(absPath)
		if os.IsNotExist(err) {
			return fmt.Errorf("video file not found: %s (run 'dailyreel compile' first)", absPath)
		}
		if err != nil {
			return fmt.Errorf("failed to access video file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("path is a directory, not a video file: %s", absPath)
		}

		fmt.Printf("Opening video: %s\n", filepath.Base(absPath))
		process, err := mpv.LaunchMpv(cmd.Context(), absPath, previewFlags)
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}

		// Wait for mpv to exit
		return process.Wait()
	},
}

func init() {
	previewCmd.Flags().BoolVarP(&previewFlags.Loop, "loop", "l", false, "loop playback")
	previewCmd.Flags().BoolVarP(&previewFlags.Fullscreen, "fullscreen", "f", false, "start fullscreen")
	previewCmd.Flags().BoolVar(&previewFlags.Mute, "mute", false, "start muted")
	rootCmd.AddCommand(previewCmd)
}
