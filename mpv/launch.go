// Package mpv opens compiled reels in the mpv player.
package mpv

import (
	"context"
	"os/exec"

	"github.com/user/dailyreel/deps"
)

// Options controls how a reel is played back.
type Options struct {
	Loop       bool
	Fullscreen bool
	// Mute starts playback without audio.
	Mute bool
}

// Args builds the mpv command line for videoPath.
func Args(videoPath string, opts Options) []string {
	args := []string{"--keep-open=no", "--force-window=yes"}
	if opts.Loop {
		args = append(args, "--loop-file=inf")
	}
	if opts.Fullscreen {
		args = append(args, "--fullscreen")
	}
	if opts.Mute {
		args = append(args, "--mute=yes")
	}
	return append(args, "--", videoPath)
}

// LaunchMpv starts mpv on videoPath.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process so the caller can Wait on it.
func LaunchMpv(ctx context.Context, videoPath string, opts Options) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "mpv", Args(videoPath, opts)...)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
