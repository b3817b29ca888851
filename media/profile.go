package media

import (
	"fmt"
	"strconv"
)

// Profile is the normalization applied to every extracted segment and again
// at the join, so all segments share identical stream parameters.
type Profile struct {
	Width            int
	Height           int
	FPS              int
	Preset           string
	CRF              int
	ConcatCRF        int
	SampleRate       int
	Channels         int
	AudioBitrateKbps int
}

// DefaultProfile is a 540x960 portrait frame at 30 fps with 44.1 kHz stereo AAC.
func DefaultProfile() Profile {
	return Profile{
		Width:            540,
		Height:           960,
		FPS:              30,
		Preset:           "slow",
		CRF:              20,
		ConcatCRF:        18,
		SampleRate:       44100,
		Channels:         2,
		AudioBitrateKbps: 192,
	}
}

// videoFilter scales to fit inside the frame and pads the rest with black.
func (p Profile) videoFilter() string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black,setsar=1,fps=%d",
		p.Width, p.Height, p.Width, p.Height, p.FPS)
}

// videoArgs returns the encoder arguments shared by extraction and concat.
func (p Profile) videoArgs(crf int) []string {
	fps := strconv.Itoa(p.FPS)
	return []string{
		"-c:v", "libx264",
		"-preset", p.Preset,
		"-crf", strconv.Itoa(crf),
		"-pix_fmt", "yuv420p",
		"-r", fps,
		"-g", fps,
		"-keyint_min", fps,
		"-sc_threshold", "0",
		"-x264-params", fmt.Sprintf("keyint=%s:min-keyint=%s:scenecut=0", fps, fps),
	}
}

func (p Profile) audioArgs() []string {
	return []string{
		"-c:a", "aac",
		"-profile:a", "aac_low",
		"-ar", strconv.Itoa(p.SampleRate),
		"-ac", strconv.Itoa(p.Channels),
		"-b:a", fmt.Sprintf("%dk", p.AudioBitrateKbps),
		"-af", "aresample=async=1",
	}
}

// syncArgs keep timestamps monotonic and the frame rate constant.
func syncArgs() []string {
	return []string{
		"-avoid_negative_ts", "make_zero",
		"-fflags", "+genpts",
		"-fps_mode", "cfr",
	}
}
