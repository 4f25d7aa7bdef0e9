package deps

import (
	"strings"

	"clipbatch/internal/config"
)

// Requirements lists the external tools a run needs. ffprobe is required only
// when duration verification is enabled.
func Requirements(cfg *config.Config) []Requirement {
	ffmpegBinary, ffprobeBinary, verify := "ffmpeg", "ffprobe", false
	if cfg != nil {
		if b := strings.TrimSpace(cfg.FFmpeg.Binary); b != "" {
			ffmpegBinary = b
		}
		if b := strings.TrimSpace(cfg.FFmpeg.FFprobeBinary); b != "" {
			ffprobeBinary = b
		}
		verify = cfg.Workflow.VerifyDuration
	}
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegBinary,
			Description: "Required for cutting and joining clips",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeBinary,
			Description: "Required when workflow.verify_duration is enabled",
			Optional:    !verify,
			VersionArgs: []string{"-hide_banner", "-version"},
		},
	}
}
