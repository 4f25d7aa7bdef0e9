package config

const (
	defaultLogDir                   = "~/.local/share/clipbatch/logs"
	defaultIDColumn                 = "id"
	defaultCutsColumn               = "cuts"
	defaultDelimiter                = ","
	defaultManifestTable            = "cuts"
	defaultFFmpegBinary             = "ffmpeg"
	defaultFFprobeBinary            = "ffprobe"
	defaultCutMode                  = CutModeDuration
	defaultSourceMatch              = MatchSubstring
	defaultIntensity                = IntensityMedium
	defaultBatchPauseSeconds        = 10
	defaultDurationToleranceSeconds = 1.0
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	defaultLogRetentionDays         = 30
)

// Cut modes.
const (
	CutModeDuration = "duration"
	CutModeTo       = "to"
)

// Source match strategies.
const (
	MatchSubstring = "substring"
	MatchExact     = "exact"
)

// Intensity tiers as offered by the interactive prompt.
const (
	IntensityLow    = 1
	IntensityMedium = 2
	IntensityHigh   = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Manifest: Manifest{
			IDColumn:   defaultIDColumn,
			CutsColumn: defaultCutsColumn,
			Delimiter:  defaultDelimiter,
			Table:      defaultManifestTable,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			CutMode:       defaultCutMode,
		},
		Source: Source{
			Match: defaultSourceMatch,
		},
		Workflow: Workflow{
			Intensity:                defaultIntensity,
			BatchPauseSeconds:        defaultBatchPauseSeconds,
			DurationToleranceSeconds: defaultDurationToleranceSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
