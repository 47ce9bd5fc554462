package config

const (
	defaultBatchSize = 3
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// defaultExtensions are the container formats scanned for trimmable tracks.
var defaultExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".wmv"}

// Default returns a Config populated with repository defaults. Both track
// kinds are processed but nothing is selected for removal, so a default run
// changes no files until rules are supplied.
func Default() Config {
	return Config{
		Processing: Processing{
			BatchSize:  defaultBatchSize,
			Extensions: append([]string(nil), defaultExtensions...),
		},
		Audio: TrackRule{
			Process: true,
		},
		Subtitles: TrackRule{
			Process: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
