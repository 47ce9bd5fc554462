package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mediatrim/internal/media/tracks"
)

//go:embed sample_config.toml
var sampleConfig string

// Processing contains batching and execution settings.
type Processing struct {
	// BatchSize is the number of files grouped per execution batch.
	BatchSize int `toml:"batch_size"`
	// MaxWorkers caps concurrent remuxes within a batch. Zero means
	// one fewer than the CPU count, minimum one.
	MaxWorkers int `toml:"max_workers"`
	// FileLimit stops a run after that many files needing changes.
	// Zero means unlimited.
	FileLimit int `toml:"file_limit"`
	// Backup keeps a .bak copy of each original next to it.
	Backup bool `toml:"backup"`
	// Recursive walks subdirectories of the scan root.
	Recursive bool `toml:"recursive"`
	// TimeoutSeconds bounds each file's remux. Zero disables the bound.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// Extensions lists the eligible container extensions.
	Extensions []string `toml:"extensions"`
}

// TrackRule selects which tracks of one kind to strip. Exactly one of the
// two lists may be set.
type TrackRule struct {
	Process         bool     `toml:"process"`
	RemoveLanguages []string `toml:"remove_languages"`
	KeepLanguages   []string `toml:"keep_languages"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for mediatrim.
type Config struct {
	Processing Processing `toml:"processing"`
	Audio      TrackRule  `toml:"audio"`
	Subtitles  TrackRule  `toml:"subtitles"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mediatrim/config.toml")
}

// Load locates, parses, and validates a configuration file. When no file
// exists the defaults are returned with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mediatrim.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// MaxWorkers resolves the configured worker count. Zero falls back to one
// fewer than the CPU count, never below one.
func (c *Config) MaxWorkers() int {
	if c.Processing.MaxWorkers > 0 {
		return c.Processing.MaxWorkers
	}
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Timeout returns the per-file execution bound, zero when disabled.
func (c *Config) Timeout() time.Duration {
	if c.Processing.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Processing.TimeoutSeconds) * time.Second
}

// SelectionRules translates the configured sections into track selection
// rules.
func (c *Config) SelectionRules() tracks.Rules {
	return tracks.Rules{
		Audio: tracks.Rule{
			Remove: c.Audio.RemoveLanguages,
			Keep:   c.Audio.KeepLanguages,
		},
		Subtitle: tracks.Rule{
			Remove: c.Subtitles.RemoveLanguages,
			Keep:   c.Subtitles.KeepLanguages,
		},
		ProcessAudio:     c.Audio.Process,
		ProcessSubtitles: c.Subtitles.Process,
	}
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
