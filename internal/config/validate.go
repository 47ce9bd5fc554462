package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProcessing(); err != nil {
		return err
	}
	if err := c.Audio.validate("audio"); err != nil {
		return err
	}
	if err := c.Subtitles.validate("subtitles"); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProcessing() error {
	if c.Processing.BatchSize < 1 {
		return errors.New("processing.batch_size must be positive")
	}
	if c.Processing.MaxWorkers < 0 {
		return errors.New("processing.max_workers must be >= 0")
	}
	if c.Processing.FileLimit < 0 {
		return errors.New("processing.file_limit must be >= 0")
	}
	if c.Processing.TimeoutSeconds < 0 {
		return errors.New("processing.timeout_seconds must be >= 0")
	}
	if len(c.Processing.Extensions) == 0 {
		return errors.New("processing.extensions must include at least one extension")
	}
	return nil
}

func (r *TrackRule) validate(section string) error {
	if len(r.RemoveLanguages) > 0 && len(r.KeepLanguages) > 0 {
		return fmt.Errorf("%s.remove_languages and %s.keep_languages are mutually exclusive", section, section)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
