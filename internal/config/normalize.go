package config

import (
	"fmt"
	"strings"

	"mediatrim/internal/language"
)

func (c *Config) normalize() error {
	c.normalizeProcessing()
	c.Audio.normalize()
	c.Subtitles.normalize()
	return c.normalizeLogging()
}

func (c *Config) normalizeProcessing() {
	if c.Processing.BatchSize == 0 {
		c.Processing.BatchSize = defaultBatchSize
	}
	if len(c.Processing.Extensions) == 0 {
		c.Processing.Extensions = append([]string(nil), defaultExtensions...)
	}
	normalized := c.Processing.Extensions[:0]
	for _, ext := range c.Processing.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Processing.Extensions = normalized
}

func (r *TrackRule) normalize() {
	r.RemoveLanguages = language.NormalizeList(r.RemoveLanguages)
	r.KeepLanguages = language.NormalizeList(r.KeepLanguages)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
