package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int         `json:"index"`
	CodecName   string      `json:"codec_name"`
	CodecType   string      `json:"codec_type"`
	BitRate     string      `json:"bit_rate"`
	Tags        Tags        `json:"tags"`
	Disposition Disposition `json:"disposition"`
}

// Tags carries the container tags relevant to track selection. BPS is the
// Matroska statistics tag some muxers write instead of a stream bit_rate.
type Tags struct {
	Language string `json:"language"`
	Title    string `json:"title"`
	BPS      string `json:"BPS"`
	BitRate  string `json:"bit_rate"`
}

// Disposition mirrors ffprobe's per-stream disposition flags (0 or 1).
type Disposition struct {
	Default int `json:"default"`
	Forced  int `json:"forced"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response. It spawns exactly one subprocess per call and performs no
// filesystem writes.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-print_format", "json", "-show_format", "-show_streams", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration in seconds, or 0 when
// absent or unparseable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when
// unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if size < 0 {
		return 0
	}
	return int64(size)
}

// Language returns the stream's lowercase language tag, defaulting to "und"
// when the tag is absent.
func (s Stream) Language() string {
	lang := strings.ToLower(strings.TrimSpace(s.Tags.Language))
	if lang == "" {
		return "und"
	}
	return lang
}

// BitsPerSecond returns the stream's average bit rate, preferring the
// stream-level bit_rate and falling back to the BPS / bit_rate container
// tags. Zero means the rate is unknown.
func (s Stream) BitsPerSecond() int64 {
	for _, candidate := range []string{s.BitRate, s.Tags.BPS, s.Tags.BitRate} {
		if rate := parseFloat(candidate); rate > 0 {
			return int64(rate)
		}
	}
	return 0
}

// IsDefault reports whether the stream carries the default disposition.
func (s Stream) IsDefault() bool { return s.Disposition.Default == 1 }

// IsForced reports whether the stream carries the forced disposition.
func (s Stream) IsForced() bool { return s.Disposition.Forced == 1 }

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return 0
}
