package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Progress carries one parsed progress event from the transcoder's output
// stream. Seconds is the elapsed source time ffmpeg reports via time= markers.
type Progress struct {
	Seconds float64
}

// Runner launches a stream-copy remux writing to a destination path.
type Runner interface {
	Remux(ctx context.Context, inputPath, outputPath string, removeIndices []int, progress func(Progress)) error
}

// Option configures the CLI runner.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line transcoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI runner using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// BuildArgs assembles the remux argument list: keep every stream, exclude the
// given indices explicitly, and copy codec bitstreams unchanged.
func BuildArgs(inputPath, outputPath string, removeIndices []int) []string {
	args := []string{"-nostdin", "-i", inputPath, "-loglevel", "info", "-stats", "-map", "0"}
	for _, index := range removeIndices {
		args = append(args, "-map", "-0:"+strconv.Itoa(index))
	}
	return append(args, "-c", "copy", outputPath)
}

// Remux launches ffmpeg and blocks until it exits, forwarding parsed
// progress events as they arrive. The progress callback runs on the reader
// goroutine's path and must not block. On a non-zero exit the returned error
// carries the tail of the tool's diagnostic output.
func (c *CLI) Remux(ctx context.Context, inputPath, outputPath string, removeIndices []int, progress func(Progress)) error {
	if strings.TrimSpace(inputPath) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	cmd := commandContext(ctx, c.binary, BuildArgs(inputPath, outputPath, removeIndices)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	var tail diagnosticTail
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanStatsLines)
	for scanner.Scan() {
		line := scanner.Text()
		tail.add(line)
		if seconds, ok := ParseElapsed(line); ok && progress != nil {
			progress(Progress{Seconds: seconds})
		}
	}
	readErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		if detail := tail.String(); detail != "" {
			return fmt.Errorf("ffmpeg remux failed: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg remux failed: %w", err)
	}
	if readErr != nil {
		return fmt.Errorf("read ffmpeg output: %w", readErr)
	}
	return nil
}

// diagnosticTail keeps the most recent output lines for error reporting;
// stats lines are skipped so the tail stays meaningful.
type diagnosticTail struct {
	lines []string
}

const tailCapacity = 20

func (d *diagnosticTail) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if _, ok := ParseElapsed(line); ok {
		return
	}
	d.lines = append(d.lines, line)
	if len(d.lines) > tailCapacity {
		d.lines = d.lines[len(d.lines)-tailCapacity:]
	}
}

func (d *diagnosticTail) String() string {
	return strings.Join(d.lines, "; ")
}

var _ Runner = (*CLI)(nil)
