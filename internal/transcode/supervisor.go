package transcode

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"mediatrim/internal/fileutil"
	"mediatrim/internal/logging"
	"mediatrim/internal/media/ffprobe"
	"mediatrim/internal/savings"
	"mediatrim/internal/services"
	"mediatrim/internal/services/ffmpeg"
)

// Options controls how a single file is executed.
type Options struct {
	// DryRun reports the tracks that would be removed without launching the
	// transcoder or touching the filesystem.
	DryRun bool
	// Backup copies the original to a sibling .bak before replacing it.
	Backup bool
	// Timeout bounds one file's transcode; zero means no deadline. On expiry
	// the subprocess is killed and the failure is recorded as a timeout.
	Timeout time.Duration
}

// Outcome is the terminal record for one file.
type Outcome struct {
	Path          string
	Success       bool
	Changed       bool
	DryRun        bool
	RemovedTracks []int
	Savings       savings.Estimate
	Err           error
}

// DurationFunc resolves a file's total duration in seconds.
type DurationFunc func(ctx context.Context, path string) (float64, error)

// ProbeDuration returns a DurationFunc backed by the given ffprobe binary.
func ProbeDuration(binary string) DurationFunc {
	return func(ctx context.Context, path string) (float64, error) {
		result, err := ffprobe.Inspect(ctx, binary, path)
		if err != nil {
			return 0, err
		}
		return result.DurationSeconds(), nil
	}
}

// Supervisor executes the per-file remux state machine: probe duration,
// launch the transcoder against a sibling temp path, track progress, then
// finalize with an optional backup and an atomic same-directory rename.
type Supervisor struct {
	runner   ffmpeg.Runner
	duration DurationFunc
	logger   *slog.Logger
}

// NewSupervisor wires a Supervisor from its collaborators.
func NewSupervisor(runner ffmpeg.Runner, duration DurationFunc, logger *slog.Logger) *Supervisor {
	return &Supervisor{
		runner:   runner,
		duration: duration,
		logger:   logging.WithComponent(logger, "transcode"),
	}
}

// Execute processes one file. Every exit path that does not end in a
// successful replacement removes the temporary output; the cleanup is
// deferred so it also covers panics mid-loop. The progress callback receives
// completion percentages in [0, 100] and must not block.
func (s *Supervisor) Execute(ctx context.Context, path string, removeIndices []int, opts Options, progress func(percent float64)) Outcome {
	outcome := Outcome{Path: path, RemovedTracks: removeIndices}
	log := s.logger.With(logging.String(logging.FieldFile, path))

	if len(removeIndices) == 0 {
		outcome.Success = true
		log.Debug("no tracks to remove, skipping")
		return outcome
	}

	duration, err := s.duration(ctx, path)
	if err != nil {
		outcome.Err = services.Wrap(services.ErrDurationUnknown, "transcode", "probe duration", "", err)
		return outcome
	}
	if duration <= 0 {
		outcome.Err = services.Wrap(services.ErrDurationUnknown, "transcode", "probe duration", "container reports no duration", nil)
		return outcome
	}

	if opts.DryRun {
		outcome.Success = true
		outcome.DryRun = true
		log.Info("dry run, would remove tracks", logging.Int("tracks", len(removeIndices)))
		return outcome
	}

	tempPath := TempPath(path)
	if removed, err := fileutil.RemoveIfExists(tempPath); err != nil {
		outcome.Err = services.Wrap(services.ErrStaleTemp, "transcode", "clean stale temp", tempPath, err)
		return outcome
	} else if removed {
		log.Info("removed stale temp file from a previous run", logging.String("temp", tempPath))
	}

	execCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	committed := false
	defer func() {
		if !committed {
			if _, err := fileutil.RemoveIfExists(tempPath); err != nil {
				log.Warn("failed to remove temp file", logging.String("temp", tempPath), logging.Error(err))
			}
		}
	}()

	log.Info("remuxing", logging.Int("tracks_to_remove", len(removeIndices)))
	err = s.runner.Remux(execCtx, path, tempPath, removeIndices, func(p ffmpeg.Progress) {
		if progress != nil {
			progress(clampPercent(p.Seconds / duration * 100))
		}
	})
	if err != nil {
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			outcome.Err = services.Wrap(services.ErrTimeout, "transcode", "remux", opts.Timeout.String(), err)
		} else {
			outcome.Err = services.Wrap(services.ErrTranscode, "transcode", "remux", "", err)
		}
		return outcome
	}

	if opts.Backup {
		backupPath := BackupPath(path)
		if err := fileutil.CopyFile(path, backupPath); err != nil {
			outcome.Err = services.Wrap(services.ErrFinalize, "transcode", "backup", backupPath, err)
			return outcome
		}
	}

	if err := os.Rename(tempPath, path); err != nil {
		outcome.Err = services.Wrap(services.ErrFinalize, "transcode", "replace original", "", err)
		return outcome
	}
	committed = true

	if progress != nil {
		progress(100)
	}
	outcome.Success = true
	outcome.Changed = true
	log.Info("completed", logging.Int("tracks_removed", len(removeIndices)))
	return outcome
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
