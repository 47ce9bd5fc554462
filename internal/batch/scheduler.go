package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"mediatrim/internal/logging"
	"mediatrim/internal/media/ffprobe"
	"mediatrim/internal/media/tracks"
	"mediatrim/internal/savings"
	"mediatrim/internal/transcode"
)

// Inspector probes a file and returns its removable-track inventory.
type Inspector interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, []tracks.Track, error)
}

// Estimator projects the bytes a file would shed under the active rules.
type Estimator interface {
	Estimate(path string, probe ffprobe.Result, rules tracks.Rules) (savings.Estimate, error)
}

// Executor carries out the remux for a single file.
type Executor interface {
	Execute(ctx context.Context, path string, removeIndices []int, opts transcode.Options, progress func(percent float64)) transcode.Outcome
}

// Job is a file the analysis phase decided to modify.
type Job struct {
	Path          string
	RemoveIndices []int
	Estimate      savings.Estimate
}

// Summary aggregates one run.
type Summary struct {
	RunID              string
	TotalFiles         int
	FilesScanned       int
	NeedingChanges     int
	Successful         int
	Failed             int
	TotalOriginalBytes int64
	TotalSavingsBytes  int64
	Errors             []string
	DryRun             bool
}

// Options bound a run.
type Options struct {
	Rules tracks.Rules
	// Execution settings forwarded to every file.
	Transcode transcode.Options
	// BatchSize is the number of files grouped per execution batch.
	BatchSize int
	// MaxWorkers caps concurrent remuxes within a batch.
	MaxWorkers int
	// FileLimit, when positive, stops analysis after that many files
	// needing changes have been collected.
	FileLimit int
}

const DefaultBatchSize = 3

// Scheduler runs the two phases of a trimming run. Analysis is sequential,
// one probe per file. Execution groups the resulting jobs into batches and
// drains each batch completely before starting the next.
type Scheduler struct {
	inspector Inspector
	estimator Estimator
	executor  Executor
	reporter  Reporter
	logger    *slog.Logger
}

func NewScheduler(inspector Inspector, estimator Estimator, executor Executor, reporter Reporter, logger *slog.Logger) *Scheduler {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{
		inspector: inspector,
		estimator: estimator,
		executor:  executor,
		reporter:  reporter,
		logger:    logging.WithComponent(logger, "batch"),
	}
}

// Run analyzes paths and executes the files needing changes. It returns a
// populated Summary even when the context is canceled partway through.
func (s *Scheduler) Run(ctx context.Context, paths []string, opts Options) Summary {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 1
	}

	summary := Summary{
		RunID:      uuid.NewString(),
		TotalFiles: len(paths),
		DryRun:     opts.Transcode.DryRun,
	}
	logger := s.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	logger.Info("run started",
		logging.Int("files", len(paths)),
		logging.Int("batch_size", opts.BatchSize),
		logging.Int("max_workers", opts.MaxWorkers),
		logging.Bool("dry_run", summary.DryRun))

	jobs := s.analyze(ctx, paths, opts, &summary, logger)
	if len(jobs) > 0 && ctx.Err() == nil {
		s.execute(ctx, jobs, opts, &summary, logger)
	}

	logger.Info("run finished",
		logging.Int("scanned", summary.FilesScanned),
		logging.Int("needing_changes", summary.NeedingChanges),
		logging.Int("successful", summary.Successful),
		logging.Int("failed", summary.Failed))
	return summary
}

func (s *Scheduler) analyze(ctx context.Context, paths []string, opts Options, summary *Summary, logger *slog.Logger) []Job {
	s.reporter.AnalysisStarted(len(paths))

	var jobs []Job
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		summary.FilesScanned++

		probe, list, err := s.inspector.Inspect(ctx, path)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", path, err))
			logger.Warn("analysis failed", logging.String(logging.FieldFile, path), logging.Error(err))
			continue
		}

		remove := tracks.SelectAll(list, opts.Rules)
		if len(remove) == 0 {
			logger.Debug("no matching tracks", logging.String(logging.FieldFile, path))
			continue
		}

		estimate, err := s.estimator.Estimate(path, probe, opts.Rules)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", path, err))
			logger.Warn("estimation failed", logging.String(logging.FieldFile, path), logging.Error(err))
			continue
		}

		summary.NeedingChanges++
		summary.TotalOriginalBytes += estimate.OriginalSize
		summary.TotalSavingsBytes += estimate.TotalBytes
		jobs = append(jobs, Job{Path: path, RemoveIndices: remove, Estimate: estimate})

		if opts.FileLimit > 0 && len(jobs) >= opts.FileLimit {
			logger.Info("file limit reached", logging.Int("limit", opts.FileLimit))
			break
		}
	}

	s.reporter.AnalysisCompleted(len(jobs), summary.FilesScanned-len(jobs))
	return jobs
}

func (s *Scheduler) execute(ctx context.Context, jobs []Job, opts Options, summary *Summary, logger *slog.Logger) {
	batches := splitBatches(jobs, opts.BatchSize)

	for number, batch := range batches {
		if ctx.Err() != nil {
			break
		}
		s.reporter.BatchStarted(number+1, len(batches), len(batch))
		logger.Info("batch started",
			logging.Int("batch", number+1),
			logging.Int("batches", len(batches)),
			logging.Int("size", len(batch)))

		for _, outcome := range s.runBatch(ctx, batch, opts) {
			if outcome.Success {
				summary.Successful++
			} else {
				summary.Failed++
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", outcome.Path, outcome.Err))
			}
		}
	}
}

// runBatch fans the batch out to at most min(len(batch), MaxWorkers)
// goroutines and collects every outcome before returning. Aggregation
// happens only here, on the collecting goroutine.
func (s *Scheduler) runBatch(ctx context.Context, batch []Job, opts Options) []transcode.Outcome {
	workers := opts.MaxWorkers
	if workers > len(batch) {
		workers = len(batch)
	}

	work := make(chan Job)
	results := make(chan transcode.Outcome, len(batch))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range work {
				s.reporter.FileStarted(job.Path)
				outcome := s.executor.Execute(ctx, job.Path, job.RemoveIndices, opts.Transcode, func(pct float64) {
					s.reporter.FileProgress(job.Path, pct)
				})
				outcome.Savings = job.Estimate
				s.reporter.FileCompleted(outcome)
				results <- outcome
			}
		}()
	}

	for _, job := range batch {
		work <- job
	}
	close(work)
	wg.Wait()
	close(results)

	outcomes := make([]transcode.Outcome, 0, len(batch))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Path < outcomes[j].Path })
	return outcomes
}

func splitBatches(jobs []Job, size int) [][]Job {
	var batches [][]Job
	for start := 0; start < len(jobs); start += size {
		end := start + size
		if end > len(jobs) {
			end = len(jobs)
		}
		batches = append(batches, jobs[start:end])
	}
	return batches
}
