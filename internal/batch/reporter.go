package batch

import "mediatrim/internal/transcode"

// Reporter receives run milestones for user-facing output. Implementations
// must be safe for concurrent use: FileStarted, FileProgress, and
// FileCompleted are invoked from worker goroutines.
type Reporter interface {
	AnalysisStarted(totalFiles int)
	AnalysisCompleted(jobs, skipped int)
	BatchStarted(number, total, size int)
	FileStarted(path string)
	FileProgress(path string, percent float64)
	FileCompleted(outcome transcode.Outcome)
}

// NopReporter discards all milestones.
type NopReporter struct{}

func (NopReporter) AnalysisStarted(int)             {}
func (NopReporter) AnalysisCompleted(int, int)      {}
func (NopReporter) BatchStarted(int, int, int)      {}
func (NopReporter) FileStarted(string)              {}
func (NopReporter) FileProgress(string, float64)    {}
func (NopReporter) FileCompleted(transcode.Outcome) {}
