package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"mediatrim/internal/transcode"
)

// runReporter narrates a run on the terminal. With a TTY it drives a single
// progress bar across all files needing changes; otherwise it falls back to
// one line per event. Worker goroutines call FileStarted, FileProgress, and
// FileCompleted concurrently.
type runReporter struct {
	out   io.Writer
	plain bool

	mu   sync.Mutex
	jobs int
	bar  *progressbar.ProgressBar
}

func newRunReporter(out io.Writer, noProgress bool) *runReporter {
	return &runReporter{
		out:   out,
		plain: noProgress || !isatty.IsTerminal(os.Stderr.Fd()),
	}
}

func (r *runReporter) AnalysisStarted(totalFiles int) {
	fmt.Fprintf(r.out, "Analyzing %d files...\n", totalFiles)
}

func (r *runReporter) AnalysisCompleted(jobs, skipped int) {
	r.mu.Lock()
	r.jobs = jobs
	r.mu.Unlock()
	fmt.Fprintf(r.out, "%d files need changes, %d already clean\n", jobs, skipped)
}

func (r *runReporter) BatchStarted(number, total, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plain {
		fmt.Fprintf(r.out, "Batch %d/%d (%d files)\n", number, total, size)
		return
	}
	if r.bar == nil {
		r.bar = progressbar.NewOptions(r.jobs,
			progressbar.OptionSetDescription("Trimming"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		)
	}
}

func (r *runReporter) FileStarted(path string) {
	if !r.plain {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "  processing %s\n", filepath.Base(path))
}

func (r *runReporter) FileProgress(string, float64) {}

func (r *runReporter) FileCompleted(outcome transcode.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
	if !r.plain {
		return
	}
	name := filepath.Base(outcome.Path)
	switch {
	case !outcome.Success:
		fmt.Fprintf(r.out, "  failed %s: %v\n", name, outcome.Err)
	case outcome.DryRun:
		fmt.Fprintf(r.out, "  would trim %d tracks from %s, reclaiming %s\n",
			len(outcome.RemovedTracks), name, humanize.IBytes(uint64(outcome.Savings.TotalBytes)))
	case outcome.Changed:
		fmt.Fprintf(r.out, "  trimmed %d tracks from %s, reclaimed %s\n",
			len(outcome.RemovedTracks), name, humanize.IBytes(uint64(outcome.Savings.TotalBytes)))
	}
}
