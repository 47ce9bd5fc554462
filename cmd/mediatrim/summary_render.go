package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"mediatrim/internal/batch"
)

func renderSummary(summary batch.Summary) string {
	headers := []string{"Metric", "Value"}
	rows := [][]string{
		{"Files found", fmt.Sprintf("%d", summary.TotalFiles)},
		{"Files scanned", fmt.Sprintf("%d", summary.FilesScanned)},
		{"Needing changes", fmt.Sprintf("%d", summary.NeedingChanges)},
		{"Successful", fmt.Sprintf("%d", summary.Successful)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
		{"Estimated savings", formatSavings(summary.TotalSavingsBytes, summary.TotalOriginalBytes)},
	}

	var b strings.Builder
	if summary.DryRun {
		b.WriteString("Dry run: no files were modified\n")
	}
	b.WriteString(renderTable(headers, rows, []columnAlignment{alignLeft, alignRight}))

	if len(summary.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for _, msg := range summary.Errors {
			b.WriteString("  " + msg + "\n")
		}
	}
	return b.String()
}

func formatSavings(savedBytes, originalBytes int64) string {
	if originalBytes <= 0 {
		return humanize.IBytes(uint64(max64(savedBytes, 0)))
	}
	percent := float64(savedBytes) / float64(originalBytes) * 100
	return fmt.Sprintf("%s of %s (%.1f%%)",
		humanize.IBytes(uint64(max64(savedBytes, 0))),
		humanize.IBytes(uint64(originalBytes)),
		percent)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
