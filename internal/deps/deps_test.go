package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mediatrim/internal/services"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary flagged, got %#v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected blank command flagged, got %#v", results[2])
	}
}

func TestVerifyReportsMissingDependency(t *testing.T) {
	err := Verify(Required("definitely-no-such-ffmpeg", "definitely-no-such-ffprobe"))
	if err == nil {
		t.Fatal("expected verification failure")
	}
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency marker, got %v", err)
	}
	if !services.IsRunFatal(err) {
		t.Fatal("missing dependency must abort the run")
	}
}

func TestVerifyPassesWithStubs(t *testing.T) {
	binDir := t.TempDir()
	ffmpeg := writeStub(t, binDir, "ffmpeg")
	ffprobe := writeStub(t, binDir, "ffprobe")

	if err := Verify(Required(ffmpeg, ffprobe)); err != nil {
		t.Fatalf("expected verification to pass, got %v", err)
	}
}
