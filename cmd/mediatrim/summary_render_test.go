package main

import (
	"strings"
	"testing"

	"mediatrim/internal/batch"
)

func TestRenderSummaryIncludesCountsAndErrors(t *testing.T) {
	rendered := renderSummary(batch.Summary{
		TotalFiles:         12,
		FilesScanned:       10,
		NeedingChanges:     4,
		Successful:         3,
		Failed:             1,
		TotalOriginalBytes: 2 << 30,
		TotalSavingsBytes:  1 << 30,
		Errors:             []string{"/m/bad.mkv: remux blew up"},
	})

	for _, want := range []string{"Files found", "12", "Files scanned", "10", "1.0 GiB", "50.0%", "remux blew up"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("summary missing %q:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "Dry run") {
		t.Fatal("dry run banner should be absent")
	}
}

func TestRenderSummaryDryRunBanner(t *testing.T) {
	rendered := renderSummary(batch.Summary{DryRun: true})
	if !strings.Contains(rendered, "Dry run: no files were modified") {
		t.Fatalf("missing dry run banner:\n%s", rendered)
	}
}

func TestFormatSavingsWithoutBaseline(t *testing.T) {
	if got := formatSavings(1024, 0); got != "1.0 KiB" {
		t.Fatalf("got %q", got)
	}
}

func TestLanguageName(t *testing.T) {
	cases := map[string]string{
		"eng": "English (eng)",
		"und": "Unknown (und)",
		"":    "Unknown (und)",
	}
	for code, want := range cases {
		if got := languageName(code); got != want {
			t.Fatalf("languageName(%q) = %q, want %q", code, got, want)
		}
	}
	if got := languageName("!!"); got != "!!" {
		t.Fatalf("unparseable code should pass through, got %q", got)
	}
}
