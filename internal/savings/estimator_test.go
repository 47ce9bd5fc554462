package savings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mediatrim/internal/logging"
	"mediatrim/internal/media/ffprobe"
	"mediatrim/internal/media/tracks"
	"mediatrim/internal/services"
)

func writeSample(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movie.mkv")
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func allRules() tracks.Rules {
	return tracks.Rules{
		Audio:            tracks.Rule{Keep: []string{"eng"}},
		Subtitle:         tracks.Rule{Remove: []string{"ger"}},
		ProcessAudio:     true,
		ProcessSubtitles: true,
	}
}

func TestEstimateAdditivity(t *testing.T) {
	path := writeSample(t, 4096)
	probe := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 0, CodecType: "video"},
			{Index: 1, CodecType: "audio", BitRate: "800", Tags: ffprobe.Tags{Language: "jpn"}},
			{Index: 2, CodecType: "audio", BitRate: "400", Tags: ffprobe.Tags{Language: "eng"}},
			{Index: 3, CodecType: "subtitle", Tags: ffprobe.Tags{Language: "ger", BPS: "80"}},
		},
		Format: ffprobe.Format{Duration: "10"},
	}

	estimator := NewEstimator(logging.NewNop())
	estimate, err := estimator.Estimate(path, probe, allRules())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	// jpn audio: 800 * 10 / 8 = 1000 bytes; ger subtitle: 80 * 10 / 8 = 100.
	audio := estimate.ByKind[tracks.KindAudio]
	if audio.Bytes != 1000 || audio.Tracks != 1 {
		t.Fatalf("unexpected audio savings: %+v", audio)
	}
	sub := estimate.ByKind[tracks.KindSubtitle]
	if sub.Bytes != 100 || sub.Tracks != 1 {
		t.Fatalf("unexpected subtitle savings: %+v", sub)
	}
	if estimate.TotalBytes != audio.Bytes+sub.Bytes {
		t.Fatalf("total %d does not equal per-kind sum %d", estimate.TotalBytes, audio.Bytes+sub.Bytes)
	}
	if estimate.TotalBytes > estimate.OriginalSize {
		t.Fatalf("savings %d exceed original size %d", estimate.TotalBytes, estimate.OriginalSize)
	}
	if estimate.OriginalSize != 4096 {
		t.Fatalf("unexpected original size %d", estimate.OriginalSize)
	}
}

func TestEstimateUnknownBitrateContributesZero(t *testing.T) {
	path := writeSample(t, 2048)
	probe := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 1, CodecType: "audio", Tags: ffprobe.Tags{Language: "jpn"}},
		},
		Format: ffprobe.Format{Duration: "10"},
	}

	estimate, err := NewEstimator(logging.NewNop()).Estimate(path, probe, allRules())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	audio := estimate.ByKind[tracks.KindAudio]
	if audio.Tracks != 1 || audio.Bytes != 0 {
		t.Fatalf("expected one zero-byte track, got %+v", audio)
	}
}

func TestEstimateNoQualifyingTracks(t *testing.T) {
	path := writeSample(t, 1024)
	probe := ffprobe.Result{
		Streams: []ffprobe.Stream{{Index: 0, CodecType: "video"}},
		Format:  ffprobe.Format{Duration: "10"},
	}

	estimate, err := NewEstimator(logging.NewNop()).Estimate(path, probe, allRules())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if estimate.TotalBytes != 0 {
		t.Fatalf("expected zero savings, got %d", estimate.TotalBytes)
	}
}

func TestEstimateFailsWithoutDuration(t *testing.T) {
	path := writeSample(t, 1024)
	probe := ffprobe.Result{
		Streams: []ffprobe.Stream{{Index: 1, CodecType: "audio", BitRate: "100"}},
	}

	_, err := NewEstimator(logging.NewNop()).Estimate(path, probe, allRules())
	if !errors.Is(err, services.ErrEstimation) {
		t.Fatalf("expected estimation failure, got %v", err)
	}
}

func TestEstimateFailsForMissingFile(t *testing.T) {
	probe := ffprobe.Result{Format: ffprobe.Format{Duration: "10"}}
	_, err := NewEstimator(logging.NewNop()).Estimate(filepath.Join(t.TempDir(), "gone.mkv"), probe, allRules())
	if !errors.Is(err, services.ErrEstimation) {
		t.Fatalf("expected estimation failure, got %v", err)
	}
}

func TestEstimateCappedAtOriginalSize(t *testing.T) {
	path := writeSample(t, 100)
	probe := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 1, CodecType: "audio", BitRate: "8000000", Tags: ffprobe.Tags{Language: "jpn"}},
		},
		Format: ffprobe.Format{Duration: "10"},
	}

	estimate, err := NewEstimator(logging.NewNop()).Estimate(path, probe, allRules())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if estimate.TotalBytes != 100 {
		t.Fatalf("estimate must be capped at file size, got %d", estimate.TotalBytes)
	}
	if got := estimate.ByKind[tracks.KindAudio].Bytes; got != 100 {
		t.Fatalf("breakdown must carry the capped bytes, got %d", got)
	}
}

func TestEstimateCapKeepsBreakdownAdditive(t *testing.T) {
	path := writeSample(t, 100)
	// jpn audio: 8 MB raw estimate, ger subtitle: 2 MB, against a 100 byte
	// file. The cap must shrink both shares so they still sum to the total.
	probe := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 1, CodecType: "audio", BitRate: "6400000", Tags: ffprobe.Tags{Language: "jpn"}},
			{Index: 2, CodecType: "subtitle", Tags: ffprobe.Tags{Language: "ger", BPS: "1600000"}},
		},
		Format: ffprobe.Format{Duration: "10"},
	}

	estimate, err := NewEstimator(logging.NewNop()).Estimate(path, probe, allRules())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if estimate.TotalBytes != 100 {
		t.Fatalf("estimate must be capped at file size, got %d", estimate.TotalBytes)
	}
	audio := estimate.ByKind[tracks.KindAudio]
	sub := estimate.ByKind[tracks.KindSubtitle]
	if audio.Bytes+sub.Bytes != estimate.TotalBytes {
		t.Fatalf("per-kind sum %d does not equal capped total %d", audio.Bytes+sub.Bytes, estimate.TotalBytes)
	}
	// The 80/20 raw split survives the cap.
	if audio.Bytes != 80 || sub.Bytes != 20 {
		t.Fatalf("unexpected capped breakdown: audio=%d subtitle=%d", audio.Bytes, sub.Bytes)
	}
	if audio.Tracks != 1 || sub.Tracks != 1 {
		t.Fatalf("track counts must survive the cap: audio=%d subtitle=%d", audio.Tracks, sub.Tracks)
	}
}

func TestEstimatePercent(t *testing.T) {
	estimate := Estimate{TotalBytes: 250, OriginalSize: 1000}
	if estimate.Percent() != 25 {
		t.Fatalf("expected 25%%, got %v", estimate.Percent())
	}
	if (Estimate{TotalBytes: 10}).Percent() != 0 {
		t.Fatal("zero original size must yield zero percent")
	}
}
