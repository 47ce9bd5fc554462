package savings

import (
	"log/slog"
	"os"

	"mediatrim/internal/logging"
	"mediatrim/internal/media/ffprobe"
	"mediatrim/internal/media/tracks"
	"mediatrim/internal/services"
)

// KindSavings aggregates the removable footprint of one track kind.
type KindSavings struct {
	Bytes  int64
	Tracks int
}

// Estimate summarizes the removable bytes for one file under a rule set.
type Estimate struct {
	// TotalBytes is the sum of the per-kind byte estimates.
	TotalBytes int64
	// OriginalSize is the file's current size on disk.
	OriginalSize int64
	// ByKind breaks the estimate down per track kind.
	ByKind map[tracks.Kind]KindSavings
}

// Percent returns the estimated savings as a share of the original size.
func (e Estimate) Percent() float64 {
	if e.OriginalSize <= 0 {
		return 0
	}
	return float64(e.TotalBytes) / float64(e.OriginalSize) * 100
}

// Estimator derives per-file savings estimates from probe data.
type Estimator struct {
	logger *slog.Logger
}

// NewEstimator builds an Estimator logging through the given logger.
func NewEstimator(logger *slog.Logger) *Estimator {
	return &Estimator{logger: logging.WithComponent(logger, "estimator")}
}

// Estimate computes the removable bytes for path from the probe result the
// inspection already produced. A track's footprint is bitrate * duration / 8,
// rounded down; tracks without any bitrate source still count toward the
// removal but contribute zero bytes, logged as a warning. Estimation fails
// when the container duration is unknown or the file cannot be stat'ed.
func (e *Estimator) Estimate(path string, probe ffprobe.Result, rules tracks.Rules) (Estimate, error) {
	duration := probe.DurationSeconds()
	if duration <= 0 {
		return Estimate{}, services.Wrap(services.ErrEstimation, "estimator", "duration", "container reports no duration", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Estimate{}, services.Wrap(services.ErrEstimation, "estimator", "stat", "", err)
	}

	estimate := Estimate{
		OriginalSize: info.Size(),
		ByKind: map[tracks.Kind]KindSavings{
			tracks.KindAudio:    {},
			tracks.KindSubtitle: {},
		},
	}

	for _, stream := range probe.Streams {
		track := trackForStream(stream)
		if track == nil || !tracks.Selected(*track, rules) {
			continue
		}

		bits := stream.BitsPerSecond()
		if bits == 0 {
			e.logger.Warn("track bitrate unknown, contributes zero to estimate",
				logging.String(logging.FieldFile, path),
				logging.Int("stream_index", stream.Index),
				logging.String("kind", string(track.Kind)),
			)
		}

		perKind := estimate.ByKind[track.Kind]
		perKind.Bytes += int64(float64(bits) * duration / 8)
		perKind.Tracks++
		estimate.ByKind[track.Kind] = perKind
	}

	for _, perKind := range estimate.ByKind {
		estimate.TotalBytes += perKind.Bytes
	}
	// Reported bitrates can overstate small files; an estimate can never
	// exceed what is actually on disk.
	if estimate.TotalBytes > estimate.OriginalSize {
		capAtOriginal(&estimate)
	}
	return estimate, nil
}

// capAtOriginal shrinks the estimate to the on-disk size. The per-kind
// breakdown is scaled by the same factor so it still sums to the total,
// with the rounding remainder landing on the largest share.
func capAtOriginal(estimate *Estimate) {
	raw := estimate.TotalBytes
	capped := estimate.OriginalSize

	kinds := []tracks.Kind{tracks.KindAudio, tracks.KindSubtitle}
	largest := kinds[0]
	for _, kind := range kinds {
		if estimate.ByKind[kind].Bytes > estimate.ByKind[largest].Bytes {
			largest = kind
		}
	}

	var assigned int64
	for _, kind := range kinds {
		perKind := estimate.ByKind[kind]
		perKind.Bytes = int64(float64(perKind.Bytes) / float64(raw) * float64(capped))
		assigned += perKind.Bytes
		estimate.ByKind[kind] = perKind
	}

	perKind := estimate.ByKind[largest]
	perKind.Bytes += capped - assigned
	estimate.ByKind[largest] = perKind
	estimate.TotalBytes = capped
}

func trackForStream(stream ffprobe.Stream) *tracks.Track {
	list := tracks.FromProbe(ffprobe.Result{Streams: []ffprobe.Stream{stream}})
	if len(list) != 1 {
		return nil
	}
	return &list[0]
}
