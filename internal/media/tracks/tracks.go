package tracks

import (
	"context"
	"log/slog"
	"strings"

	"mediatrim/internal/logging"
	"mediatrim/internal/media/ffprobe"
	"mediatrim/internal/services"
)

// Kind identifies the track types mediatrim operates on. Video, data, and
// attachment streams are never candidates for removal.
type Kind string

const (
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
)

// Track describes one audio or subtitle stream. Index is the stream index as
// understood by ffmpeg, not renumbered after filtering, so it can be used
// directly in a -map exclusion.
type Track struct {
	Index    int
	Kind     Kind
	Language string
	Title    string
	Default  bool
	Forced   bool
}

// FromProbe extracts the audio and subtitle tracks from a probe result.
// Languages are normalized to lowercase with "und" standing in for an absent
// tag.
func FromProbe(result ffprobe.Result) []Track {
	out := make([]Track, 0, len(result.Streams))
	for _, stream := range result.Streams {
		kind := Kind(strings.ToLower(stream.CodecType))
		if kind != KindAudio && kind != KindSubtitle {
			continue
		}
		out = append(out, Track{
			Index:    stream.Index,
			Kind:     kind,
			Language: stream.Language(),
			Title:    strings.TrimSpace(stream.Tags.Title),
			Default:  stream.IsDefault(),
			Forced:   stream.IsForced(),
		})
	}
	return out
}

// Inspector probes files and returns their track descriptors.
type Inspector struct {
	binary string
	logger *slog.Logger
}

// NewInspector builds an Inspector invoking the given ffprobe binary.
func NewInspector(binary string, logger *slog.Logger) *Inspector {
	return &Inspector{
		binary: binary,
		logger: logging.WithComponent(logger, "inspector"),
	}
}

// Inspect runs ffprobe once for path and returns the raw probe result plus
// the normalized audio/subtitle descriptors. A non-zero exit, malformed
// output, or a container with no streams is a probe failure.
func (i *Inspector) Inspect(ctx context.Context, path string) (ffprobe.Result, []Track, error) {
	result, err := ffprobe.Inspect(ctx, i.binary, path)
	if err != nil {
		return ffprobe.Result{}, nil, services.Wrap(services.ErrProbe, "inspector", "probe", "", err)
	}
	if len(result.Streams) == 0 {
		return ffprobe.Result{}, nil, services.Wrap(services.ErrProbe, "inspector", "probe", "no streams found in file", nil)
	}
	list := FromProbe(result)
	i.logger.Debug("inspected file",
		logging.String(logging.FieldFile, path),
		logging.Int("streams", len(result.Streams)),
		logging.Int("candidate_tracks", len(list)),
	)
	return result, list, nil
}
