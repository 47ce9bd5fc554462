package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for failure classification. Per-file markers are folded
// into the file's outcome; run-level markers abort before any file is touched.
var (
	// Run-level failures.
	ErrMissingDependency = errors.New("missing dependency")
	ErrDiscovery         = errors.New("discovery failure")

	// Per-file failures.
	ErrProbe           = errors.New("probe failure")
	ErrEstimation      = errors.New("estimation failure")
	ErrDurationUnknown = errors.New("duration unknown")
	ErrTranscode       = errors.New("transcode failure")
	ErrFinalize        = errors.New("finalize failure")
	ErrStaleTemp       = errors.New("stale temp cleanup failure")
	ErrTimeout         = errors.New("timeout")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTranscode
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRunFatal reports whether the error must abort the whole run rather than
// a single file.
func IsRunFatal(err error) bool {
	return errors.Is(err, ErrMissingDependency) || errors.Is(err, ErrDiscovery)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "processing failure"
	}
	return strings.Join(parts, ": ")
}
