package ffmpeg

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// ffmpeg -stats lines look like:
//
//	size=  123456kB time=01:02:03.45 bitrate=1536.0kbits/s speed=31.2x
//
// Minutes and seconds are two digits; the fraction is optional and may use a
// comma separator in some locales.
var timePattern = regexp.MustCompile(`time=\s*(\d+):(\d{2}):(\d{2}(?:[.,]\d+)?)`)

// ParseElapsed extracts the elapsed source time, in seconds, from one output
// line. The second return value is false when the line carries no marker.
func ParseElapsed(line string) (float64, bool) {
	match := timePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	hours, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(strings.ReplaceAll(match[3], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return hours*3600 + minutes*60 + seconds, true
}

// scanStatsLines is a bufio.SplitFunc treating both \n and \r as line
// terminators. ffmpeg overwrites its stats line in place with carriage
// returns, so a newline-only scanner would buffer the whole progress stream
// until exit.
func scanStatsLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
