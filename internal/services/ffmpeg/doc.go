// Package ffmpeg wraps the ffmpeg command-line tool for stream-copy
// remuxing: all streams are kept by default, removed indices are excluded
// with explicit negative -map entries, and progress is parsed from the
// time= markers on the merged output stream.
package ffmpeg
