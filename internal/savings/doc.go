// Package savings estimates the on-disk footprint of removable tracks using
// the bitrate-times-duration approximation, broken down per track kind.
package savings
