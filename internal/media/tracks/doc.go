// Package tracks inspects media files for audio and subtitle streams and
// decides, from language keep/remove rules, which stream indices to drop.
// Selection is pure: no I/O happens after inspection.
package tracks
