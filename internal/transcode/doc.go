// Package transcode supervises the external remux subprocess for one file
// at a time: duration probing, temp-file management, progress tracking, and
// the backup-then-atomic-replace finalization. Failures never leave a
// partial output in place of the original.
package transcode
