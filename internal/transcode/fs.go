package transcode

import (
	"path/filepath"
	"strings"
)

// TempPath derives the sibling temporary output for path by infixing
// ".processing" before the extension: movie.mkv -> movie.processing.mkv.
// The derivation is deterministic so stale leftovers from aborted runs can
// be found again.
func TempPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+".processing"+ext)
}

// BackupPath derives the sibling backup for path by appending ".bak":
// movie.mkv -> movie.mkv.bak.
func BackupPath(path string) string {
	return path + ".bak"
}
