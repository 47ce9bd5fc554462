// Package discovery finds candidate video files beneath a directory.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mediatrim/internal/services"
)

// DefaultExtensions are the container formats eligible for trimming.
var DefaultExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".wmv"}

// Options control a scan.
type Options struct {
	// Recursive walks subdirectories instead of listing only the top level.
	Recursive bool
	// Extensions overrides DefaultExtensions when non-empty. Entries are
	// matched case-insensitively and must include the leading dot.
	Extensions []string
}

// Scan returns the matching files under dir in lexical order. A missing or
// unreadable directory is a run-fatal discovery error.
func Scan(dir string, opts Options) ([]string, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrDiscovery, "discovery", "scan", "stat scan root", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrDiscovery, "discovery", "scan", dir+" is not a directory", nil)
	}

	var paths []string
	if opts.Recursive {
		paths, err = walk(dir, allowed)
	} else {
		paths, err = list(dir, allowed)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrDiscovery, "discovery", "scan", "read scan root", err)
	}

	sort.Strings(paths)
	return paths, nil
}

func list(dir string, allowed map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !matches(entry.Name(), allowed) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

func walk(dir string, allowed map[string]bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !matches(entry.Name(), allowed) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func matches(name string, allowed map[string]bool) bool {
	return allowed[strings.ToLower(filepath.Ext(name))]
}
