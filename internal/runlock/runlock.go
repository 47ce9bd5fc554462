// Package runlock guards a scan directory against concurrent trimming runs.
package runlock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created inside the scanned directory for the run's
// duration. A stale file left by a crashed process is harmless: flock
// state dies with the process.
const LockFileName = ".mediatrim.lock"

// ErrHeld reports that another process already holds the directory.
var ErrHeld = errors.New("directory is locked by another mediatrim run")

// Lock is an advisory file lock on one scan directory.
type Lock struct {
	lock *flock.Flock
}

// Acquire takes the directory lock without blocking. The caller must
// Release it when the run finishes.
func Acquire(dir string) (*Lock, error) {
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lock{lock: lock}, nil
}

// Path returns the lock file's location.
func (l *Lock) Path() string {
	return l.lock.Path()
}

// Release drops the lock. Safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
