package shared

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an exclusive file lock held while a run mutates remote playlists.
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the lock at path without blocking.
//
// Returns [ErrRunLocked] when another process holds it.
func AcquireRunLock(path string) (*RunLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: lock held at %s", ErrRunLocked, path)
	}
	return &RunLock{lock: lock}, nil
}

// Release unlocks the run lock. Safe to call on a nil lock.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
