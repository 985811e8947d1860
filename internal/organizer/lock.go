package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another smartsort run holds the run lock.
var ErrLocked = errors.New("another smartsort run is in progress")

// RunLock is an exclusive advisory lock held for the duration of a real run.
type RunLock struct {
	lock *flock.Flock
}

// AcquireLock takes the run lock at path without blocking.
func AcquireLock(path string) (*RunLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
	}
	return &RunLock{lock: lock}, nil
}

// Release drops the lock.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
