package platform

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created inside the download directory while a queue owns it
const LockFileName = ".ytqueue.lock"

// ErrDirectoryLocked is returned when another process already owns the directory
var ErrDirectoryLocked = errors.New("download directory is in use by another queue")

// DirLock is an exclusive, advisory lock on a download directory
type DirLock struct {
	lock *flock.Flock
}

// LockDirectory takes the instance lock for dir without blocking
func LockDirectory(dir string) (*DirLock, error) {
	lock := flock.New(filepath.Join(dir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryLocked, dir)
	}
	return &DirLock{lock: lock}, nil
}

// Path returns the lock file path
func (l *DirLock) Path() string {
	return l.lock.Path()
}

// Release drops the lock; it is safe to call more than once
func (l *DirLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
