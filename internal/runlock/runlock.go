// Package runlock guards an output directory with a file lock so two
// processor runs cannot interleave their outputs.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock holds an acquired directory lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes a non-blocking lock scoped to dir. It fails immediately when
// another run holds the lock.
func Acquire(dir string) (*Lock, error) {
	if dir == "" {
		return nil, errors.New("lock directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	path := filepath.Join(dir, ".lectern.lock")
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another lectern run is already processing into %s", dir)
	}
	return &Lock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	err := l.lock.Unlock()
	_ = os.Remove(l.path)
	return err
}
