package workspace

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"vidsub/internal/services"
)

// ErrLocked reports that another run holds the workspace lock.
var ErrLocked = errors.New("another vidsub run is using this working root")

// Lock is an exclusive advisory lock on a working root.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock at path without blocking. A held lock is a setup
// failure wrapping ErrLocked.
func Acquire(path string) (*Lock, error) {
	l := &Lock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrSetup, "setup", "acquire lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrSetup, "setup", "acquire lock", path, ErrLocked)
	}
	return l, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Release unlocks the workspace. The lock file itself is left in place.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
