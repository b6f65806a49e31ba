package reminder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/praxable/praxable-cli/internal/constants"
)

// ErrAlreadyRunning is returned when another reminder daemon holds the lock.
var ErrAlreadyRunning = errors.New("another reminder process is already running")

// Lock takes the single-instance lock in dir. Release it with Unlock.
func Lock(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, constants.ReminderLockfileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire reminder lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	return fl, nil
}
