// Package instance arbitrates which launch becomes "the instance".
//
// The liveness probe alone cannot enforce single-instance behavior: two
// launches can both probe a dead socket and race to spawn players. The
// arbiter is an exclusive flock on a file next to the socket; the loser
// falls back to joining. The kernel releases the lock when the holder
// dies, so a crashed instance never wedges the next launch.
package instance

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrHeld means another launch already owns the instance lock.
var ErrHeld = errors.New("instance lock held by another process")

// Lock is an acquired instance lock. Release it with Release; it is
// also released automatically when the process exits.
type Lock struct {
	f *os.File
}

// Acquire takes the exclusive instance lock at path, without blocking.
// Returns ErrHeld when another process holds it.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrHeld
		}
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}

	return &Lock{f: f}, nil
}

// Release drops the lock. The lock file itself stays behind; removing
// it would reopen the race this lock exists to close.
func (l *Lock) Release() error {
	return l.f.Close()
}
