package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// killGrace is how long Terminate waits for SIGTERM to work before
// escalating to SIGKILL.
const killGrace = 2 * time.Second

// Supervisor owns the spawned player process. It exposes exit
// notification via Done and a one-shot graceful Terminate. There is no
// restart policy: the player exiting ends the launch.
type Supervisor struct {
	cmd      *exec.Cmd
	logger   *slog.Logger
	done     chan struct{}
	termOnce sync.Once
}

// Spawn starts the player with the given invocation. The process gets
// no standard streams; it must not touch the controlling terminal.
func Spawn(argv []string, logger *slog.Logger) (*Supervisor, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty player invocation")
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting player: %w", err)
	}

	s := &Supervisor{
		cmd:    cmd,
		logger: logger,
		done:   make(chan struct{}),
	}

	go func() {
		err := cmd.Wait()
		// Non-zero exit is normal for a terminated player.
		s.logger.Debug("player exited", "err", err)
		close(s.done)
	}()

	return s, nil
}

// Done is closed when the player process exits.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Alive reports whether the player is still running, without blocking.
func (s *Supervisor) Alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Terminate requests graceful shutdown of the player and escalates to
// SIGKILL if it ignores the request. Safe to call more than once and
// after the player has already exited.
func (s *Supervisor) Terminate() {
	s.termOnce.Do(func() {
		if !s.Alive() {
			return
		}
		if err := s.cmd.Process.Signal(unix.SIGTERM); err != nil {
			s.logger.Debug("signaling player", "err", err)
			return
		}
		go func() {
			select {
			case <-s.done:
			case <-time.After(killGrace):
				_ = s.cmd.Process.Kill()
			}
		}()
	})
}
