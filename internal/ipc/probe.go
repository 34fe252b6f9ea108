package ipc

import (
	"context"
	"net"
	"time"
)

// attemptInterval paces WaitReady's connection attempts.
const attemptInterval = 100 * time.Millisecond

// Probe reports whether a listener is present on the control socket.
// A refused connection, a missing socket file, and a timeout all mean
// "no instance"; none of them is an error. The timeout bounds the whole
// attempt so the launcher never hangs deciding which mode to enter.
func Probe(path string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("unix", path, timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// WaitReady polls the control socket until it accepts a connection or
// the timeout expires. Used after spawning a new player, which needs a
// moment to open its listener. Returns false on timeout or when ctx is
// canceled.
func WaitReady(ctx context.Context, path string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if Probe(path, attemptInterval) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(attemptInterval):
		}
	}
	return false
}
