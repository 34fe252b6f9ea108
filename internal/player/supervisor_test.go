package player

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSpawnAndExit(t *testing.T) {
	s, err := Spawn([]string{"true"}, discard())
	if err != nil {
		t.Fatalf("Spawn() error: %v", err)
	}

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Done() not closed after process exit")
	}
	if s.Alive() {
		t.Error("Alive() = true after exit")
	}
}

func TestSpawnMissingBinary(t *testing.T) {
	_, err := Spawn([]string{"definitely-not-a-real-player-binary"}, discard())
	if err == nil {
		t.Error("Spawn() should fail for a missing binary")
	}
}

func TestSpawnEmptyInvocation(t *testing.T) {
	if _, err := Spawn(nil, discard()); err == nil {
		t.Error("Spawn() should reject an empty invocation")
	}
}

func TestTerminate(t *testing.T) {
	s, err := Spawn([]string{"sleep", "60"}, discard())
	if err != nil {
		t.Fatalf("Spawn() error: %v", err)
	}
	if !s.Alive() {
		t.Fatal("Alive() = false right after spawn")
	}

	s.Terminate()

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process still running after Terminate()")
	}
}

func TestTerminateIdempotent(t *testing.T) {
	s, err := Spawn([]string{"true"}, discard())
	if err != nil {
		t.Fatalf("Spawn() error: %v", err)
	}
	<-s.Done()

	// Must not panic on an already-dead process, however often called.
	s.Terminate()
	s.Terminate()
}
