package selector

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPickDirectRandomChoice(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.mp4")
	b := touch(t, dir, "b.mkv")
	touch(t, dir, "notes.txt")

	// Random pick: run repeatedly, every result must be a video file.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		video, resolved, err := Pick([]string{"mpv", dir, "--loop"}, discard())
		if err != nil {
			t.Fatalf("Pick() error: %v", err)
		}
		if video != a && video != b {
			t.Fatalf("picked %q, want %q or %q", video, a, b)
		}
		if resolved[1] != video {
			t.Errorf("resolved args[1] = %q, want picked video %q", resolved[1], video)
		}
		seen[video] = true
	}
	if len(seen) < 2 {
		t.Log("only one file picked in 50 runs; uniform choice is unlikely but possible")
	}
}

func TestPickDoesNotMutateCallerArgs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp4")

	args := []string{"mpv", dir}
	_, resolved, err := Pick(args, discard())
	if err != nil {
		t.Fatalf("Pick() error: %v", err)
	}
	if args[1] != dir {
		t.Errorf("caller args mutated: args[1] = %q, want %q", args[1], dir)
	}
	if resolved[1] == dir {
		t.Error("resolved args should carry the picked file, not the directory")
	}
}

func TestPickCaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	want := touch(t, dir, "CLIP.MP4")

	video, _, err := Pick([]string{"mpv", dir}, discard())
	if err != nil {
		t.Fatalf("Pick() error: %v", err)
	}
	if video != want {
		t.Errorf("picked %q, want %q", video, want)
	}
}

func TestPickEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")
	touch(t, dir, "cover.jpg")

	_, _, err := Pick([]string{"mpv", dir}, discard())
	if !errors.Is(err, ErrNoMediaFound) {
		t.Errorf("Pick() error = %v, want ErrNoMediaFound", err)
	}
}

func TestPickIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "more.mp4"), 0755); err != nil {
		t.Fatal(err)
	}

	_, _, err := Pick([]string{"mpv", dir}, discard())
	if !errors.Is(err, ErrNoMediaFound) {
		t.Errorf("a directory named like a video should not be picked, got error = %v", err)
	}
}

func TestPickFile(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"plain file", []string{"mpv", "clip.mp4"}, "clip.mp4", nil},
		{"file after flags", []string{"mpv", "--loop", "clip.mp4"}, "clip.mp4", nil},
		{"program name skipped", []string{"player", "clip.mp4", "--vf=hue=h=90"}, "clip.mp4", nil},
		{"flags only", []string{"mpv", "--loop", "--no-osc"}, "", ErrNoMediaSpecified},
		{"program only", []string{"mpv"}, "", ErrNoMediaSpecified},
		{"empty invocation", nil, "", ErrNoMediaSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video, _, err := Pick(tt.args, discard())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Pick() error = %v, want %v", err, tt.wantErr)
			}
			if video != tt.want {
				t.Errorf("Pick() = %q, want %q", video, tt.want)
			}
		})
	}
}
