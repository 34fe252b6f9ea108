// Package selector resolves the media argument of a player invocation
// into one concrete video file. A directory argument is replaced by a
// random pick from its playable entries.
package selector

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoMediaFound means a directory was given but contained no
	// playable files.
	ErrNoMediaFound = errors.New("no video files found")

	// ErrNoMediaSpecified means the invocation carries no media path.
	ErrNoMediaSpecified = errors.New("no video file specified")
)

// videoExtensions is the folder-mode allow-list, matched case-insensitively.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
	".mov":  true,
	".flv":  true,
}

// Pick resolves the video from a raw invocation (program name first,
// media path or directory second). If args[1] is a directory, one
// playable entry is chosen uniformly at random and a copy of args with
// the directory substituted is returned. Otherwise args is returned
// unchanged along with the first non-flag argument.
//
// Resolution runs the same way whether or not an instance already
// exists; the replacement protocol needs a concrete path too.
func Pick(args []string, logger *slog.Logger) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, ErrNoMediaSpecified
	}
	if len(args) > 1 {
		if info, err := os.Stat(args[1]); err == nil && info.IsDir() {
			video, err := pickFromDir(args[1])
			if err != nil {
				return "", nil, err
			}
			logger.Info("random video selected", "path", video)
			resolved := make([]string, len(args))
			copy(resolved, args)
			resolved[1] = video
			return video, resolved, nil
		}
	}

	// args[0] is the player program; the media path is the first
	// non-flag token after it.
	for _, arg := range args[1:] {
		if !strings.HasPrefix(arg, "-") {
			return arg, args, nil
		}
	}
	return "", nil, ErrNoMediaSpecified
}

func pickFromDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var videos []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if videoExtensions[ext] {
			videos = append(videos, filepath.Join(dir, e.Name()))
		}
	}
	if len(videos) == 0 {
		return "", ErrNoMediaFound
	}
	return videos[rand.IntN(len(videos))], nil
}
