// Package ipc speaks mpv's JSON IPC protocol over a unix socket: one
// newline-delimited {"command": [...]} object per connection, no reply
// read. It also owns instance detection (Probe) and the post-spawn
// readiness wait (WaitReady).
package ipc

import (
	"encoding/json"
	"fmt"
)

// Message is one mpv IPC command: a verb followed by its arguments.
type Message struct {
	Command []any `json:"command"`
}

// ClearFilters removes every active video filter.
func ClearFilters() Message {
	return Message{Command: []any{"vf", "clear"}}
}

// SetFilters applies one video filter specification.
func SetFilters(spec string) Message {
	return Message{Command: []any{"vf", "set", spec}}
}

// LoadFile replaces the currently playing file.
func LoadFile(path string) Message {
	return Message{Command: []any{"loadfile", path, "replace"}}
}

// SetVolume sets the playback volume, a percentage in [0, 100].
func SetVolume(level int) Message {
	return Message{Command: []any{"set_property", "volume", level}}
}

// Encode serializes the message as a single newline-terminated line.
func (m Message) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding ipc message: %w", err)
	}
	return append(data, '\n'), nil
}
