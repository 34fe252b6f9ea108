// Package player builds the mpv invocation and supervises the spawned
// process. All invocations use exec.Command with explicit argument
// slices; nothing passes through a shell.
package player

import "strings"

// WindowToken is the literal placeholder users put in their arguments
// where the surface handle should be substituted.
const WindowToken = "WID"

// defaultFlag is one entry of the default-flag table. An empty value
// means the flag is a bare switch.
type defaultFlag struct {
	key   string
	value string
}

// BuildArgs returns the final player invocation: every WindowToken in
// the user's arguments replaced with the surface handle, then each
// default appended unless some argument already starts with its key.
// The prefix test means a user-supplied value for a flag always wins.
func BuildArgs(args []string, wid, socketPath string) []string {
	base := make([]string, len(args))
	for i, arg := range args {
		base[i] = strings.ReplaceAll(arg, WindowToken, wid)
	}

	defaults := []defaultFlag{
		{"--wid", wid},
		{"--loop", ""},
		{"--no-osc", ""},
		{"--hwdec", "auto"},
		{"--cache", "yes"},
		{"--cache-secs", "60"},
		{"--volume", "0"},
		{"--input-ipc-server", socketPath},
		{"--no-input-default-bindings", ""},
	}

	for _, d := range defaults {
		if hasFlag(base, d.key) {
			continue
		}
		if d.value == "" {
			base = append(base, d.key)
		} else {
			base = append(base, d.key+"="+d.value)
		}
	}
	return base
}

func hasFlag(args []string, key string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, key) {
			return true
		}
	}
	return false
}
