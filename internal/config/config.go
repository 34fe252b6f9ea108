// Package config handles TOML-based configuration loading and validation.
// The control socket path and timeouts live here so they can be threaded
// explicitly through the controller instead of living in package globals.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all launcher configuration.
type Config struct {
	// SocketPath is the mpv IPC endpoint. One instance per host: whoever
	// holds a listener on this path is "the instance".
	SocketPath string `toml:"socket_path"`

	// SocketTimeoutSecs bounds the readiness wait after spawning a new
	// player. ProbeTimeoutSecs bounds the fast liveness probe that decides
	// join-vs-become; kept short so a launch never hangs deciding.
	SocketTimeoutSecs float64 `toml:"socket_timeout"`
	ProbeTimeoutSecs  float64 `toml:"probe_timeout"`

	// VolumeStep is the change applied per volume key press.
	VolumeStep int `toml:"volume_step"`

	Debug bool `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		SocketPath:        "/tmp/mpv-background.sock",
		SocketTimeoutSecs: 5.0,
		ProbeTimeoutSecs:  0.1,
		VolumeStep:        5,
		Debug:             false,
	}
}

// SocketTimeout returns the readiness-wait bound as a duration.
func (c *Config) SocketTimeout() time.Duration {
	return time.Duration(c.SocketTimeoutSecs * float64(time.Second))
}

// ProbeTimeout returns the liveness-probe bound as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSecs * float64(time.Second))
}

// LockPath returns the instance-lock file derived from the socket path.
func (c *Config) LockPath() string {
	return c.SocketPath + ".lock"
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "xlivewall"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "xlivewall"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.SocketPath == "" {
		return fmt.Errorf("socket path cannot be empty")
	}
	if !filepath.IsAbs(c.SocketPath) {
		return fmt.Errorf("socket path %q must be absolute", c.SocketPath)
	}
	if c.SocketTimeoutSecs <= 0 {
		return fmt.Errorf("socket timeout must be positive, got %g", c.SocketTimeoutSecs)
	}
	if c.ProbeTimeoutSecs <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %g", c.ProbeTimeoutSecs)
	}
	if c.VolumeStep < 1 || c.VolumeStep > 100 {
		return fmt.Errorf("volume step %d out of range [1, 100]", c.VolumeStep)
	}
	return nil
}
