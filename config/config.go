// Package config loads ambient defaults for the expect engine and
// interact loop: timeouts, poll cadence, and the escape sequence.
// Grounded on the teacher's internal/config package: same file-then-env
// precedence, same JSON-tagged struct, same ~/.<name>/config.json
// layout, retargeted from hub credentials to PTY tuning knobs.
//
// Configuration is loaded from:
//  1. ~/.expectpty/config.json (file)
//  2. Environment variables (override file values)
//
// Environment variables:
//   - EXPECTPTY_TIMEOUT_MS: default expect timeout in milliseconds (0 = infinite)
//   - EXPECTPTY_POLL_WINDOW_MS: non-blocking poll window in milliseconds
//   - EXPECTPTY_INTERACT_TICK_MS: interact loop's bounded tick in milliseconds
//   - EXPECTPTY_ESCAPE_BYTE: decimal byte value of the interact escape sequence
//   - EXPECTPTY_CONFIG_DIR: override config directory (for testing)
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds ambient tuning knobs shared by every Session created
// through this package's Load result.
type Config struct {
	// TimeoutMS is the default expect timeout in milliseconds; 0 means
	// wait forever.
	TimeoutMS uint64 `json:"timeout_ms"`

	// PollWindowMS is the non-blocking read window the expect engine
	// polls with while waiting for more bytes.
	PollWindowMS uint64 `json:"poll_window_ms"`

	// InteractTickMS bounds how long the interact loop goes between
	// checks for child termination or caller-requested stop.
	InteractTickMS uint64 `json:"interact_tick_ms"`

	// EscapeByte is the byte that ends an interact session when typed
	// at the host terminal.
	EscapeByte byte `json:"escape_byte"`
}

// DefaultConfig returns the library's built-in defaults: no timeout, a
// 10ms poll window (spec.md §4.E), a 50ms interact tick, and Ctrl-]
// (0x1D) as the escape sequence (spec.md §4.G).
func DefaultConfig() *Config {
	return &Config{
		TimeoutMS:      0,
		PollWindowMS:   10,
		InteractTickMS: 50,
		EscapeByte:     0x1D,
	}
}

// Timeout returns TimeoutMS as a *time.Duration, or nil if TimeoutMS is 0.
func (c *Config) Timeout() *time.Duration {
	if c.TimeoutMS == 0 {
		return nil
	}
	d := time.Duration(c.TimeoutMS) * time.Millisecond
	return &d
}

// PollWindow returns PollWindowMS as a time.Duration.
func (c *Config) PollWindow() time.Duration {
	return time.Duration(c.PollWindowMS) * time.Millisecond
}

// InteractTick returns InteractTickMS as a time.Duration.
func (c *Config) InteractTick() time.Duration {
	return time.Duration(c.InteractTickMS) * time.Millisecond
}

// Dir returns the configuration directory, creating it if necessary.
// Respects EXPECTPTY_CONFIG_DIR for testing.
func Dir() (string, error) {
	if testDir := os.Getenv("EXPECTPTY_CONFIG_DIR"); testDir != "" {
		if err := os.MkdirAll(testDir, 0700); err != nil {
			return "", fmt.Errorf("could not create config directory: %w", err)
		}
		return testDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".expectpty")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from file and applies environment variable
// overrides. Priority: environment variables > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Missing or invalid file is not an error; defaults stand.
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	path, err := Path()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EXPECTPTY_TIMEOUT_MS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.TimeoutMS = n
		}
	}
	if v := os.Getenv("EXPECTPTY_POLL_WINDOW_MS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.PollWindowMS = n
		}
	}
	if v := os.Getenv("EXPECTPTY_INTERACT_TICK_MS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.InteractTickMS = n
		}
	}
	if v := os.Getenv("EXPECTPTY_ESCAPE_BYTE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			c.EscapeByte = byte(n)
		}
	}
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
