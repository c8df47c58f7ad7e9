// Package config loads and saves the hourglass settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// DataDir holds the schedule, to-do, snapshot, and log files.
	DataDir string `yaml:"data_dir"`

	// Notify toggles the notification scanner. The schedule itself is
	// unaffected; only alert delivery is gated.
	Notify bool `yaml:"notify"`

	// HonorLeapYears is the default leap-year mode for yearly recurring
	// events: advance by calendar year and skip nonexistent dates when true,
	// step a flat 365 days when false.
	HonorLeapYears bool `yaml:"honor_leap_years"`

	// DarkMode selects the TUI color scheme.
	DarkMode bool `yaml:"dark_mode"`

	// Debug widens logging to debug level and mirrors it to stderr.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns an in-memory default configuration rooted under the
// user config directory.
func DefaultConfig() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return &Config{
		DataDir:        filepath.Join(base, "hourglass", "data"),
		Notify:         true,
		HonorLeapYears: true,
		DarkMode:       true,
	}, nil
}

// Normalize fills in missing values so partially-filled configs from older
// versions still behave.
func (c *Config) Normalize() error {
	if c.DataDir == "" {
		def, err := DefaultConfig()
		if err != nil {
			return err
		}
		c.DataDir = def.DataDir
	}
	return nil
}

// SchedulePath returns the main schedule file path.
func (c *Config) SchedulePath() string {
	return filepath.Join(c.DataDir, "schedule.txt")
}

// ToDoPath returns the main to-do list file path.
func (c *Config) ToDoPath() string {
	return filepath.Join(c.DataDir, "tasks.txt")
}

// ScheduleSnapshotPath returns the manual-save snapshot twin of the
// schedule file.
func (c *Config) ScheduleSnapshotPath() string {
	return filepath.Join(c.DataDir, "schedule_old.txt")
}

// ToDoSnapshotPath returns the manual-save snapshot twin of the to-do file.
func (c *Config) ToDoSnapshotPath() string {
	return filepath.Join(c.DataDir, "tasks_old.txt")
}

// Load loads configuration from the given YAML path. On first run the file
// is created with defaults and 0600 permissions.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err := DefaultConfig()
			if err != nil {
				return nil, err
			}
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML with 0600 permissions, creating the
// parent directory as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, "hourglass", "config.yaml"), nil
}
