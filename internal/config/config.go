// Package config handles loading taskify config.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the taskify config.toml configuration file.
type Config struct {
	Storage  Storage  `toml:"storage"`
	Log      Log      `toml:"log"`
	Pomodoro Pomodoro `toml:"pomodoro"`
}

// Storage configures where and how snapshots are persisted.
type Storage struct {
	// Backend selects the snapshot store, "file" or "sqlite".
	// Defaults to "file".
	Backend string `toml:"backend"`

	// Dir is the data directory. Defaults to ~/.local/state/taskify.
	Dir string `toml:"dir"`
}

// Log configures the log file.
type Log struct {
	// File is the log destination. Defaults to <storage dir>/taskify.log.
	File string `toml:"file"`

	// Level is the minimum level to record. Defaults to "info".
	Level string `toml:"level"`
}

// Pomodoro overrides the timer defaults, in minutes. Zero values fall
// back to the ledger defaults.
type Pomodoro struct {
	WorkDuration           int `toml:"work-duration"`
	BreakDuration          int `toml:"break-duration"`
	LongBreakDuration      int `toml:"long-break-duration"`
	SessionsUntilLongBreak int `toml:"sessions-until-long-break"`
}

// BackendFile and BackendSQLite are the supported storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Load loads the global config file. Returns a config with defaults
// filled in if the file does not exist.
func Load() (*Config, error) {
	path, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	return loadConfigFile(path)
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskify", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	cfg.Storage.Backend = strings.TrimSpace(cfg.Storage.Backend)
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}

	if strings.TrimSpace(cfg.Storage.Dir) == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		cfg.Storage.Dir = dir
	}

	if strings.TrimSpace(cfg.Log.File) == "" {
		cfg.Log.File = filepath.Join(cfg.Storage.Dir, "taskify.log")
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	return nil
}

func validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return nil
}

// DefaultDataDir returns the default taskify data directory.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "taskify"), nil
}
