// Package config loads the optional ~/.sunup/config.yaml. A missing
// file is not an error; everything has a sensible default.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application settings.
type Config struct {
	DBPath   string        `yaml:"db_path,omitempty"`
	LogLevel string        `yaml:"log_level"`
	Defaults AlarmDefaults `yaml:"alarm_defaults"`
}

// AlarmDefaults seed the fields of a newly created alarm when the user
// does not pass the matching flag.
type AlarmDefaults struct {
	SnoozeMinutes int     `yaml:"snooze_minutes"`
	SnoozeMax     int     `yaml:"snooze_max"`
	Difficulty    string  `yaml:"difficulty"`
	SoundID       string  `yaml:"sound"`
	Volume        float64 `yaml:"volume"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Defaults: AlarmDefaults{
			SnoozeMinutes: 5,
			SnoozeMax:     3,
			Difficulty:    "easy",
			SoundID:       "classic",
			Volume:        1.0,
		},
	}
}

// Dir returns the path to ~/.sunup.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".sunup"), nil
}

// Load reads ~/.sunup/config.yaml, falling back to defaults when the
// file does not exist.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), err
	}
	return loadFile(filepath.Join(dir, "config.yaml"))
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ParseLogLevel maps a config string to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
