package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := loadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("missing file config = %+v, want defaults", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
log_level: debug
db_path: /tmp/sunup-test.db
alarm_defaults:
  snooze_minutes: 10
  difficulty: hard
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.LogLevel)
	}
	if cfg.DBPath != "/tmp/sunup-test.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.Defaults.SnoozeMinutes != 10 || cfg.Defaults.Difficulty != "hard" {
		t.Fatalf("alarm defaults = %+v", cfg.Defaults)
	}
	// Fields the file omits keep their defaults.
	if cfg.Defaults.SoundID != "classic" || cfg.Defaults.Volume != 1.0 {
		t.Fatalf("omitted defaults clobbered: %+v", cfg.Defaults)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
