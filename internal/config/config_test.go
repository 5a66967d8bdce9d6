// ABOUTME: Tests for config loading, path expansion, and defaults.
// ABOUTME: Uses XDG env overrides to isolate per-test config locations.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	dir := cfg.GetDataDir()
	if dir == "" {
		t.Error("GetDataDir returned empty string")
	}
	if filepath.Base(dir) != "coach" {
		t.Errorf("GetDataDir = %s, want a coach directory", dir)
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := &Config{DataDir: "~/coach-data"}
	if got := cfg.GetDataDir(); got != filepath.Join(home, "coach-data") {
		t.Errorf("GetDataDir = %s, want %s", got, filepath.Join(home, "coach-data"))
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadMissingConfigReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "" || cfg.AthleteID != "" || cfg.AutoSync {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{DataDir: "/tmp/coach-test", AutoSync: true}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.DataDir != "/tmp/coach-test" || !got.AutoSync {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetAthleteIDPersistsFirstUse(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{}
	id, err := cfg.GetAthleteID()
	if err != nil {
		t.Fatalf("GetAthleteID failed: %v", err)
	}

	// A second load sees the same id.
	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	id2, err := got.GetAthleteID()
	if err != nil {
		t.Fatalf("GetAthleteID failed: %v", err)
	}
	if id != id2 {
		t.Errorf("athlete id not persisted: %s != %s", id, id2)
	}
}

func TestGetAthleteIDRejectsGarbage(t *testing.T) {
	cfg := &Config{AthleteID: "not-a-uuid"}
	if _, err := cfg.GetAthleteID(); err == nil {
		t.Error("GetAthleteID accepted an invalid uuid")
	}
}

func TestPathsUnderDataDir(t *testing.T) {
	cfg := &Config{DataDir: "/data/coach"}
	if got := cfg.DBPath(); got != "/data/coach/coach.db" {
		t.Errorf("DBPath = %s", got)
	}
	if got := cfg.QueueDir(); got != "/data/coach/queue" {
		t.Errorf("QueueDir = %s", got)
	}
}
