// ABOUTME: Coach configuration management with storage path handling.
// ABOUTME: Handles settings, default athlete, and storage factory functions.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/storage"
)

// Config stores coach tool configuration.
type Config struct {
	// DataDir is the root directory for data storage. The SQLite
	// database and the offline queue live under it.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/coach.
	DataDir string `json:"data_dir,omitempty"`

	// AthleteID is the default athlete for commands that do not pass
	// --athlete explicitly.
	AthleteID string `json:"athlete_id,omitempty"`

	// AutoSync drains the offline queue after each logged set when the
	// remote store is reachable.
	AutoSync bool `json:"auto_sync,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetAthleteID returns the configured default athlete, creating and
// persisting one on first use.
func (c *Config) GetAthleteID() (uuid.UUID, error) {
	if c.AthleteID != "" {
		id, err := uuid.Parse(c.AthleteID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid athlete_id in config: %w", err)
		}
		return id, nil
	}

	id := uuid.New()
	c.AthleteID = id.String()
	if err := c.Save(); err != nil {
		return uuid.Nil, fmt.Errorf("persist athlete id: %w", err)
	}
	return id, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DBPath returns the SQLite database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "coach.db")
}

// QueueDir returns the offline queue directory under the data directory.
func (c *Config) QueueDir() string {
	return filepath.Join(c.GetDataDir(), "queue")
}

// OpenStorage opens the authoritative store at the configured path.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return storage.Open(c.DBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "coach", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
