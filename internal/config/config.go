// ABOUTME: Lift configuration management with backend selection.
// ABOUTME: Handles settings, preferences, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/charm"
	"github.com/harperreed/lift/internal/storage"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
)

// Backends lists every accepted backend name.
var Backends = []string{BackendSQLite, BackendBadger, BackendCharm}

// Config stores lift tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts lift.db here. Badger puts its badger/ directory here.
	// Charm keeps its own location. Supports ~ expansion.
	// Defaults to ~/.local/share/lift.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
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

// OpenStorage opens the configured backend.
func (c *Config) OpenStorage(logger *log.Logger) (storage.BlobStore, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir(), logger)
}

// OpenBackend opens a named backend rooted at dataDir.
func OpenBackend(backend, dataDir string, logger *log.Logger) (storage.BlobStore, error) {
	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "lift.db"))
	case BackendBadger:
		return storage.OpenBadger(filepath.Join(dataDir, "badger"), logger)
	case BackendCharm:
		client, err := charm.InitClient()
		if err != nil {
			return nil, fmt.Errorf("initialize charm client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "lift", "config.json")
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
		return nil, fmt.Errorf("parse %s: %w", path, err)
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
