// ABOUTME: BBG configuration management with seed data selection.
// ABOUTME: Handles settings file, environment overrides, and the store factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harperreed/bbg/internal/logging"
	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultListenAddr is where `bbg serve` listens unless configured.
const DefaultListenAddr = "127.0.0.1:8080"

// Config stores bbg configuration.
type Config struct {
	// Seed loads the built-in demo gym into the fresh store. Defaults to true.
	Seed *bool `json:"seed,omitempty"`

	// SeedFile is a YAML or JSON dataset loaded instead of the demo data.
	// Supports ~ expansion for home directory.
	SeedFile string `json:"seed_file,omitempty"`

	// LogLevel is a logrus level name. Defaults to "warn".
	LogLevel string `json:"log_level,omitempty"`

	// ListenAddr is the HTTP API address for `bbg serve`.
	ListenAddr string `json:"listen_addr,omitempty"`
}

// SeedDemo reports whether the demo data should be loaded.
func (c *Config) SeedDemo() bool {
	if c.Seed == nil {
		return true
	}
	return *c.Seed
}

// GetSeedFile returns the seed file path with ~ expanded.
func (c *Config) GetSeedFile() string {
	return ExpandPath(c.SeedFile)
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return logging.DefaultLevel
	}
	return c.LogLevel
}

// GetListenAddr returns the configured listen address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
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

// OpenStore creates a fresh in-memory store and fills it from the seed file,
// the demo data, or nothing, in that order of preference.
func (c *Config) OpenStore(log *logrus.Entry) (*storage.Store, error) {
	store, err := storage.Open(log)
	if err != nil {
		return nil, err
	}

	var data *models.Collections
	switch {
	case c.SeedFile != "":
		data, err = storage.ReadSeedFile(c.GetSeedFile())
		if err != nil {
			_ = store.Close()
			return nil, err
		}
	case c.SeedDemo():
		data = storage.DemoData()
	default:
		return store, nil
	}

	if err := store.Load(data); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "bbg", "config.json")
}

// Load reads config from disk, then applies BBG_* environment overrides.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("BBG_SEED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BBG_SEED: %w", err)
		}
		c.Seed = &b
	}
	if v := os.Getenv("BBG_SEED_FILE"); v != "" {
		c.SeedFile = v
	}
	if v := os.Getenv("BBG_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BBG_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	return nil
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
