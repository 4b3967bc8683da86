// Package config loads application configuration from TOML files.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all user-tunable settings.
type Config struct {
	// DatabasePath overrides where the catalog file lives. Empty means
	// the XDG data directory.
	DatabasePath string `koanf:"database_path"`

	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error"

	// CoverCacheSize bounds the in-memory cover cache.
	CoverCacheSize int `koanf:"cover_cache_size"`

	// ScanTimeoutMinutes bounds a single scan session.
	ScanTimeoutMinutes int `koanf:"scan_timeout_minutes"`
}

// Load reads config files in priority order (last wins): the XDG config
// path, then ./config.toml. Missing files are fine; defaults fill in.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.DatabasePath != "" {
		cfg.DatabasePath = expandPath(cfg.DatabasePath)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CoverCacheSize <= 0 {
		c.CoverCacheSize = 100
	}
	if c.ScanTimeoutMinutes <= 0 {
		c.ScanTimeoutMinutes = 60
	}
}

// ResolveDatabasePath returns the configured catalog location, falling
// back to the XDG data directory.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}
	return xdg.DataFile(filepath.Join("cantabile", "catalog.json"))
}

func configPaths() []string {
	paths := []string{
		filepath.Join(xdg.ConfigHome, "cantabile", "config.toml"),
	}
	// ./config.toml wins over the XDG path.
	paths = append(paths, "config.toml")
	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
