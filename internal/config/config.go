// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// whitemirror.
//
// Configuration lives in TOML at ~/.whitemirror/config.toml, with built-in
// defaults and WHITEMIRROR_* environment variable overrides applied on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/whitemirror-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete whitemirror configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	User   UserConfig   `toml:"user"`
	Chat   ChatConfig   `toml:"chat"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig locates the chat backend.
type ServerConfig struct {
	// URL is the backend base URL; the WebSocket endpoint is derived from it
	URL string `toml:"url"`
}

// UserConfig carries the authenticated identity.
type UserConfig struct {
	// ID is the user's canonical identifier on the backend
	ID string `toml:"id"`
	// Name is the display name shown for outgoing messages
	Name string `toml:"name"`
}

// ChatConfig tunes conversation behavior.
type ChatConfig struct {
	// HistoryLimit is the page size for conversation hydration
	HistoryLimit int `toml:"history_limit"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// CompactMode uses a more compact layout
	CompactMode bool `toml:"compact_mode"`
}

// LogConfig controls the debug log. The TUI owns stdout, so logging always
// goes to a file.
type LogConfig struct {
	// Path to the log file; empty disables logging
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8000",
		},
		Chat: ChatConfig{
			HistoryLimit: 50,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// Dir returns the whitemirror configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".whitemirror"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when it does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies WHITEMIRROR_* environment variables over the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("WHITEMIRROR_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("WHITEMIRROR_USER_ID"); v != "" {
		c.User.ID = v
	}
	if v := os.Getenv("WHITEMIRROR_USER_NAME"); v != "" {
		c.User.Name = v
	}
	if v := os.Getenv("WHITEMIRROR_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("WHITEMIRROR_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("WHITEMIRROR_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Chat.HistoryLimit = n
		}
	}
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()
	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	if c.Chat.HistoryLimit <= 0 {
		c.Chat.HistoryLimit = defaults.Chat.HistoryLimit
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ErrMissingIdentity indicates no user id is configured; the client cannot
// connect without one.
var ErrMissingIdentity = errors.New("config: user.id is not set (set WHITEMIRROR_USER_ID or [user] id in config.toml)")

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url: unsupported scheme %q (want http or https)", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("server.url: missing host")
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q (want dark, light, or auto)", c.UI.Theme)
	}

	if c.Chat.HistoryLimit <= 0 {
		return fmt.Errorf("chat.history_limit: must be positive, got %d", c.Chat.HistoryLimit)
	}
	return nil
}

// RequireIdentity validates that an identity is configured.
func (c *Config) RequireIdentity() error {
	if c.User.ID == "" {
		return ErrMissingIdentity
	}
	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with owner-only
// permissions. The write is atomic so a crash mid-save cannot leave a
// truncated config behind.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
