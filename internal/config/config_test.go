// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// whitemirror.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Chat.HistoryLimit != 50 {
		t.Errorf("Chat.HistoryLimit = %d", cfg.Chat.HistoryLimit)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
url = "https://mirror.example.com"

[user]
id = "249f0de2-390a-4549-a9f2-ddd2916fdfc9"
name = "Test User"

[chat]
history_limit = 25

[ui]
theme = "light"
compact_mode = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Server.URL != "https://mirror.example.com" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.User.Name != "Test User" {
		t.Errorf("User.Name = %q", cfg.User.Name)
	}
	if cfg.Chat.HistoryLimit != 25 {
		t.Errorf("Chat.HistoryLimit = %d", cfg.Chat.HistoryLimit)
	}
	if !cfg.UI.CompactMode {
		t.Error("UI.CompactMode = false")
	}
	if err := cfg.RequireIdentity(); err != nil {
		t.Errorf("RequireIdentity: %v", err)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[user]\nid = \"u1\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("Server.URL = %q, want default", cfg.Server.URL)
	}
	if cfg.Chat.HistoryLimit != 50 {
		t.Errorf("Chat.HistoryLimit = %d, want default", cfg.Chat.HistoryLimit)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WHITEMIRROR_SERVER_URL", "http://10.0.0.5:9000")
	t.Setenv("WHITEMIRROR_USER_ID", "env-user")
	t.Setenv("WHITEMIRROR_THEME", "auto")
	t.Setenv("WHITEMIRROR_HISTORY_LIMIT", "10")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.URL != "http://10.0.0.5:9000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.User.ID != "env-user" {
		t.Errorf("User.ID = %q", cfg.User.ID)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
	if cfg.Chat.HistoryLimit != 10 {
		t.Errorf("Chat.HistoryLimit = %d", cfg.Chat.HistoryLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"https ok", func(c *Config) { c.Server.URL = "https://example.com" }, false},
		{"bad scheme", func(c *Config) { c.Server.URL = "ftp://example.com" }, true},
		{"missing host", func(c *Config) { c.Server.URL = "http://" }, true},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"non-positive history limit", func(c *Config) { c.Chat.HistoryLimit = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	cfg := Default()
	if err := cfg.RequireIdentity(); err == nil {
		t.Error("empty user.id should fail")
	}
	cfg.User.ID = "u1"
	if err := cfg.RequireIdentity(); err != nil {
		t.Errorf("RequireIdentity: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := Default()
	cfg.User.ID = "u1"
	cfg.User.Name = "Test User"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions = %o, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.User.ID != "u1" || loaded.User.Name != "Test User" {
		t.Errorf("round trip lost user: %+v", loaded.User)
	}
}
