// whitemirror - a terminal client for manipulation-aware messaging.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/whitemirror-tui/internal/api"
	"github.com/jeranaias/whitemirror-tui/internal/commands"
	"github.com/jeranaias/whitemirror-tui/internal/config"
	"github.com/jeranaias/whitemirror-tui/internal/directory"
	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/session"
	"github.com/jeranaias/whitemirror-tui/internal/store"
	"github.com/jeranaias/whitemirror-tui/internal/ui/chat"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "", "path to config.toml (default ~/.whitemirror/config.toml)")
		serverURL   = flag.String("server", "", "backend base URL (overrides config)")
		userID      = flag.String("user", "", "user id to connect as (overrides config)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("whitemirror %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if *userID != "" {
		cfg.User.ID = *userID
	}
	if err := cfg.RequireIdentity(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := runTUI(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running whitemirror: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads from the explicit path when given, otherwise from the
// default location (missing file falls back to defaults).
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// openLogger opens the debug log. The TUI owns the terminal, so logging
// always goes to a file; without a configured path it defaults to
// ~/.whitemirror/whitemirror.log.
func openLogger(cfg *config.Config) (*log.Logger, func(), error) {
	path := cfg.Log.Path
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return log.New(io.Discard, "", 0), func() {}, nil
		}
		path = filepath.Join(dir, "whitemirror.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("could not create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

// runTUI wires the client together and runs the Bubble Tea program.
func runTUI(cfg *config.Config, logger *log.Logger) error {
	identity := model.Identity{
		ID:          cfg.User.ID,
		DisplayName: cfg.User.Name,
	}

	theme := styles.NewThemeWithMode(cfg.UI.Theme)

	client := api.NewClient(cfg.Server.URL).
		WithIdentity(identity).
		WithLogger(logger)

	st := store.New(identity)
	st.SetHistoryLimit(cfg.Chat.HistoryLimit)

	dir := directory.New()

	mgr := session.NewManager(session.Options{
		Dial:   session.WebSocketDialer(cfg.Server.URL),
		Logger: logger,
	})
	defer mgr.Disconnect()

	dispatcher := commands.NewDispatcher(commands.NewRegistry(), client, dir).
		WithLogger(logger)

	m := chat.New(chat.Deps{
		Theme:      theme,
		Identity:   identity,
		Store:      st,
		Directory:  dir,
		Session:    mgr,
		Backend:    client,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	mgr.Connect(identity)
	logger.Printf("whitemirror %s starting for %s against %s", Version, identity.ID, cfg.Server.URL)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
