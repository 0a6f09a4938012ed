// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"context"
	"sort"

	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/technique")
	Name string

	// Aliases are alternative names (e.g., "/tech")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/technique <topic> [user]")
	Usage string

	// Category for grouping in help display
	Category string

	// AcceptsTopic marks commands whose first argument is a multi-word
	// vocabulary topic; TopicKind selects the vocabulary.
	AcceptsTopic bool
	TopicKind    vocab.Kind

	// Handler executes the command against the dispatcher's collaborators.
	Handler func(ctx context.Context, d *Dispatcher, rawArgs string) (string, error)
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
	order    []string
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands in registration order.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// ByCategory returns commands grouped by category, each group in
// registration order.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// Categories returns the category names in sorted order.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range r.All() {
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		if !seen[category] {
			seen[category] = true
			names = append(names, category)
		}
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands",
		Usage:       "/help",
		Category:    "General",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "/all",
		Description: "Manipulation statistics across all contacts",
		Usage:       "/all",
		Category:    "Statistics",
		Handler:     handleAll,
	})

	r.Register(&Command{
		Name:        "/user",
		Description: "Manipulation statistics for one contact",
		Usage:       "/user <name or id>",
		Category:    "Statistics",
		Handler:     handleUser,
	})

	r.Register(&Command{
		Name:         "/technique",
		Aliases:      []string{"/tech"},
		Description:  "Messages using a manipulation technique",
		Usage:        "/technique <topic> [user]",
		Category:     "Statistics",
		AcceptsTopic: true,
		TopicKind:    vocab.KindTechnique,
		Handler:      handleTechnique,
	})

	r.Register(&Command{
		Name:         "/vulnerability",
		Aliases:      []string{"/vuln"},
		Description:  "Messages targeting a vulnerability",
		Usage:        "/vulnerability <topic> [user]",
		Category:     "Statistics",
		AcceptsTopic: true,
		TopicKind:    vocab.KindVulnerability,
		Handler:      handleVulnerability,
	})
}
