// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"strings"

	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

// =============================================================================
// PARSE ERRORS
// =============================================================================

// UnknownCommandError indicates the command name is not in the recognized
// set. The dispatcher renders help text for it instead of propagating.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command: " + e.Name
}

// UnknownTopicError indicates the topic does not match any vocabulary entry.
// Its message enumerates every valid entry of the vocabulary.
type UnknownTopicError struct {
	Kind  vocab.Kind
	Input string
}

func (e *UnknownTopicError) Error() string {
	msg := "unknown " + e.Kind.String()
	if e.Input != "" {
		msg += " '" + e.Input + "'"
	}
	return msg + ". Valid " + e.Kind.Plural() + ": " + strings.Join(vocab.Entries(e.Kind), ", ")
}

// UnknownUserError indicates the target-user fragment matched neither a
// contact display name nor the canonical identifier pattern.
type UnknownUserError struct {
	Query string
}

func (e *UnknownUserError) Error() string {
	return "unknown user: '" + e.Query + "' matches no contact name or id"
}

// ValidationError represents a missing or malformed command argument.
type ValidationError struct {
	Command string
	Message string
	Usage   string
}

func (e *ValidationError) Error() string {
	msg := e.Command + ": " + e.Message
	if e.Usage != "" {
		msg += "\nUsage: " + e.Usage
	}
	return msg
}
