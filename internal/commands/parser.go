// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"strings"
	"unicode"

	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing user input.
type ParseResult struct {
	// IsCommand is true if the input starts with /
	IsCommand bool

	// Command is the matched command (nil if not found)
	Command *Command

	// CommandName is the raw command name (e.g., "/technique")
	CommandName string

	// RawArgs is the unparsed arguments portion
	RawArgs string

	// RawInput is the original input string
	RawInput string
}

// =============================================================================
// PARSER
// =============================================================================

// Parser handles parsing of slash commands and their arguments.
type Parser struct {
	registry *Registry
}

// NewParser creates a new parser with the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse parses user input and returns the parse result.
// Returns IsCommand=false if the input doesn't start with /
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)

	result := ParseResult{RawInput: input}
	if !strings.HasPrefix(input, "/") {
		return result
	}
	result.IsCommand = true

	name := input
	if end := strings.IndexFunc(input, unicode.IsSpace); end != -1 {
		name = input[:end]
		result.RawArgs = strings.TrimSpace(input[end:])
	}
	result.CommandName = strings.ToLower(name)
	result.Command = p.registry.Get(result.CommandName)
	return result
}

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// =============================================================================
// TOPIC / TARGET DISAMBIGUATION
// =============================================================================

// SplitTopicTarget separates a multi-word vocabulary topic from an optional
// trailing target-user fragment. Both may contain spaces, so the boundary is
// found greedily: a candidate topic grows token by token while the extended
// candidate is still a case-insensitive prefix of at least one vocabulary
// entry, and the cut lands on the longest candidate that matched an entry
// exactly. Everything after the cut is the target fragment.
func SplitTopicTarget(kind vocab.Kind, raw string) (topic, target string, err error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return "", "", &UnknownTopicError{Kind: kind}
	}

	lastExact := -1
	candidate := ""
	for i, token := range tokens {
		extended := candidate
		if extended != "" {
			extended += " "
		}
		extended += token

		if !vocab.ExtendsAny(kind, extended) {
			break
		}
		candidate = extended
		if canonical, ok := vocab.Match(kind, candidate); ok {
			lastExact = i
			topic = canonical
		}
	}

	if lastExact < 0 {
		return "", "", &UnknownTopicError{Kind: kind, Input: raw}
	}
	target = strings.Join(tokens[lastExact+1:], " ")
	return topic, target, nil
}
