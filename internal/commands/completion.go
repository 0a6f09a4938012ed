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
// SUGGESTION
// =============================================================================

// Suggestion is one completion candidate.
type Suggestion struct {
	// Value to insert
	Value string

	// Description shown alongside
	Description string
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer produces suggestion candidates for the input line. Command names
// are prefix-filtered; vocabulary topics are substring-filtered against the
// partial topic text.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer over the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns the candidates for the input and the stem: the leading
// part of the input an accepted candidate is appended to.
func (c *Completer) Complete(input string) (items []Suggestion, stem string) {
	if !strings.HasPrefix(input, "/") {
		return nil, ""
	}

	// Still typing the command name?
	end := strings.IndexFunc(input, unicode.IsSpace)
	if end == -1 {
		return c.completeCommands(input), ""
	}

	cmd := c.registry.Get(strings.ToLower(input[:end]))
	if cmd == nil || !cmd.AcceptsTopic {
		return nil, ""
	}

	partial := strings.TrimLeft(input[end:], " \t")
	if partial == "" {
		return c.completeTopics(cmd.TopicKind, ""), input
	}
	return c.completeTopics(cmd.TopicKind, partial), input[:len(input)-len(partial)]
}

// completeCommands returns command names matching the partial as a
// case-insensitive prefix.
func (c *Completer) completeCommands(partial string) []Suggestion {
	lowered := strings.ToLower(partial)
	var items []Suggestion
	for _, cmd := range c.registry.All() {
		if strings.HasPrefix(strings.ToLower(cmd.Name), lowered) {
			items = append(items, Suggestion{Value: cmd.Name, Description: cmd.Description})
		}
	}
	return items
}

// completeTopics returns vocabulary entries containing the partial topic
// text, in canonical order.
func (c *Completer) completeTopics(kind vocab.Kind, partial string) []Suggestion {
	var items []Suggestion
	for _, entry := range vocab.FilterSubstring(kind, partial) {
		items = append(items, Suggestion{Value: entry})
	}
	return items
}

// =============================================================================
// SUGGESTION STATE
// =============================================================================

// SuggestState is the suggestion popup's state machine: Hidden, or Visible
// with a candidate list and one active index. Navigation clamps at the list
// edges instead of wrapping.
type SuggestState struct {
	stem    string
	items   []Suggestion
	active  int
	visible bool
}

// NewSuggestState creates a hidden suggestion state.
func NewSuggestState() *SuggestState {
	return &SuggestState{}
}

// Refresh recomputes visibility for the current input. Input that is not a
// command, or yields no candidates, hides the popup.
func (s *SuggestState) Refresh(c *Completer, input string) {
	items, stem := c.Complete(input)
	if len(items) == 0 {
		s.Hide()
		return
	}
	s.stem = stem
	s.items = items
	s.active = 0
	s.visible = true
}

// Hide forces the hidden state.
func (s *SuggestState) Hide() {
	s.stem = ""
	s.items = nil
	s.active = 0
	s.visible = false
}

// Visible reports whether the popup should be shown.
func (s *SuggestState) Visible() bool {
	return s.visible
}

// Items returns the current candidates.
func (s *SuggestState) Items() []Suggestion {
	return s.items
}

// Active returns the active candidate index.
func (s *SuggestState) Active() int {
	return s.active
}

// Next moves the active index down, clamped at the last candidate.
func (s *SuggestState) Next() {
	if s.visible && s.active < len(s.items)-1 {
		s.active++
	}
}

// Prev moves the active index up, clamped at the first candidate.
func (s *SuggestState) Prev() {
	if s.visible && s.active > 0 {
		s.active--
	}
}

// Accept returns the input line rewritten with the active candidate plus a
// trailing space, and hides the popup. ok is false while hidden.
func (s *SuggestState) Accept() (line string, ok bool) {
	if !s.visible || s.active >= len(s.items) {
		return "", false
	}
	line = s.stem + s.items[s.active].Value + " "
	s.Hide()
	return line, true
}
