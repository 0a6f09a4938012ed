// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

func TestParse(t *testing.T) {
	parser := NewParser(NewRegistry())

	tests := []struct {
		name        string
		input       string
		isCommand   bool
		commandName string
		rawArgs     string
		known       bool
	}{
		{"plain text", "how are you", false, "", "", false},
		{"bare help", "/help", true, "/help", "", true},
		{"alias", "/h", true, "/h", "", true},
		{"case-insensitive name", "/HELP", true, "/help", "", true},
		{"args preserved raw", "/technique Playing Victim Role", true, "/technique", "Playing Victim Role", true},
		{"surrounding whitespace", "  /user  jane  ", true, "/user", "jane", true},
		{"unknown command", "/frobnicate now", true, "/frobnicate", "now", false},
		{"slash alone", "/", true, "/", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parser.Parse(tc.input)
			if got.IsCommand != tc.isCommand {
				t.Fatalf("IsCommand = %v, want %v", got.IsCommand, tc.isCommand)
			}
			if got.CommandName != tc.commandName {
				t.Errorf("CommandName = %q, want %q", got.CommandName, tc.commandName)
			}
			if got.RawArgs != tc.rawArgs {
				t.Errorf("RawArgs = %q, want %q", got.RawArgs, tc.rawArgs)
			}
			if (got.Command != nil) != tc.known {
				t.Errorf("Command resolved = %v, want %v", got.Command != nil, tc.known)
			}
		})
	}
}

func TestSplitTopicTarget(t *testing.T) {
	tests := []struct {
		name       string
		kind       vocab.Kind
		raw        string
		wantTopic  string
		wantTarget string
		wantErr    bool
	}{
		{
			name:      "multi-word topic no target",
			kind:      vocab.KindTechnique,
			raw:       "Playing Victim Role",
			wantTopic: "Playing Victim Role",
		},
		{
			name:       "single-word topic with multi-word target",
			kind:       vocab.KindVulnerability,
			raw:        "Dependency Jane Smith",
			wantTopic:  "Dependency",
			wantTarget: "Jane Smith",
		},
		{
			name:       "multi-word topic with target",
			kind:       vocab.KindTechnique,
			raw:        "playing victim role jane",
			wantTopic:  "Playing Victim Role",
			wantTarget: "jane",
		},
		{
			name:      "case-insensitive topic canonicalized",
			kind:      vocab.KindTechnique,
			raw:       "rationalization",
			wantTopic: "Rationalization",
		},
		{
			name:       "hyphenated vulnerability",
			kind:       vocab.KindVulnerability,
			raw:        "low self-esteem u2",
			wantTopic:  "Low self-esteem",
			wantTarget: "u2",
		},
		{
			name:    "unknown topic",
			kind:    vocab.KindTechnique,
			raw:     "Nonexistent Topic Here",
			wantErr: true,
		},
		{
			name:    "prefix that never matches exactly",
			kind:    vocab.KindTechnique,
			raw:     "Playing",
			wantErr: true,
		},
		{
			name:    "empty remainder",
			kind:    vocab.KindVulnerability,
			raw:     "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			topic, target, err := SplitTopicTarget(tc.kind, tc.raw)
			if tc.wantErr {
				var topicErr *UnknownTopicError
				if !errors.As(err, &topicErr) {
					t.Fatalf("err = %v, want UnknownTopicError", err)
				}
				// The message enumerates every valid entry.
				for _, entry := range vocab.Entries(tc.kind) {
					if !strings.Contains(topicErr.Error(), entry) {
						t.Errorf("error message missing entry %q", entry)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitTopicTarget: %v", err)
			}
			if topic != tc.wantTopic || target != tc.wantTarget {
				t.Errorf("got (%q, %q), want (%q, %q)", topic, target, tc.wantTopic, tc.wantTarget)
			}
		})
	}
}
