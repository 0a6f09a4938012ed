// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the client.
package model

import "testing"

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewOutgoing(t *testing.T) {
	msg := NewOutgoing("me", "u2", "hello there")

	if msg.Direction != DirectionOutgoing {
		t.Errorf("Direction = %v, want outgoing", msg.Direction)
	}
	if msg.ConversationID != "u2" {
		t.Errorf("ConversationID = %q, want the target contact id", msg.ConversationID)
	}
	if msg.SenderID != "me" {
		t.Errorf("SenderID = %q, want me", msg.SenderID)
	}
	if msg.ID == "" {
		t.Error("outgoing message should get a provisional id")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNewOutgoing_UniqueIDs(t *testing.T) {
	a := NewOutgoing("me", "u2", "one")
	b := NewOutgoing("me", "u2", "two")
	if a.ID == b.ID {
		t.Error("provisional ids should be unique")
	}
}

func TestNewIncoming(t *testing.T) {
	ann := Annotations{IsFlagged: true, Techniques: []string{"Intimidation"}}
	msg := NewIncoming("u3", "do it now", ann)

	if msg.Direction != DirectionIncoming {
		t.Errorf("Direction = %v, want incoming", msg.Direction)
	}
	if msg.ConversationID != "u3" {
		t.Error("incoming message should be keyed by sender id")
	}
	if !msg.IsFlagged() {
		t.Error("IsFlagged should reflect annotations")
	}
}

func TestMessagePreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content unchanged", "hi", 10, "hi"},
		{"long content truncated", "this is a long message", 10, "this is..."},
		{"unicode safe", "héllo wörld exceeds", 10, "héllo w..."},
		{"tiny max", "hello", 2, "he"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := Message{Content: tc.content}
			if got := msg.Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%d) = %q, want %q", tc.maxLen, got, tc.want)
			}
		})
	}
}

// =============================================================================
// ANNOTATION TESTS
// =============================================================================

func TestAnnotationsEmpty(t *testing.T) {
	if !(Annotations{}).Empty() {
		t.Error("zero annotations should be empty")
	}
	if (Annotations{IsFlagged: true}).Empty() {
		t.Error("flagged annotations are not empty")
	}
	if (Annotations{Vulnerabilities: []string{"Naivete"}}).Empty() {
		t.Error("annotations with vulnerabilities are not empty")
	}
}

// =============================================================================
// CONTACT TESTS
// =============================================================================

func TestBotContact(t *testing.T) {
	bot := BotContact()
	if bot.ID != BotContactID || bot.DisplayName != BotContactName {
		t.Errorf("BotContact() = %+v", bot)
	}
	if !bot.IsBot() {
		t.Error("bot contact should report IsBot")
	}
}

func TestContactInitials(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"Jane Smith", "JS"},
		{"WhiteMirror AI", "WA"},
		{"Cher", "C"},
		{"", "?"},
		{"a b c", "AB"},
	}

	for _, tc := range tests {
		c := Contact{DisplayName: tc.display}
		if got := c.Initials(); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.display, got, tc.want)
		}
	}
}
