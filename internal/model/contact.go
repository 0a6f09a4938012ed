// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the client.
package model

import "strings"

// =============================================================================
// IDENTITY
// =============================================================================

// Identity is the authenticated user. Immutable after login.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// =============================================================================
// CONTACT
// =============================================================================

// ContactKind distinguishes human contacts from the built-in bot.
type ContactKind string

const (
	ContactHuman ContactKind = "human"
	ContactBot   ContactKind = "bot"
)

// BotContactID is the fixed id of the built-in statistics bot contact.
const BotContactID = "ai-assistant"

// BotContactName is the display name of the built-in statistics bot.
const BotContactName = "WhiteMirror AI"

// Contact is a directory entry for a party the user can message.
type Contact struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"display_name"`
	Kind        ContactKind `json:"kind"`
}

// IsBot returns true for the built-in statistics bot contact.
func (c Contact) IsBot() bool {
	return c.Kind == ContactBot
}

// Initials returns up to two initials for avatar-style display.
func (c Contact) Initials() string {
	var initials []rune
	for _, part := range strings.Fields(c.DisplayName) {
		initials = append(initials, []rune(part)[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return strings.ToUpper(string(initials))
}

// BotContact returns the built-in statistics bot contact.
func BotContact() Contact {
	return Contact{
		ID:          BotContactID,
		DisplayName: BotContactName,
		Kind:        ContactBot,
	}
}
