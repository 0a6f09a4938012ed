// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains pure rendering helpers for the chat view.
package components

import (
	"strings"

	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/store"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
	"github.com/jeranaias/whitemirror-tui/internal/util"
)

// SummaryFunc looks up the sidebar summary for a contact, if one exists.
type SummaryFunc func(contactID string) (store.Summary, bool)

// RenderSidebar renders the contact list. The selected contact is
// highlighted; the AI assistant keeps its pinned first position and its own
// accent. Each entry shows initials, the display name, and a one-line
// preview of the latest message when the conversation has any.
func RenderSidebar(theme *styles.Theme, contacts []model.Contact, summary SummaryFunc, selected, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	// Border and padding eat into the inner width.
	inner := width - 3
	if inner < 8 {
		inner = 8
	}

	var b strings.Builder
	b.WriteString(theme.SidebarTitle.Render(util.PadWidth("CONTACTS", inner)))
	b.WriteString("\n")

	rows := 1
	for i, contact := range contacts {
		if rows >= height {
			break
		}

		line := contact.Initials() + " " + contact.DisplayName
		line = util.TruncateWidth(line, inner)

		style := theme.ContactItem
		if contact.IsBot() {
			style = theme.ContactAssistant
		}
		if i == selected {
			style = theme.ContactSelected
		}
		b.WriteString(style.Render(util.PadWidth(line, inner)))
		b.WriteString("\n")
		rows++

		if sum, ok := summary(contact.ID); ok && rows < height {
			preview := util.TruncateWidth("  "+strings.ReplaceAll(sum.LastMessage, "\n", " "), inner)
			b.WriteString(theme.ContactMeta.Render(util.PadWidth(preview, inner)))
			b.WriteString("\n")
			rows++
		}
	}

	return theme.Sidebar.Width(width - 1).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}
