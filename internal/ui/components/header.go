// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains pure rendering helpers for the chat view.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
	"github.com/jeranaias/whitemirror-tui/internal/util"
)

// RenderHeader renders the top bar: application title on the left, the
// logged-in identity on the right.
func RenderHeader(theme *styles.Theme, title, identity string, width int) string {
	if width <= 0 {
		return ""
	}

	left := theme.HeaderTitle.Render(title)
	right := theme.HeaderSubtitle.Render(identity)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Narrow terminal: drop the identity rather than wrap.
		return theme.Header.Width(width).Render(util.TruncateWidth(title, width-4))
	}

	line := left + lipgloss.NewStyle().Width(gap).Render("") + right
	return theme.Header.Width(width).Render(line)
}
