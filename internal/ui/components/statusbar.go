// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains pure rendering helpers for the chat view.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/whitemirror-tui/internal/session"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
	"github.com/jeranaias/whitemirror-tui/internal/util"
)

// RenderStatusBar renders the bottom bar: connection state on the left,
// key hints on the right.
func RenderStatusBar(theme *styles.Theme, state session.State, attempt, maxAttempts, width int) string {
	if width <= 0 {
		return ""
	}

	left := renderConnState(theme, state, attempt, maxAttempts)
	right := theme.ShortcutKey.Render("tab") + theme.ShortcutDesc.Render(" complete ") +
		theme.ShortcutKey.Render("ctrl+n/p") + theme.ShortcutDesc.Render(" contact ") +
		theme.ShortcutKey.Render("ctrl+c") + theme.ShortcutDesc.Render(" quit")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return theme.StatusBar.Width(width).Render(util.TruncateWidth(left, width-2))
	}
	return theme.StatusBar.Width(width).Render(left + lipgloss.NewStyle().Width(gap).Render("") + right)
}

// renderConnState maps the session state to a colored indicator.
func renderConnState(theme *styles.Theme, state session.State, attempt, maxAttempts int) string {
	switch state {
	case session.StateConnected:
		return theme.ConnConnected.Render(styles.StatusIndicators.Active + " connected")
	case session.StateConnecting:
		return theme.ConnConnecting.Render(styles.StatusIndicators.Pending + " connecting...")
	case session.StateReconnecting:
		return theme.ConnReconnect.Render(fmt.Sprintf("%s reconnecting (%d/%d)", styles.StatusIndicators.Warning, attempt, maxAttempts))
	case session.StateClosed:
		return theme.ConnOffline.Render(styles.StatusIndicators.Error + " offline (retries exhausted, press ctrl+r)")
	default:
		return theme.ConnOffline.Render(styles.StatusIndicators.Error + " disconnected")
	}
}
