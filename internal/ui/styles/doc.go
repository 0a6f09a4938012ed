// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the whitemirror TUI.
//
// The palette is defined once in colors.go as lipgloss.AdaptiveColor values
// so every style adapts to light and dark terminals. Theme bundles the
// concrete styles used by the chat view: sidebar, message rows (including
// the amber marking for manipulation-flagged messages), input area, status
// bar, and the suggestion popup.
//
// Status indicators are ASCII shapes ([OK], [X], [!]) so state is legible
// without color.
package styles
