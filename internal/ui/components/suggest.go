// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains pure rendering helpers for the chat view.
package components

import (
	"strings"

	"github.com/jeranaias/whitemirror-tui/internal/commands"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
	"github.com/jeranaias/whitemirror-tui/internal/util"
)

// maxSuggestRows caps the popup height; with eleven techniques this keeps
// the full list visible without swallowing the transcript.
const maxSuggestRows = 12

// RenderSuggestions renders the completion popup for the current suggestion
// state. Hidden state renders to the empty string.
func RenderSuggestions(theme *styles.Theme, state *commands.SuggestState, width int) string {
	if state == nil || !state.Visible() {
		return ""
	}

	items := state.Items()
	active := state.Active()

	valueWidth := 0
	for _, item := range items {
		if w := util.StringWidth(item.Value); w > valueWidth {
			valueWidth = w
		}
	}

	var b strings.Builder
	for i, item := range items {
		if i >= maxSuggestRows {
			b.WriteString(theme.SuggestDesc.Render("..."))
			break
		}
		line := util.PadWidth(item.Value, valueWidth)
		if item.Description != "" {
			line += "  " + item.Description
		}
		line = util.TruncateWidth(line, width-4)

		if i == active {
			b.WriteString(theme.SuggestSelected.Render(line))
		} else {
			b.WriteString(theme.SuggestItem.Render(line))
		}
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}

	return theme.SuggestPopup.Render(b.String())
}
