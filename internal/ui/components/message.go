// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains pure rendering helpers for the chat view.
package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
)

// timeLayout is how message timestamps appear in the transcript.
const timeLayout = "15:04"

// RenderMessage renders one message row: a sender/time header line, the
// content with a direction-colored left border, and, for flagged messages,
// an amber note naming the detected techniques and vulnerabilities.
func RenderMessage(theme *styles.Theme, msg model.Message, senderName string, isAssistant bool, width int) string {
	var b strings.Builder

	header := theme.MessageSender.Render(senderName)
	if !msg.Timestamp.IsZero() {
		header += " " + theme.MessageTime.Render(msg.Timestamp.Format(timeLayout))
	}
	b.WriteString(header)
	b.WriteString("\n")

	content := msg.Content
	if isAssistant {
		content = renderMarkdown(content, theme, width-2)
	}

	style := theme.IncomingMessage
	switch {
	case msg.IsFlagged():
		style = theme.FlaggedMessage
	case isAssistant:
		style = theme.AssistantMessage
	case msg.Direction == model.DirectionOutgoing:
		style = theme.OutgoingMessage
	}

	if width > 4 {
		style = style.Width(width - 2)
	}
	b.WriteString(style.Render(content))

	if msg.IsFlagged() {
		b.WriteString("\n")
		b.WriteString(theme.FlaggedNote.Render(styles.StatusIndicators.Flagged + " possible manipulation"))
		if tags := renderTags(theme, msg.Annotations); tags != "" {
			b.WriteString("\n")
			b.WriteString(tags)
		}
	}

	return b.String()
}

// renderTags formats the technique and vulnerability annotations on a
// flagged message, one labelled line each.
func renderTags(theme *styles.Theme, a model.Annotations) string {
	var lines []string
	if len(a.Techniques) > 0 {
		lines = append(lines, theme.FlaggedTags.Render("techniques: "+strings.Join(a.Techniques, ", ")))
	}
	if len(a.Vulnerabilities) > 0 {
		lines = append(lines, theme.FlaggedTags.Render("vulnerabilities: "+strings.Join(a.Vulnerabilities, ", ")))
	}
	return strings.Join(lines, "\n")
}

// RenderToolInvocations renders the analysis calls the assistant made while
// producing a reply, as a dimmed trace under the message.
func RenderToolInvocations(theme *styles.Theme, calls []model.ToolInvocation) string {
	if len(calls) == 0 {
		return ""
	}
	var b strings.Builder
	for i, call := range calls {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.ContactMeta.Render("  > " + call.Name))
	}
	return b.String()
}

// renderMarkdown renders assistant markdown through glamour, falling back to
// the raw text when rendering fails.
func renderMarkdown(content string, theme *styles.Theme, width int) string {
	if width < 20 {
		width = 20
	}
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
