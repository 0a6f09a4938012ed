// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the whitemirror client.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/session"
	"github.com/jeranaias/whitemirror-tui/internal/ui/components"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
)

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "starting whitemirror..."
	}

	header := components.RenderHeader(m.theme, "whitemirror", m.identity.DisplayName, m.width)

	content := m.viewport.View()
	if m.sidebarVisible() {
		sidebar := components.RenderSidebar(
			m.theme, m.contacts, m.store.ContactSummary,
			m.selected, sidebarWidth, m.viewport.Height,
		)
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	}

	var sections []string
	sections = append(sections, header, content)

	if popup := components.RenderSuggestions(m.theme, m.suggest, m.width); popup != "" {
		sections = append(sections, popup)
	}

	inputLine := m.input.View()
	if m.agentBusy {
		inputLine += " " + m.theme.Spinner.Render(m.spinner.View()) +
			m.theme.ThinkingText.Render(" thinking...")
	}
	sections = append(sections, m.theme.InputContainer.Width(m.width).Render(inputLine))

	sections = append(sections, components.RenderStatusBar(
		m.theme, m.connState, m.connAttempt, m.maxReconnects(), m.width,
	))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// maxReconnects mirrors the session's retry budget for the status bar.
func (m Model) maxReconnects() int {
	return session.DefaultMaxReconnects
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport rebuilds the transcript for the selected conversation.
// When follow is true the viewport jumps to the newest content.
func (m *Model) refreshViewport(follow bool) {
	m.viewport.SetContent(m.renderTranscript())
	if follow {
		m.viewport.GotoBottom()
	}
}

// renderTranscript renders the selected conversation plus any pending
// command output and notice.
func (m *Model) renderTranscript() string {
	contact, ok := m.SelectedContact()
	if !ok {
		return m.theme.SystemNotice.Render("no contacts yet")
	}

	width := m.viewport.Width
	var b strings.Builder

	b.WriteString(m.theme.HeaderSubtitle.Render("conversation with " + contact.DisplayName))
	b.WriteString("\n\n")

	msgs := m.store.Conversation(contact.ID)
	if len(msgs) == 0 {
		b.WriteString(m.theme.SystemNotice.Render("no messages yet"))
		b.WriteString("\n")
	}
	for _, msg := range msgs {
		isAssistant := contact.IsBot() && msg.Direction == model.DirectionIncoming
		b.WriteString(components.RenderMessage(m.theme, msg, m.senderName(contact, msg), isAssistant, width))
		b.WriteString("\n")
		if calls := components.RenderToolInvocations(m.theme, msg.Annotations.ToolInvocations); calls != "" {
			b.WriteString(calls)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.commandOut != "" {
		style := m.theme.CommandOutput
		if width > 4 {
			style = style.Width(width - 2)
		}
		b.WriteString(style.Render(m.commandOut))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(styles.RenderError(m.notice))
		b.WriteString("\n")
	}

	return b.String()
}

// senderName resolves the display name for a message in the transcript.
func (m *Model) senderName(contact model.Contact, msg model.Message) string {
	if msg.Direction == model.DirectionOutgoing {
		if m.identity.DisplayName != "" {
			return m.identity.DisplayName
		}
		return "you"
	}
	return contact.DisplayName
}
