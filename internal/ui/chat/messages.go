// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the whitemirror client.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/whitemirror-tui/internal/api"
	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// contactsLoadedMsg delivers the contact directory fetch result.
type contactsLoadedMsg struct {
	contacts []model.Contact
	err      error
}

// hydratedMsg signals that history hydration for a conversation finished.
type hydratedMsg struct {
	contactID string
	err       error
}

// sessionEventMsg wraps one inbound session event.
type sessionEventMsg struct {
	event session.Event
}

// commandResultMsg carries rendered slash-command output.
type commandResultMsg struct {
	output string
}

// agentReplyMsg delivers the AI contact's response.
type agentReplyMsg struct {
	reply *api.AgentReply
	err   error
}

// connTickMsg drives the status bar's view of the session state.
type connTickMsg time.Time

// =============================================================================
// COMMANDS
// =============================================================================

// loadContactsCmd fetches the directory from the backend.
func (m Model) loadContactsCmd() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		contacts, err := backend.Contacts(ctx)
		return contactsLoadedMsg{contacts: contacts, err: err}
	}
}

// hydrateCmd loads history for one conversation. The store makes it a no-op
// when the conversation already has messages.
func (m Model) hydrateCmd(contactID string) tea.Cmd {
	st, backend := m.store, m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := st.Hydrate(ctx, contactID, backend)
		return hydratedMsg{contactID: contactID, err: err}
	}
}

// waitForEventCmd blocks on the bridged session event channel. The handler
// in Update re-issues it after each event, keeping exactly one reader alive.
func (m Model) waitForEventCmd() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return sessionEventMsg{event: <-events}
	}
}

// dispatchCmd runs one slash command through the dispatcher.
func (m Model) dispatchCmd(input string) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		out, handled := d.Dispatch(ctx, input)
		if !handled {
			return nil
		}
		return commandResultMsg{output: out}
	}
}

// agentChatCmd sends one message to the AI contact's agent endpoint.
func (m Model) agentChatCmd(text string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		reply, err := backend.SimpleChat(ctx, text)
		return agentReplyMsg{reply: reply, err: err}
	}
}

// connTickCmd schedules the next connection-state poll.
func connTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return connTickMsg(t)
	})
}
