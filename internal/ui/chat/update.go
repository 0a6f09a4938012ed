// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the whitemirror client.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/whitemirror-tui/internal/commands"
	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/session"
)

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case contactsLoadedMsg:
		return m.handleContactsLoaded(msg)

	case hydratedMsg:
		if msg.err != nil {
			m.logf("hydration failed for %s: %v", msg.contactID, msg.err)
			m.notice = "could not load history: " + msg.err.Error()
		}
		m.refreshViewport(true)
		return m, nil

	case sessionEventMsg:
		cmd := m.handleSessionEvent(msg.event)
		return m, tea.Batch(m.waitForEventCmd(), cmd)

	case connTickMsg:
		m.connState, m.connAttempt = m.session.State()
		return m, connTickCmd()

	case commandResultMsg:
		m.commandOut = msg.output
		m.refreshViewport(true)
		return m, nil

	case agentReplyMsg:
		return m.handleAgentReply(msg)

	case spinner.TickMsg:
		if !m.agentBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Reconnect):
		if m.connState == session.StateClosed || m.connState == session.StateDisconnected {
			m.session.Connect(m.identity)
			m.notice = ""
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NextContact):
		return m.selectContact(m.selected + 1)

	case key.Matches(msg, m.keyMap.PrevContact):
		return m.selectContact(m.selected - 1)

	case key.Matches(msg, m.keyMap.Complete):
		if m.suggest.Visible() {
			m.acceptSuggestion()
		} else {
			m.suggest.Refresh(m.completer, m.input.Value())
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Dismiss):
		if m.suggest.Visible() {
			m.suggest.Hide()
		} else {
			m.notice = ""
			m.commandOut = ""
			m.refreshViewport(false)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.suggest.Visible() {
			m.suggest.Prev()
		} else {
			m.viewport.LineUp(1)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.suggest.Visible() {
			m.suggest.Next()
		} else {
			m.viewport.LineDown(1)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.suggest.Visible() {
			m.acceptSuggestion()
			return m, nil
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.suggest.Refresh(m.completer, m.input.Value())
	return m, cmd
}

// acceptSuggestion rewrites the input line with the selected candidate.
func (m *Model) acceptSuggestion() {
	if line, ok := m.suggest.Accept(); ok {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit routes the input line: slash input goes through the dispatcher,
// everything else is a chat message for the selected contact.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if len(text) == 0 {
		return m, nil
	}

	m.input.SetValue("")
	m.suggest.Hide()
	m.notice = ""

	if commands.IsCommand(text) {
		return m, m.dispatchCmd(text)
	}

	contact, ok := m.SelectedContact()
	if !ok {
		m.notice = "no contact selected"
		return m, nil
	}

	// Optimistic append: the message renders immediately regardless of the
	// send outcome.
	m.store.AppendOutgoing(contact.ID, text)
	m.commandOut = ""
	m.refreshViewport(true)

	if contact.IsBot() {
		m.agentBusy = true
		return m, tea.Batch(m.agentChatCmd(text), m.spinner.Tick)
	}

	if err := m.session.Send(contact.ID, text); err != nil {
		m.logf("send to %s failed: %v", contact.ID, err)
		m.notice = "message not delivered: " + err.Error()
		m.refreshViewport(true)
	}
	return m, nil
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

func (m *Model) handleContactsLoaded(msg contactsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logf("contact load failed: %v", msg.err)
		m.notice = "could not load contacts: " + msg.err.Error()
		return *m, nil
	}

	m.directory.SetContacts(msg.contacts)
	m.contacts = m.directory.Contacts()
	if m.selected >= len(m.contacts) {
		m.selected = 0
	}

	if contact, ok := m.SelectedContact(); ok && !contact.IsBot() {
		return *m, m.hydrateCmd(contact.ID)
	}
	m.refreshViewport(true)
	return *m, nil
}

// handleSessionEvent applies one inbound event to the store and screen.
func (m *Model) handleSessionEvent(ev session.Event) tea.Cmd {
	switch ev := ev.(type) {
	case session.MessageEvent:
		m.store.AppendIncoming(ev.SenderID, ev.Content, ev.Annotations)
		if contact, ok := m.SelectedContact(); ok && contact.ID == ev.SenderID {
			m.refreshViewport(true)
		}

	case session.ReceiptEvent:
		// Read-state tracking is not surfaced yet.

	case session.ErrorEvent:
		m.logf("server error: %s", ev.Message)
		m.notice = "server error: " + ev.Message
		m.refreshViewport(false)
	}
	return nil
}

func (m Model) handleAgentReply(msg agentReplyMsg) (tea.Model, tea.Cmd) {
	m.agentBusy = false

	if msg.err != nil {
		m.logf("agent chat failed: %v", msg.err)
		m.notice = "assistant unavailable: " + msg.err.Error()
		m.refreshViewport(true)
		return m, nil
	}

	var invocations []model.ToolInvocation
	for _, call := range msg.reply.ToolCalls {
		invocations = append(invocations, model.ToolInvocation{
			ID:     call.ID,
			Name:   call.Name,
			Args:   call.Args,
			Result: call.Result,
		})
	}
	m.store.AppendIncoming(model.BotContactID, msg.reply.Text, model.Annotations{
		ToolInvocations: invocations,
	})

	if contact, ok := m.SelectedContact(); ok && contact.IsBot() {
		m.refreshViewport(true)
	}
	return m, nil
}

// =============================================================================
// SELECTION AND LAYOUT
// =============================================================================

// selectContact moves the selection, clamped to the contact list, and
// hydrates the newly selected conversation.
func (m Model) selectContact(index int) (tea.Model, tea.Cmd) {
	if len(m.contacts) == 0 {
		return m, nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.contacts) {
		index = len(m.contacts) - 1
	}
	if index == m.selected {
		return m, nil
	}

	m.selected = index
	m.commandOut = ""
	m.notice = ""
	m.suggest.Hide()
	m.refreshViewport(true)

	contact := m.contacts[index]
	if contact.IsBot() {
		// The assistant conversation is local-only; nothing to hydrate.
		return m, nil
	}
	return m, m.hydrateCmd(contact.ID)
}

// resize recomputes the layout after a terminal size change.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	contentWidth := width
	if m.sidebarVisible() {
		contentWidth -= sidebarWidth
	}

	// Header, input container, and status bar each take fixed rows.
	contentHeight := height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight
	m.ready = true
	m.refreshViewport(false)
}

// sidebarVisible reports whether the layout has room for the contact list.
func (m Model) sidebarVisible() bool {
	return m.width >= 60
}
