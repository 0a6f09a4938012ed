// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the whitemirror client.
package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/whitemirror-tui/internal/api"
	"github.com/jeranaias/whitemirror-tui/internal/commands"
	"github.com/jeranaias/whitemirror-tui/internal/directory"
	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/session"
	"github.com/jeranaias/whitemirror-tui/internal/store"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

// =============================================================================
// FAKES
// =============================================================================

type sentFrame struct {
	contactID string
	content   string
}

type fakeTransport struct {
	state   session.State
	sends   []sentFrame
	sendErr error

	connects int
	handler  session.EventHandler
}

func (f *fakeTransport) Connect(identity model.Identity) { f.connects++ }

func (f *fakeTransport) Send(targetContactID, content string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sends = append(f.sends, sentFrame{contactID: targetContactID, content: content})
	return nil
}

func (f *fakeTransport) State() (session.State, int) { return f.state, 0 }

func (f *fakeTransport) Subscribe(h session.EventHandler) { f.handler = h }

type fakeBackend struct {
	contacts   []model.Contact
	history    []store.HistoryRecord
	agentReply *api.AgentReply
	agentErr   error

	historyCalls int
}

func (f *fakeBackend) Contacts(ctx context.Context) ([]model.Contact, error) {
	return f.contacts, nil
}

func (f *fakeBackend) History(ctx context.Context, contactID string, limit int) ([]store.HistoryRecord, error) {
	f.historyCalls++
	return f.history, nil
}

func (f *fakeBackend) SimpleChat(ctx context.Context, message string) (*api.AgentReply, error) {
	return f.agentReply, f.agentErr
}

type noopProvider struct{}

func (noopProvider) AllStatistics(ctx context.Context) ([]api.ContactStats, error) {
	return nil, nil
}

func (noopProvider) SingleStatistics(ctx context.Context, selectedUserID string) (*api.ContactStats, error) {
	return &api.ContactStats{}, nil
}

func (noopProvider) MessagesByTopic(ctx context.Context, kind vocab.Kind, topic, selectedUserID string, limit int) ([]api.TopicMessage, error) {
	return nil, nil
}

// =============================================================================
// HARNESS
// =============================================================================

type harness struct {
	model     Model
	transport *fakeTransport
	backend   *fakeBackend
	store     *store.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	identity := model.Identity{ID: "me", DisplayName: "Alex Doe"}
	st := store.New(identity)
	dir := directory.New()
	transport := &fakeTransport{state: session.StateConnected}
	backend := &fakeBackend{
		contacts: []model.Contact{
			{ID: "u2", DisplayName: "Jane Smith", Kind: model.ContactHuman},
			{ID: "u3", DisplayName: "Zoe Park", Kind: model.ContactHuman},
		},
	}
	dispatcher := commands.NewDispatcher(commands.NewRegistry(), noopProvider{}, dir)

	m := New(Deps{
		Theme:      styles.NewThemeWithMode("dark"),
		Identity:   identity,
		Store:      st,
		Directory:  dir,
		Session:    transport,
		Backend:    backend,
		Dispatcher: dispatcher,
	})

	h := &harness{model: m, transport: transport, backend: backend, store: st}
	h.update(tea.WindowSizeMsg{Width: 100, Height: 40})
	h.update(contactsLoadedMsg{contacts: backend.contacts})
	return h
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(key tea.KeyType) tea.Cmd {
	return h.update(tea.KeyMsg{Type: key})
}

// selectByID moves the selection to the contact with the given id.
func (h *harness) selectByID(t *testing.T, id string) {
	t.Helper()
	for i, c := range h.model.contacts {
		if c.ID == id {
			next, cmd := h.model.selectContact(i)
			h.model = next.(Model)
			if cmd != nil {
				h.update(cmd())
			}
			return
		}
	}
	t.Fatalf("contact %s not in directory", id)
}

// =============================================================================
// TESTS
// =============================================================================

func TestContactsLoaded_PinsAssistantFirst(t *testing.T) {
	h := newHarness(t)

	if len(h.model.contacts) != 3 {
		t.Fatalf("contacts = %d, want 3 (assistant + 2 humans)", len(h.model.contacts))
	}
	if !h.model.contacts[0].IsBot() {
		t.Errorf("first contact = %+v, want the assistant", h.model.contacts[0])
	}
}

func TestSubmit_SendsToSelectedContact(t *testing.T) {
	h := newHarness(t)
	h.selectByID(t, "u2")

	h.model.input.SetValue("hello jane")
	h.press(tea.KeyEnter)

	if len(h.transport.sends) != 1 {
		t.Fatalf("sends = %d, want 1", len(h.transport.sends))
	}
	if h.transport.sends[0] != (sentFrame{contactID: "u2", content: "hello jane"}) {
		t.Errorf("sent = %+v", h.transport.sends[0])
	}

	msgs := h.store.Conversation("u2")
	if len(msgs) != 1 || msgs[0].Direction != model.DirectionOutgoing {
		t.Fatalf("conversation = %+v, want one outgoing message", msgs)
	}
	if h.model.input.Value() != "" {
		t.Error("input should clear after submit")
	}
}

func TestSubmit_OptimisticAppendSurvivesSendFailure(t *testing.T) {
	h := newHarness(t)
	h.selectByID(t, "u2")
	h.transport.sendErr = session.ErrNotConnected

	h.model.input.SetValue("are you there?")
	h.press(tea.KeyEnter)

	// The message renders even though delivery failed.
	if got := h.store.MessageCount("u2"); got != 1 {
		t.Errorf("message count = %d, want 1", got)
	}
	if !strings.Contains(h.model.notice, "not delivered") {
		t.Errorf("notice = %q, want delivery failure", h.model.notice)
	}
}

func TestSubmit_EmptyInputIsNoop(t *testing.T) {
	h := newHarness(t)
	h.selectByID(t, "u2")

	h.press(tea.KeyEnter)
	if len(h.transport.sends) != 0 || h.store.MessageCount("u2") != 0 {
		t.Error("empty input must not send anything")
	}
}

func TestSubmit_SlashCommandDispatched(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("/help")
	cmd := h.press(tea.KeyEnter)
	if cmd == nil {
		t.Fatal("slash input should produce a dispatch command")
	}

	msg := cmd()
	result, ok := msg.(commandResultMsg)
	if !ok {
		t.Fatalf("msg = %T, want commandResultMsg", msg)
	}
	if !strings.Contains(result.output, "/technique <topic> [user]") {
		t.Errorf("output = %q", result.output)
	}

	h.update(result)
	if h.model.commandOut == "" {
		t.Error("command output should be retained for the transcript")
	}
	if !strings.Contains(h.model.renderTranscript(), "/technique") {
		t.Error("transcript should include the command output")
	}
}

func TestSessionEvent_IncomingRecordedForUnselectedContact(t *testing.T) {
	h := newHarness(t)
	h.selectByID(t, "u2")

	ev := session.MessageEvent{
		SenderID:   "u3",
		SenderName: "Zoe Park",
		Content:    "ping",
		Annotations: model.Annotations{
			IsFlagged:  true,
			Techniques: []string{"Evasion"},
		},
	}
	h.update(sessionEventMsg{event: ev})

	msgs := h.store.Conversation("u3")
	if len(msgs) != 1 {
		t.Fatalf("u3 conversation = %d messages, want 1", len(msgs))
	}
	if !msgs[0].IsFlagged() {
		t.Error("annotations lost on append")
	}

	// Summary updates even though u3 is not selected.
	if _, ok := h.store.ContactSummary("u3"); !ok {
		t.Error("summary missing for unselected contact")
	}
}

func TestSessionEvent_ErrorBecomesNotice(t *testing.T) {
	h := newHarness(t)
	h.update(sessionEventMsg{event: session.ErrorEvent{Message: "rate limited"}})
	if !strings.Contains(h.model.notice, "rate limited") {
		t.Errorf("notice = %q", h.model.notice)
	}
}

func TestAgentConversation_RoundTrip(t *testing.T) {
	h := newHarness(t)
	// The assistant is pinned first and selected by default.
	if contact, _ := h.model.SelectedContact(); !contact.IsBot() {
		t.Fatal("default selection should be the assistant")
	}

	h.backend.agentReply = &api.AgentReply{
		Text: "## Summary\nNothing alarming.",
		ToolCalls: []api.ToolCall{
			{ID: "t1", Name: "all_statistics"},
		},
	}

	h.model.input.SetValue("how are my conversations?")
	cmd := h.press(tea.KeyEnter)
	if !h.model.agentBusy {
		t.Error("agentBusy should be set while the request is in flight")
	}
	if cmd == nil {
		t.Fatal("expected an agent command")
	}

	// Run the batched commands and feed the agent reply back through Update.
	var reply agentReplyMsg
	found := false
	collect(cmd, func(msg tea.Msg) {
		if r, ok := msg.(agentReplyMsg); ok {
			reply = r
			found = true
		}
	})
	if !found {
		t.Fatal("agent command did not yield a reply message")
	}
	h.update(reply)

	if h.model.agentBusy {
		t.Error("agentBusy should clear after the reply")
	}

	msgs := h.store.Conversation(model.BotContactID)
	if len(msgs) != 2 {
		t.Fatalf("assistant conversation = %d messages, want outgoing + reply", len(msgs))
	}
	got := msgs[1]
	if got.Direction != model.DirectionIncoming || !strings.Contains(got.Content, "Nothing alarming") {
		t.Errorf("reply = %+v", got)
	}
	if len(got.Annotations.ToolInvocations) != 1 || got.Annotations.ToolInvocations[0].Name != "all_statistics" {
		t.Errorf("tool invocations = %+v", got.Annotations.ToolInvocations)
	}
}

func TestAgentConversation_ErrorNotice(t *testing.T) {
	h := newHarness(t)
	h.update(agentReplyMsg{err: errors.New("backend down")})
	if !strings.Contains(h.model.notice, "backend down") {
		t.Errorf("notice = %q", h.model.notice)
	}
}

func TestSelectContact_ClampsAndHydrates(t *testing.T) {
	h := newHarness(t)

	next, cmd := h.model.selectContact(99)
	h.model = next.(Model)
	if h.model.selected != len(h.model.contacts)-1 {
		t.Errorf("selected = %d, want clamp to last", h.model.selected)
	}
	if cmd == nil {
		t.Fatal("selecting a human should hydrate")
	}
	h.update(cmd())
	if h.backend.historyCalls != 1 {
		t.Errorf("history calls = %d, want 1", h.backend.historyCalls)
	}

	next, _ = h.model.selectContact(-5)
	h.model = next.(Model)
	if h.model.selected != 0 {
		t.Errorf("selected = %d, want clamp to 0", h.model.selected)
	}
}

func TestTabCompletion_AcceptRewritesInput(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("/tec")
	h.press(tea.KeyTab) // open popup
	if !h.model.suggest.Visible() {
		t.Fatal("popup should open for a command prefix")
	}
	h.press(tea.KeyTab) // accept sole candidate
	if got := h.model.input.Value(); got != "/technique " {
		t.Errorf("input = %q, want %q", got, "/technique ")
	}
	if h.model.suggest.Visible() {
		t.Error("popup should hide after accept")
	}
}

func TestEnterAcceptsSuggestionInsteadOfSending(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("/technique role")
	h.press(tea.KeyTab) // open popup
	h.press(tea.KeyEnter)

	if got := h.model.input.Value(); got != "/technique Playing Victim Role " {
		t.Errorf("input = %q", got)
	}
	if len(h.transport.sends) != 0 {
		t.Error("accepting a suggestion must not send a message")
	}
}

func TestReconnectKey_OnlyWhenOffline(t *testing.T) {
	h := newHarness(t)

	h.update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if h.transport.connects != 0 {
		t.Error("reconnect while connected should be ignored")
	}

	h.model.connState = session.StateClosed
	h.update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if h.transport.connects != 1 {
		t.Errorf("connects = %d, want 1", h.transport.connects)
	}
}

// collect runs a command tree, recursing into batches, and hands every
// resulting message to fn.
func collect(cmd tea.Cmd, fn func(tea.Msg)) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			collect(sub, fn)
		}
		return
	}
	fn(msg)
}
