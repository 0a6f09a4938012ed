// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the in-memory per-contact conversation logs.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/whitemirror-tui/internal/model"
)

// DefaultHistoryLimit is the number of history records fetched per
// conversation when hydrating.
const DefaultHistoryLimit = 50

// =============================================================================
// HISTORY PROVIDER
// =============================================================================

// HistoryRecord is one historical message as returned by the backend.
type HistoryRecord struct {
	ID          string
	Content     string
	SentByMe    bool
	Timestamp   time.Time
	Annotations model.Annotations
}

// HistoryProvider fetches historical messages for one conversation.
type HistoryProvider interface {
	History(ctx context.Context, contactID string, limit int) ([]HistoryRecord, error)
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the sidebar line for one contact: the latest message preview
// and when it arrived.
type Summary struct {
	LastMessage string
	LastTime    time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store holds every conversation for the logged-in identity. Conversations
// are append-only ordered logs keyed by contact id; order is the order in
// which appends complete at the store, not wall-clock send/receive order.
//
// The store is created at login and dropped at logout; it is always passed
// in as a dependency, never reached through package state. The mutex exists
// because inbound session events append from the session's read goroutine
// while the UI goroutine reads.
type Store struct {
	mu sync.Mutex

	identity     model.Identity
	historyLimit int

	conversations map[string][]model.Message
	summaries     map[string]Summary
}

// New creates an empty store for the given identity.
func New(identity model.Identity) *Store {
	return &Store{
		identity:      identity,
		historyLimit:  DefaultHistoryLimit,
		conversations: make(map[string][]model.Message),
		summaries:     make(map[string]Summary),
	}
}

// SetHistoryLimit overrides the number of records requested on hydration.
func (s *Store) SetHistoryLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > 0 {
		s.historyLimit = limit
	}
}

// Identity returns the identity this store belongs to.
func (s *Store) Identity() model.Identity {
	return s.identity
}

// =============================================================================
// APPEND OPERATIONS
// =============================================================================

// AppendOutgoing creates a provisional outgoing message and appends it
// synchronously, returning it for immediate rendering. The send itself is
// the caller's business; the optimistic append happens regardless of the
// send outcome.
func (s *Store) AppendOutgoing(contactID, content string) model.Message {
	msg := model.NewOutgoing(s.identity.ID, contactID, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(msg)
	return msg
}

// AppendIncoming records a message pushed by the session. The conversation
// is keyed by the sender, not by whichever contact is currently selected,
// so messages from non-selected contacts are recorded and their summaries
// updated.
func (s *Store) AppendIncoming(senderID, content string, annotations model.Annotations) model.Message {
	msg := model.NewIncoming(senderID, content, annotations)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(msg)
	return msg
}

// append adds msg to its conversation and refreshes the summary.
// Callers hold the mutex.
func (s *Store) append(msg model.Message) {
	key := msg.ConversationID
	s.conversations[key] = append(s.conversations[key], msg)
	s.summaries[key] = Summary{
		LastMessage: msg.Content,
		LastTime:    msg.Timestamp,
	}
}

// =============================================================================
// HYDRATION
// =============================================================================

// Hydrate fetches history for a conversation exactly once: if the
// conversation already holds at least one message the call is a no-op and
// no fetch is issued. Records are appended in provider order with
// Direction derived from SentByMe.
//
// A real-time message arriving while the fetch is in flight is appended in
// arrival order alongside the history batch, without deduplication; callers
// must not assume monotonic timestamp order within a conversation.
func (s *Store) Hydrate(ctx context.Context, contactID string, provider HistoryProvider) error {
	s.mu.Lock()
	if len(s.conversations[contactID]) > 0 {
		s.mu.Unlock()
		return nil
	}
	limit := s.historyLimit
	s.mu.Unlock()

	records, err := provider.History(ctx, contactID, limit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		msg := model.Message{
			ID:             rec.ID,
			ConversationID: contactID,
			Content:        rec.Content,
			Timestamp:      rec.Timestamp,
			Annotations:    rec.Annotations,
		}
		if rec.SentByMe {
			msg.Direction = model.DirectionOutgoing
			msg.SenderID = s.identity.ID
		} else {
			msg.Direction = model.DirectionIncoming
			msg.SenderID = contactID
		}
		s.append(msg)
	}
	return nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// Conversation returns the ordered message log for a contact. The returned
// slice is a copy; the log itself never shrinks or reorders after append.
func (s *Store) Conversation(contactID string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.conversations[contactID]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// MessageCount returns the number of messages in a contact's conversation.
func (s *Store) MessageCount(contactID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations[contactID])
}

// ContactSummary returns the sidebar summary for a contact, if any message
// has been recorded for it.
func (s *Store) ContactSummary(contactID string) (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.summaries[contactID]
	return sum, ok
}
