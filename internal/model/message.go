// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the client.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTION
// =============================================================================

// Direction indicates whether a message was sent or received by this client.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// =============================================================================
// ANNOTATIONS
// =============================================================================

// ToolInvocation records one analysis tool call the statistics bot performed
// while producing an answer.
type ToolInvocation struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Args   string `json:"args,omitempty"`
	Result string `json:"result,omitempty"`
}

// Annotations holds optional manipulation-detection metadata attached to a
// message by the backend classifier.
type Annotations struct {
	IsFlagged       bool             `json:"is_flagged"`
	Techniques      []string         `json:"techniques,omitempty"`
	Vulnerabilities []string         `json:"vulnerabilities,omitempty"`
	ToolInvocations []ToolInvocation `json:"tool_invocations,omitempty"`
}

// Empty returns true when the annotations carry no information at all.
func (a Annotations) Empty() bool {
	return !a.IsFlagged &&
		len(a.Techniques) == 0 &&
		len(a.Vulnerabilities) == 0 &&
		len(a.ToolInvocations) == 0
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message represents a single message in a conversation. Immutable once
// created.
type Message struct {
	// Identity. Server-sourced ids are unique within their conversation;
	// ids from NewOutgoing are provisional and never reconciled.
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`

	// Content
	Content   string    `json:"content"`
	Direction Direction `json:"direction"`
	Timestamp time.Time `json:"timestamp"`

	// Detection metadata, zero value when the classifier saw nothing.
	Annotations Annotations `json:"annotations,omitempty"`
}

// NewOutgoing creates an optimistic outgoing message with a provisional
// locally generated id, ready for immediate rendering.
func NewOutgoing(senderID, contactID, content string) Message {
	return Message{
		ID:             uuid.NewString(),
		ConversationID: contactID,
		SenderID:       senderID,
		Content:        content,
		Direction:      DirectionOutgoing,
		Timestamp:      time.Now(),
	}
}

// NewIncoming creates an incoming message keyed to the sender's
// conversation.
func NewIncoming(senderID, content string, annotations Annotations) Message {
	return Message{
		ID:             uuid.NewString(),
		ConversationID: senderID,
		SenderID:       senderID,
		Content:        content,
		Direction:      DirectionIncoming,
		Timestamp:      time.Now(),
		Annotations:    annotations,
	}
}

// IsFlagged returns true when the classifier marked this message as
// potentially manipulative.
func (m Message) IsFlagged() bool {
	return m.Annotations.IsFlagged
}

// Preview returns a truncated single-line preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
