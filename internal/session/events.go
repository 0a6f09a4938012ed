// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the real-time connection for the authenticated identity.
package session

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/whitemirror-tui/internal/model"
)

// =============================================================================
// EVENT UNION
// =============================================================================

// Event is one decoded inbound payload. The union is closed: message,
// receipt, or error.
type Event interface {
	isEvent()
}

// MessageEvent is an inbound chat message pushed by the server.
type MessageEvent struct {
	MessageID   string
	SenderID    string
	SenderName  string
	Content     string
	Timestamp   time.Time
	Annotations model.Annotations
}

// ReceiptEvent acknowledges delivery of a previously sent message. It is a
// hook point for future read-state tracking; the client currently does
// nothing with it beyond exposing it.
type ReceiptEvent struct {
	MessageID string
	Delivered bool
	Timestamp time.Time
}

// ErrorEvent carries a server-reported error string.
type ErrorEvent struct {
	Message string
}

func (MessageEvent) isEvent() {}
func (ReceiptEvent) isEvent() {}
func (ErrorEvent) isEvent()   {}

// EventHandler receives decoded inbound events. At most one handler is
// registered per manager.
type EventHandler func(Event)

// =============================================================================
// PROTOCOL ERROR
// =============================================================================

// ProtocolError describes an inbound payload that could not be decoded as
// the tagged union. Such payloads are dropped and logged; they never change
// session state.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "session: protocol error: " + e.Reason
}

// =============================================================================
// WIRE FORMAT
// =============================================================================

// outboundFrame is the wire shape of one outbound send.
type outboundFrame struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// inboundFrame is the superset of fields across the inbound union; Type
// selects which of them are meaningful.
type inboundFrame struct {
	Type string `json:"type"`

	// type == "message"
	MessageID       string   `json:"message_id"`
	SenderID        string   `json:"sender_id"`
	SenderName      string   `json:"sender_name"`
	Content         string   `json:"content"`
	IsManipulative  bool     `json:"is_manipulative"`
	Techniques      []string `json:"techniques"`
	Vulnerabilities []string `json:"vulnerabilities"`

	// type == "receipt"
	Delivered bool `json:"delivered"`

	// type == "error"
	Message string `json:"message"`

	Timestamp string `json:"timestamp"`
}

// decodeEvent parses one inbound payload into the event union. Unknown or
// missing tags are the ProtocolError case.
func decodeEvent(data []byte) (Event, error) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, &ProtocolError{Reason: "malformed JSON: " + err.Error()}
	}

	switch frame.Type {
	case "message":
		if frame.SenderID == "" {
			return nil, &ProtocolError{Reason: "message payload without sender_id"}
		}
		return MessageEvent{
			MessageID:  frame.MessageID,
			SenderID:   frame.SenderID,
			SenderName: frame.SenderName,
			Content:    frame.Content,
			Timestamp:  parseWireTime(frame.Timestamp),
			Annotations: model.Annotations{
				IsFlagged:       frame.IsManipulative,
				Techniques:      frame.Techniques,
				Vulnerabilities: frame.Vulnerabilities,
			},
		}, nil

	case "receipt":
		return ReceiptEvent{
			MessageID: frame.MessageID,
			Delivered: frame.Delivered,
			Timestamp: parseWireTime(frame.Timestamp),
		}, nil

	case "error":
		return ErrorEvent{Message: frame.Message}, nil

	case "":
		return nil, &ProtocolError{Reason: "payload without type tag"}

	default:
		return nil, &ProtocolError{Reason: "unknown type tag " + frame.Type}
	}
}

// parseWireTime parses the backend's ISO-8601 timestamps, tolerating the
// variant without a zone offset. Returns the zero time when unparseable.
func parseWireTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
