// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the REST client for the WhiteMirror chat backend.
package api

import (
	"encoding/json"
	"strings"
	"time"
)

// =============================================================================
// STATISTICS
// =============================================================================

// TopicCount is one ranked technique or vulnerability with its share of a
// contact's flagged messages.
type TopicCount struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ContactStats is the manipulation profile of one contact: how many of their
// messages were flagged and which topics dominate.
type ContactStats struct {
	PersonID               string       `json:"person_id"`
	PersonName             string       `json:"person_name"`
	TotalMessages          int          `json:"total_messages"`
	ManipulativeCount      int          `json:"manipulative_count"`
	ManipulativePercentage float64      `json:"manipulative_percentage"`
	Techniques             []TopicCount `json:"techniques"`
	Vulnerabilities        []TopicCount `json:"vulnerabilities"`
}

// TopicMessage is one flagged message matching a topic query.
type TopicMessage struct {
	MessageID       string   `json:"message_id"`
	Content         string   `json:"content"`
	Timestamp       string   `json:"timestamp"`
	Techniques      []string `json:"techniques"`
	Vulnerabilities []string `json:"vulnerabilities"`
}

// Time parses the message timestamp, tolerating the backend's zone-less
// ISO-8601 variant. Returns the zero time when unparseable.
func (m TopicMessage) Time() time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

// =============================================================================
// AGENT
// =============================================================================

// ToolCall is one tool invocation the agent made while composing a reply.
type ToolCall struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Args   string `json:"args"`
	Result string `json:"result"`
}

// AgentReply is the agent's answer to a simple-chat question.
type AgentReply struct {
	Text      string     `json:"text"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

// =============================================================================
// WIRE HELPERS
// =============================================================================

// envelope is the backend's standard response wrapper for the statistics
// endpoints. Other endpoints return bare JSON.
type envelope struct {
	Code     int             `json:"code"`
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

// flexID decodes an identifier that the backend serializes as either a JSON
// string (UUID) or a bare number (legacy integer ids).
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

// wireUser is one entry of GET /auth/users. Field names differ between
// backend revisions, so both spellings are accepted.
type wireUser struct {
	UserID   flexID `json:"user_id"`
	ID       flexID `json:"id"`
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (u wireUser) id() string {
	if u.UserID != "" {
		return u.UserID.String()
	}
	return u.ID.String()
}

func (u wireUser) name() string {
	if u.UserName != "" {
		return u.UserName
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// wireHistoryItem is one entry of GET /chat/messages, oldest first.
type wireHistoryItem struct {
	ID              flexID   `json:"id"`
	SenderID        flexID   `json:"sender_id"`
	SenderName      string   `json:"sender_name"`
	Content         string   `json:"content"`
	Timestamp       string   `json:"timestamp"`
	IsSentByMe      bool     `json:"is_sent_by_me"`
	IsManipulative  bool     `json:"is_manipulative"`
	Techniques      []string `json:"techniques"`
	Vulnerabilities []string `json:"vulnerabilities"`
}

func (m wireHistoryItem) time() time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}
