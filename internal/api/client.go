// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the REST client for the WhiteMirror chat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/store"
	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// DefaultHistoryLimit matches the backend's default page size.
	DefaultHistoryLimit = 50

	// DefaultTopicLimit is the default number of messages returned by the
	// topic query endpoints.
	DefaultTopicLimit = 10

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// requestsPerSecond caps the client-side request rate so dashboard
	// refreshes cannot hammer the backend.
	requestsPerSecond = 5
	requestBurst      = 10
)

// ErrNotConfigured indicates the client has no user identity bound, which
// every endpoint except the contact list requires.
var ErrNotConfigured = errors.New("api: no user identity configured")

// APIError represents a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// Client talks to the WhiteMirror backend's REST surface: contact discovery,
// conversation history, manipulation statistics, and the analysis agent.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(requestsPerSecond, requestBurst),
	}
}

// WithIdentity binds the authenticated user. Endpoints that scope results to
// a user fail with ErrNotConfigured until this is set.
func (c *Client) WithIdentity(identity model.Identity) *Client {
	c.userID = identity.ID
	return c
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithLogger sets the request logger.
func (c *Client) WithLogger(logger *log.Logger) *Client {
	c.logger = logger
	return c
}

// =============================================================================
// CONTACTS
// =============================================================================

// Contacts fetches the directory of human contacts, excluding the bound
// identity itself. The caller pins the assistant contact on top.
func (c *Client) Contacts(ctx context.Context) ([]model.Contact, error) {
	body, err := c.get(ctx, "/auth/users", nil)
	if err != nil {
		return nil, err
	}

	var users []wireUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("parse user list: %w", err)
	}

	contacts := make([]model.Contact, 0, len(users))
	for _, u := range users {
		if u.id() == "" || u.id() == c.userID {
			continue
		}
		contacts = append(contacts, model.Contact{
			ID:          u.id(),
			DisplayName: u.name(),
			Kind:        model.ContactHuman,
		})
	}
	return contacts, nil
}

// =============================================================================
// HISTORY
// =============================================================================

// History fetches the persisted conversation with one contact, oldest first.
// It satisfies the conversation store's HistoryProvider.
func (c *Client) History(ctx context.Context, contactID string, limit int) ([]store.HistoryRecord, error) {
	if c.userID == "" {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	body, err := c.get(ctx, "/chat/messages", url.Values{
		"user_id":       {c.userID},
		"other_user_id": {contactID},
		"limit":         {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}

	var items []wireHistoryItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}

	records := make([]store.HistoryRecord, 0, len(items))
	for _, item := range items {
		records = append(records, store.HistoryRecord{
			ID:        item.ID.String(),
			Content:   item.Content,
			SentByMe:  item.IsSentByMe,
			Timestamp: item.time(),
			Annotations: model.Annotations{
				IsFlagged:       item.IsManipulative,
				Techniques:      item.Techniques,
				Vulnerabilities: item.Vulnerabilities,
			},
		})
	}
	return records, nil
}

// =============================================================================
// STATISTICS
// =============================================================================

// AllStatistics fetches the manipulation profile of every contact who has
// messaged the bound identity, most manipulative first.
func (c *Client) AllStatistics(ctx context.Context) ([]ContactStats, error) {
	if c.userID == "" {
		return nil, ErrNotConfigured
	}

	raw, err := c.postEnvelope(ctx, "/statistics/all_statistics", map[string]any{
		"user_id": c.userID,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Statistics []ContactStats `json:"statistics"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse statistics: %w", err)
	}
	return payload.Statistics, nil
}

// SingleStatistics fetches the manipulation profile of one contact.
func (c *Client) SingleStatistics(ctx context.Context, selectedUserID string) (*ContactStats, error) {
	if c.userID == "" {
		return nil, ErrNotConfigured
	}

	raw, err := c.postEnvelope(ctx, "/statistics/single_statistics", map[string]any{
		"user_id":          c.userID,
		"selected_user_id": selectedUserID,
	})
	if err != nil {
		return nil, err
	}

	var stats ContactStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("parse statistics: %w", err)
	}
	return &stats, nil
}

// MessagesByTopic fetches flagged messages matching one technique or
// vulnerability, optionally narrowed to a single sender. selectedUserID may
// be empty to search across all contacts.
func (c *Client) MessagesByTopic(ctx context.Context, kind vocab.Kind, topic, selectedUserID string, limit int) ([]TopicMessage, error) {
	if c.userID == "" {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = DefaultTopicLimit
	}

	req := map[string]any{
		"user_id": c.userID,
		"limit":   limit,
	}
	var path string
	switch kind {
	case vocab.KindTechnique:
		path = "/statistics/messages_by_technique"
		req["technique"] = topic
	case vocab.KindVulnerability:
		path = "/statistics/messages_by_vulnerability"
		req["vulnerability"] = topic
	default:
		return nil, fmt.Errorf("api: unsupported topic kind %v", kind)
	}
	if selectedUserID != "" {
		req["selected_user_id"] = selectedUserID
	}

	raw, err := c.postEnvelope(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Messages []TopicMessage `json:"messages"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse topic messages: %w", err)
	}
	return payload.Messages, nil
}

// =============================================================================
// AGENT
// =============================================================================

// SimpleChat asks the analysis agent a free-form question about the bound
// identity's conversations and returns its answer with the tool calls it
// made along the way.
func (c *Client) SimpleChat(ctx context.Context, message string) (*AgentReply, error) {
	if c.userID == "" {
		return nil, ErrNotConfigured
	}

	body, err := c.post(ctx, "/agent/simple-chat", map[string]any{
		"user_id": c.userID,
		"message": message,
	})
	if err != nil {
		return nil, err
	}

	var reply struct {
		Success   bool       `json:"success"`
		Message   string     `json:"message"`
		Text      string     `json:"text"`
		ToolCalls []ToolCall `json:"tool_calls"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("parse agent reply: %w", err)
	}
	if !reply.Success {
		return nil, &APIError{Status: http.StatusOK, Message: reply.Message}
	}
	return &AgentReply{Text: reply.Text, ToolCalls: reply.ToolCalls}, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// get performs a rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// post performs a rate-limited POST with a JSON body and returns the
// response body.
func (c *Client) post(ctx context.Context, path string, reqBody any) ([]byte, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// postEnvelope performs a POST against an endpoint that wraps its payload in
// the standard {code, success, message, response} envelope and returns the
// inner response.
func (c *Client) postEnvelope(ctx context.Context, path string, reqBody any) (json.RawMessage, error) {
	body, err := c.post(ctx, path, reqBody)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if !env.Success {
		return nil, &APIError{Status: http.StatusOK, Message: env.Message}
	}
	return env.Response, nil
}

// do executes one request under the rate limiter and reads the body with a
// size limit.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logf("%s %s: %d (%v)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp.StatusCode, body)
	}
	return body, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// errorFromResponse converts a non-2xx response to an APIError, pulling the
// detail string FastAPI puts in error bodies when present.
func errorFromResponse(status int, body []byte) error {
	var detail struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &detail); err == nil {
		if detail.Detail != "" {
			msg = detail.Detail
		} else {
			msg = detail.Message
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &APIError{Status: status, Message: msg}
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf("api: "+format, args...)
	}
}
