// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the real-time connection for the authenticated identity.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jeranaias/whitemirror-tui/internal/model"
)

// =============================================================================
// STATES AND ERRORS
// =============================================================================

// State is the session lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateClosed
)

// String returns a display name for the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrNotConnected is returned by Send in every state but Connected.
var ErrNotConnected = errors.New("session: not connected")

// Default reconnect budget, matching the web client.
const (
	DefaultReconnectDelay = 3000 * time.Millisecond
	DefaultMaxReconnects  = 5

	// dialTimeout bounds a single connection attempt.
	dialTimeout = 10 * time.Second
)

// =============================================================================
// TRANSPORT ABSTRACTION
// =============================================================================

// Conn is the minimal transport surface the manager needs. The production
// implementation wraps a WebSocket connection; tests inject fakes.
type Conn interface {
	// ReadMessage blocks until the next inbound payload or a transport error.
	ReadMessage() ([]byte, error)
	// WriteJSON sends one outbound frame.
	WriteJSON(v any) error
	Close() error
}

// DialFunc opens a transport connection for an identity.
type DialFunc func(ctx context.Context, identity model.Identity) (Conn, error)

// =============================================================================
// MANAGER
// =============================================================================

// Options configures a Manager.
type Options struct {
	Dial DialFunc

	// ReconnectDelay between attempts; DefaultReconnectDelay when zero.
	ReconnectDelay time.Duration

	// MaxReconnects is the automatic retry budget; DefaultMaxReconnects
	// when zero.
	MaxReconnects int

	Logger *log.Logger
}

// Manager owns one live connection and its reconnect loop. Exactly one
// manager exists per authenticated identity; its lifecycle is bound to
// login/logout.
type Manager struct {
	mu sync.Mutex

	opts     Options
	identity model.Identity

	state   State
	attempt int
	conn    Conn

	// gen invalidates read loops and timers from torn-down connections.
	gen   int
	timer *time.Timer

	handler EventHandler
}

// NewManager creates a disconnected manager.
func NewManager(opts Options) *Manager {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.MaxReconnects <= 0 {
		opts.MaxReconnects = DefaultMaxReconnects
	}
	return &Manager{
		opts:  opts,
		state: StateDisconnected,
	}
}

// State returns the current state and, while reconnecting, the attempt
// number (1-based).
func (m *Manager) State() (State, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.attempt
}

// =============================================================================
// SUBSCRIPTION
// =============================================================================

// Subscribe registers the single inbound event handler, replacing any
// previous registration.
func (m *Manager) Subscribe(h EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}

// Unsubscribe deregisters the inbound event handler. Part of scoped
// teardown at logout.
func (m *Manager) Unsubscribe() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = nil
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Connect starts a connection for the identity. Calling it while already
// connected tears the existing connection down first; the reconnect budget
// resets.
func (m *Manager) Connect(identity model.Identity) {
	m.mu.Lock()
	m.identity = identity
	m.teardownLocked()
	m.state = StateConnecting
	m.attempt = 0
	gen := m.gen
	m.mu.Unlock()

	go m.dial(gen)
}

// Disconnect closes the connection and cancels any pending reconnect. A
// no-op while Disconnected or Closed.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateDisconnected || m.state == StateClosed {
		return
	}
	m.teardownLocked()
	m.state = StateDisconnected
	m.attempt = 0
}

// teardownLocked invalidates the current connection generation, stops the
// reconnect timer, and closes the live transport if any.
func (m *Manager) teardownLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
}

// =============================================================================
// SEND
// =============================================================================

// Send delivers one chat message over the live connection. It fails with
// ErrNotConnected unless the state is Connected and never mutates session
// state; it does not queue or retry.
func (m *Manager) Send(targetContactID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConnected || m.conn == nil {
		return ErrNotConnected
	}
	return m.conn.WriteJSON(outboundFrame{
		ReceiverID: targetContactID,
		Content:    content,
	})
}

// =============================================================================
// DIAL AND RECONNECT
// =============================================================================

// dial performs one connection attempt for the given generation.
func (m *Manager) dial(gen int) {
	m.mu.Lock()
	identity := m.identity
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	conn, err := m.opts.Dial(ctx, identity)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		// Torn down while dialing.
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		m.logf("connect attempt failed: %v", err)
		m.scheduleReconnectLocked(gen)
		return
	}

	m.conn = conn
	m.state = StateConnected
	m.attempt = 0
	m.logf("session connected as %s", identity.ID)

	go m.readLoop(gen, conn)
}

// scheduleReconnectLocked advances the reconnect state machine after a
// failed attempt or a dropped connection. Callers hold the mutex.
func (m *Manager) scheduleReconnectLocked(gen int) {
	m.attempt++
	if m.attempt > m.opts.MaxReconnects {
		m.state = StateClosed
		m.logf("reconnect budget exhausted after %d attempts; session closed", m.opts.MaxReconnects)
		return
	}

	m.state = StateReconnecting
	m.logf("reconnecting (%d/%d)...", m.attempt, m.opts.MaxReconnects)

	m.timer = time.AfterFunc(m.opts.ReconnectDelay, func() {
		m.mu.Lock()
		if gen != m.gen || m.state != StateReconnecting {
			m.mu.Unlock()
			return
		}
		m.state = StateConnecting
		m.mu.Unlock()
		m.dial(gen)
	})
}

// =============================================================================
// READ LOOP
// =============================================================================

// readLoop pumps inbound payloads for one connection until it drops.
func (m *Manager) readLoop(gen int, conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			m.mu.Lock()
			if gen != m.gen {
				// Deliberate teardown, not a transport failure.
				m.mu.Unlock()
				return
			}
			m.conn = nil
			m.logf("connection lost: %v", err)
			m.scheduleReconnectLocked(gen)
			m.mu.Unlock()
			return
		}

		event, derr := decodeEvent(data)
		if derr != nil {
			// ProtocolError: drop and log, session state untouched.
			m.logf("dropping inbound payload: %v", derr)
			continue
		}

		m.mu.Lock()
		handler := m.handler
		m.mu.Unlock()
		if handler != nil {
			handler(event)
		}
	}
}

func (m *Manager) logf(format string, args ...any) {
	if m.opts.Logger != nil {
		m.opts.Logger.Printf("session: "+format, args...)
	}
}
