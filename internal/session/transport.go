// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the real-time connection for the authenticated identity.
package session

import (
	"context"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/jeranaias/whitemirror-tui/internal/model"
)

// =============================================================================
// WEBSOCKET TRANSPORT
// =============================================================================

// WebSocketDialer returns a DialFunc that connects to the chat backend's
// WebSocket endpoint at <serverURL>/chat/ws?user_id=<id>, translating the
// http(s) scheme to ws(s) the way the web client does.
func WebSocketDialer(serverURL string) DialFunc {
	return func(ctx context.Context, identity model.Identity) (Conn, error) {
		u, err := url.Parse(serverURL)
		if err != nil {
			return nil, err
		}

		switch u.Scheme {
		case "http":
			u.Scheme = "ws"
		case "https":
			u.Scheme = "wss"
		}
		u.Path = strings.TrimRight(u.Path, "/") + "/chat/ws"

		q := u.Query()
		q.Set("user_id", identity.ID)
		u.RawQuery = q.Encode()

		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			return nil, err
		}
		return &wsConn{conn: conn}, nil
	}
}

// wsConn adapts a gorilla websocket connection to the Conn interface.
type wsConn struct {
	conn *websocket.Conn
}

func (w *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := w.conn.ReadMessage()
	return data, err
}

func (w *wsConn) WriteJSON(v any) error {
	return w.conn.WriteJSON(v)
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}
