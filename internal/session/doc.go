// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package session owns the single real-time connection for the authenticated
identity.

The Manager runs a small state machine:

	Disconnected -> Connecting          on Connect()
	Connecting   -> Connected           on transport open
	Connected    -> Reconnecting(1)     on transport close or error
	Reconnecting(n) -> Connecting       after a fixed delay, while n <= 5
	Reconnecting(5) -> Closed           when the next attempt also fails

Closed is terminal but explicitly recoverable: a manual Connect() starts
over. Connect and Disconnect are idempotent; Connect while Connected tears
the live connection down first, and Disconnect cancels any pending
reconnect timer.

Send delivers one outbound chat message and fails with ErrNotConnected in
every state but Connected. It never queues, retries, or mutates session
state; optimistic local display is the conversation store's job.

Inbound payloads are a closed tagged union (message, receipt, error)
delivered to a single registered subscriber. Payloads that do not parse as
the union are dropped and logged without touching session state.

The transport is abstracted behind Conn and DialFunc; production dials a
WebSocket against the chat backend, tests inject fakes.
*/
package session
