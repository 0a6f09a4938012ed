// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the whitemirror client.
//
// The view composes a contact sidebar, the selected conversation transcript,
// a single-line input, and a status bar showing the session's connection
// state. Input starting with "/" is routed through the command dispatcher
// and its output rendered inline in the transcript area; anything else is
// sent to the selected contact (over the live session for humans, via the
// agent endpoint for the built-in AI contact).
//
// Inbound session events arrive on a channel bridged from the session
// manager's subscriber callback, so all model mutation happens on the
// Bubble Tea update loop.
package chat
