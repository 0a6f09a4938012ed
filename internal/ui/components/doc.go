// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains pure rendering helpers for the chat view.
//
// Each component takes a Theme plus plain data and returns a styled string;
// none of them hold state or talk to the network. The Bubble Tea model in
// internal/ui/chat composes them into the full screen.
package components
