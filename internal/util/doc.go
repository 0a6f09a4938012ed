// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the whitemirror TUI.
//
// String helpers are display-width aware (via go-runewidth) so layout code
// can truncate and pad contact names and message previews without corrupting
// UTF-8 or misjudging CJK column widths. AtomicWriteFile provides crash-safe
// persistence for the config file.
package util
