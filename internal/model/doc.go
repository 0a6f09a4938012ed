// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package model contains the data structures shared across the WhiteMirror
client: identities, contacts, and chat messages.

# Key Types

## Identity

The authenticated user. Immutable once login completes; every other
component receives it by value.

## Contact

A directory entry for a party the user can message, either another human or
the built-in statistics bot. Contacts are owned by the directory; the rest of
the client treats them as read-only.

## Message

A single chat message. Messages are immutable once created. Outgoing
messages created optimistically on send carry a provisional locally generated
id; these ids are never reconciled against server-assigned ids, so a
message's id is only globally meaningful when it came from the server.

## Annotations

Optional manipulation-detection metadata attached by the backend classifier:
a flagged bit, the detected techniques, the targeted vulnerabilities, and any
analysis tool invocations the statistics bot performed.
*/
package model
