// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package api is the REST client for the WhiteMirror chat backend.

It covers the four HTTP surfaces the client needs alongside the WebSocket
session:

  - contact discovery (GET /auth/users)
  - conversation history (GET /chat/messages), exposed as the conversation
    store's HistoryProvider
  - manipulation statistics (POST /statistics/*), both the all-contacts
    ranking and per-contact profiles, plus flagged-message queries by
    technique or vulnerability
  - the analysis agent (POST /agent/simple-chat)

The statistics endpoints wrap their payloads in a {code, success, message,
response} envelope; history and the user list return bare JSON. Identifier
and field-name drift between backend revisions is absorbed at the wire
types, so callers only see canonical shapes.

All requests go through a shared client-side rate limiter and a response
size cap.
*/
package api
