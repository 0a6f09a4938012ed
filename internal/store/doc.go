// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package store owns the in-memory per-contact conversation logs for the
logged-in identity.

Each conversation is an append-only ordered sequence of messages keyed by
contact id. Three sources feed a conversation:

  - optimistic local sends (AppendOutgoing), appended synchronously before
    the network round-trip,
  - asynchronous real-time pushes from the session (AppendIncoming), keyed
    by sender so that messages from non-selected contacts still land in the
    right log,
  - one-shot history hydration (Hydrate), a load-once cache fill that is
    skipped entirely once a conversation holds any message.

Message order within a conversation is the order appends complete at the
store. A live push racing an in-flight hydration is appended in arrival
order with no deduplication, so timestamp order is not guaranteed.

The store is process-lifetime state only; nothing is persisted across
restarts.
*/
package store
