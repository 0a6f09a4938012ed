// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package commands provides the slash command system for the TUI.

Five commands are recognized: /help, /all, /user <name or id>,
/technique <topic> [user], and /vulnerability <topic> [user]. Input without
the "/" prefix is not a command; the UI routes it to the assistant as a
free-form question.

Because both a topic and a trailing user name may span several words,
SplitTopicTarget finds the boundary greedily: the candidate topic grows
token by token while it remains a case-insensitive prefix of at least one
vocabulary entry, and the cut lands on the longest candidate that matched an
entry exactly. "/vulnerability Dependency Jane Smith" therefore splits into
the topic "Dependency" and the target fragment "Jane Smith".

Target fragments resolve against contact display names by case-insensitive
substring, falling back to literal 36-character hyphenated hex identifiers.

The Dispatcher turns every failure mode into displayable text: an unknown
command renders help, an unknown topic enumerates the valid entries, and
provider failures become an inline error line. Nothing propagates as a raw
error to the UI loop.

The Completer and SuggestState drive the suggestion popup: command-name
prefix filtering before the first space, vocabulary substring filtering
after it, with edge-clamped navigation.
*/
package commands
