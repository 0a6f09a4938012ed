// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"fmt"
	"strings"

	"github.com/jeranaias/whitemirror-tui/internal/api"
	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

// =============================================================================
// HELP
// =============================================================================

// FormatHelp renders the command list grouped by category.
func FormatHelp(r *Registry) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")

	groups := r.ByCategory()
	for _, category := range r.Categories() {
		b.WriteString("\n")
		b.WriteString(category)
		b.WriteString(":\n")
		for _, cmd := range groups[category] {
			fmt.Fprintf(&b, "  %-28s %s\n", cmd.Usage, cmd.Description)
		}
	}

	b.WriteString("\nTopics may span several words, e.g. /technique Playing Victim Role.\n")
	b.WriteString("Anything else you type is sent to the assistant as a question.")
	return b.String()
}

// =============================================================================
// STATISTICS
// =============================================================================

// FormatAllStats renders the ranked all-contacts manipulation overview.
func FormatAllStats(stats []api.ContactStats) string {
	if len(stats) == 0 {
		return "No manipulative messages detected in your conversations yet."
	}

	var b strings.Builder
	b.WriteString("Manipulation overview across your contacts:\n")
	for i, s := range stats {
		fmt.Fprintf(&b, "\n%d. %s — %d of %d messages flagged (%s)\n",
			i+1, s.PersonName, s.ManipulativeCount, s.TotalMessages, formatPercent(s.ManipulativePercentage))
		writeTopicCounts(&b, "techniques", s.Techniques)
		writeTopicCounts(&b, "vulnerabilities", s.Vulnerabilities)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatContactStats renders the manipulation profile of one contact.
func FormatContactStats(s *api.ContactStats) string {
	if s == nil || s.TotalMessages == 0 {
		return "No messages from this contact yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — %d of %d messages flagged (%s)\n",
		s.PersonName, s.ManipulativeCount, s.TotalMessages, formatPercent(s.ManipulativePercentage))
	writeTopicCounts(&b, "techniques", s.Techniques)
	writeTopicCounts(&b, "vulnerabilities", s.Vulnerabilities)
	return strings.TrimRight(b.String(), "\n")
}

func writeTopicCounts(b *strings.Builder, label string, counts []api.TopicCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "   %s:\n", label)
	for _, c := range counts {
		fmt.Fprintf(b, "     %-26s %3d  (%s)\n", c.Name, c.Count, formatPercent(c.Percentage))
	}
}

// =============================================================================
// TOPIC MESSAGES
// =============================================================================

// FormatTopicMessages renders the messages matching one topic query. A zero
// target means the query was scoped to all contacts.
func FormatTopicMessages(kind vocab.Kind, topic string, target model.Contact, messages []api.TopicMessage) string {
	scope := "all contacts"
	if target.ID != "" {
		scope = target.DisplayName
	}

	if len(messages) == 0 {
		return fmt.Sprintf("No messages using %s %q found (%s).", kind.String(), topic, scope)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Messages using %s %q (%s):\n", kind.String(), topic, scope)
	for _, m := range messages {
		b.WriteString("\n")
		if t := m.Time(); !t.IsZero() {
			fmt.Fprintf(&b, "[%s] ", t.Format("2006-01-02 15:04"))
		}
		b.WriteString(strings.TrimSpace(m.Content))
		b.WriteString("\n")
		if len(m.Techniques) > 0 {
			fmt.Fprintf(&b, "   techniques: %s\n", strings.Join(m.Techniques, ", "))
		}
		if len(m.Vulnerabilities) > 0 {
			fmt.Fprintf(&b, "   vulnerabilities: %s\n", strings.Join(m.Vulnerabilities, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatPercent renders a 0..1 ratio as a whole percentage.
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
