// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vocab holds the closed vocabularies recognized by the statistics
// bot: manipulation techniques and targeted vulnerabilities.
package vocab

import "strings"

// =============================================================================
// VOCABULARY KIND
// =============================================================================

// Kind identifies which vocabulary a topic belongs to.
type Kind int

const (
	KindTechnique Kind = iota
	KindVulnerability
)

// String returns the singular display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTechnique:
		return "technique"
	case KindVulnerability:
		return "vulnerability"
	default:
		return "unknown"
	}
}

// Plural returns the plural display name of the kind.
func (k Kind) Plural() string {
	switch k {
	case KindTechnique:
		return "techniques"
	case KindVulnerability:
		return "vulnerabilities"
	default:
		return "unknown"
	}
}

// =============================================================================
// CANONICAL ENTRIES
// =============================================================================

// techniques are the canonical manipulation technique names, matching the
// backend classifier's enumeration exactly.
var techniques = []string{
	"Persuasion or Seduction",
	"Shaming or Belittlement",
	"Rationalization",
	"Accusation",
	"Intimidation",
	"Playing Victim Role",
	"Playing Servant Role",
	"Evasion",
	"Brandishing Anger",
	"Denial",
	"Feigning Innocence",
}

// vulnerabilities are the canonical vulnerability names targeted by
// manipulative messages, matching the backend enumeration exactly.
var vulnerabilities = []string{
	"Dependency",
	"Naivete",
	"Low self-esteem",
	"Over-responsibility",
	"Over-intellectualization",
}

// Entries returns a copy of the canonical entries for the given kind.
func Entries(k Kind) []string {
	var src []string
	switch k {
	case KindTechnique:
		src = techniques
	case KindVulnerability:
		src = vulnerabilities
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// =============================================================================
// MATCHING
// =============================================================================

// Match returns the canonical entry equal to s under case-insensitive
// comparison, and whether one exists.
func Match(k Kind, s string) (string, bool) {
	for _, entry := range entriesOf(k) {
		if strings.EqualFold(entry, s) {
			return entry, true
		}
	}
	return "", false
}

// ExtendsAny reports whether candidate is a case-insensitive prefix of at
// least one entry of the given kind. The boundary between a multi-word topic
// and a trailing argument is found by growing a candidate token by token
// while this holds.
func ExtendsAny(k Kind, candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, entry := range entriesOf(k) {
		if strings.HasPrefix(strings.ToLower(entry), lower) {
			return true
		}
	}
	return false
}

// FilterSubstring returns the entries containing s under case-insensitive
// comparison, preserving canonical order. Used by suggestion filtering.
func FilterSubstring(k Kind, s string) []string {
	lower := strings.ToLower(s)
	var out []string
	for _, entry := range entriesOf(k) {
		if strings.Contains(strings.ToLower(entry), lower) {
			out = append(out, entry)
		}
	}
	return out
}

func entriesOf(k Kind) []string {
	switch k {
	case KindTechnique:
		return techniques
	case KindVulnerability:
		return vulnerabilities
	default:
		return nil
	}
}
