// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vocab holds the closed vocabularies recognized by the statistics
// bot: manipulation techniques and targeted vulnerabilities.
package vocab

import "testing"

func TestEntries_Counts(t *testing.T) {
	if got := len(Entries(KindTechnique)); got != 11 {
		t.Errorf("technique count = %d, want 11", got)
	}
	if got := len(Entries(KindVulnerability)); got != 5 {
		t.Errorf("vulnerability count = %d, want 5", got)
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	a := Entries(KindTechnique)
	a[0] = "mutated"
	b := Entries(KindTechnique)
	if b[0] == "mutated" {
		t.Error("Entries should return a copy, not the backing slice")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		input string
		want  string
		ok    bool
	}{
		{"exact technique", KindTechnique, "Playing Victim Role", "Playing Victim Role", true},
		{"case-insensitive technique", KindTechnique, "playing victim role", "Playing Victim Role", true},
		{"upper-case vulnerability", KindVulnerability, "DEPENDENCY", "Dependency", true},
		{"hyphenated vulnerability", KindVulnerability, "low self-esteem", "Low self-esteem", true},
		{"unknown topic", KindTechnique, "Nonexistent Topic", "", false},
		{"wrong vocabulary", KindVulnerability, "Accusation", "", false},
		{"partial is not a match", KindTechnique, "Playing", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Match(tc.kind, tc.input)
			if ok != tc.ok || got != tc.want {
				t.Errorf("Match(%v, %q) = (%q, %v), want (%q, %v)", tc.kind, tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestExtendsAny(t *testing.T) {
	tests := []struct {
		candidate string
		want      bool
	}{
		{"Playing", true},
		{"playing v", true},
		{"Playing Victim Role", true},
		{"Playing Victim Role John", false},
		{"Nonexistent", false},
		{"", true}, // empty string is a prefix of everything
	}

	for _, tc := range tests {
		if got := ExtendsAny(KindTechnique, tc.candidate); got != tc.want {
			t.Errorf("ExtendsAny(technique, %q) = %v, want %v", tc.candidate, got, tc.want)
		}
	}
}

func TestFilterSubstring(t *testing.T) {
	got := FilterSubstring(KindTechnique, "role")
	if len(got) != 2 {
		t.Fatalf("FilterSubstring(technique, role) returned %d entries, want 2: %v", len(got), got)
	}
	if got[0] != "Playing Victim Role" || got[1] != "Playing Servant Role" {
		t.Errorf("FilterSubstring order = %v, want canonical order", got)
	}

	if got := FilterSubstring(KindVulnerability, ""); len(got) != 5 {
		t.Errorf("empty filter should return all 5 vulnerabilities, got %d", len(got))
	}
}

func TestKindStrings(t *testing.T) {
	if KindTechnique.String() != "technique" || KindTechnique.Plural() != "techniques" {
		t.Error("technique kind strings wrong")
	}
	if KindVulnerability.String() != "vulnerability" || KindVulnerability.Plural() != "vulnerabilities" {
		t.Error("vulnerability kind strings wrong")
	}
}
