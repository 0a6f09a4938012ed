// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"testing"
)

func suggestionValues(items []Suggestion) []string {
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = item.Value
	}
	return values
}

func TestComplete_CommandNames(t *testing.T) {
	c := NewCompleter(NewRegistry())

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"bare slash lists everything", "/", []string{"/help", "/all", "/user", "/technique", "/vulnerability"}},
		{"prefix filter", "/tec", []string{"/technique"}},
		{"case-insensitive", "/TEC", []string{"/technique"}},
		{"no match", "/zzz", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, stem := c.Complete(tc.input)
			if stem != "" {
				t.Errorf("stem = %q, want empty for command names", stem)
			}
			got := suggestionValues(items)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("got %v, want %v", got, tc.want)
					break
				}
			}
		})
	}
}

func TestComplete_TopicSubstring(t *testing.T) {
	c := NewCompleter(NewRegistry())

	items, stem := c.Complete("/technique role")
	got := suggestionValues(items)
	want := []string{"Playing Victim Role", "Playing Servant Role"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
	if stem != "/technique " {
		t.Errorf("stem = %q", stem)
	}
}

func TestComplete_NonTopicCommandHasNoArgCompletion(t *testing.T) {
	c := NewCompleter(NewRegistry())
	if items, _ := c.Complete("/user ja"); items != nil {
		t.Errorf("got %v, want none", suggestionValues(items))
	}
}

func TestComplete_NonCommandInput(t *testing.T) {
	c := NewCompleter(NewRegistry())
	if items, _ := c.Complete("hello there"); items != nil {
		t.Errorf("got %v, want none", suggestionValues(items))
	}
}

func TestSuggestState_VisibilityAndClamping(t *testing.T) {
	c := NewCompleter(NewRegistry())
	s := NewSuggestState()

	// /tec has exactly one candidate, auto-selected.
	s.Refresh(c, "/tec")
	if !s.Visible() || len(s.Items()) != 1 || s.Active() != 0 {
		t.Fatalf("state = visible %v, items %d, active %d", s.Visible(), len(s.Items()), s.Active())
	}

	// ArrowDown with one candidate clamps at 0.
	s.Next()
	if s.Active() != 0 {
		t.Errorf("active = %d after Next on single candidate, want 0", s.Active())
	}
	s.Prev()
	if s.Active() != 0 {
		t.Errorf("active = %d after Prev at top, want 0", s.Active())
	}
}

func TestSuggestState_NoWraparound(t *testing.T) {
	c := NewCompleter(NewRegistry())
	s := NewSuggestState()

	s.Refresh(c, "/technique role")
	if len(s.Items()) != 2 {
		t.Fatalf("items = %d, want 2", len(s.Items()))
	}

	s.Next()
	if s.Active() != 1 {
		t.Fatalf("active = %d, want 1", s.Active())
	}
	s.Next() // clamped at the end, no wrap to 0
	if s.Active() != 1 {
		t.Errorf("active = %d after Next at bottom, want 1 (no wraparound)", s.Active())
	}
	s.Prev()
	s.Prev() // clamped at the start
	if s.Active() != 0 {
		t.Errorf("active = %d after Prev at top, want 0", s.Active())
	}
}

func TestSuggestState_AcceptRewritesLine(t *testing.T) {
	c := NewCompleter(NewRegistry())
	s := NewSuggestState()

	s.Refresh(c, "/technique role")
	s.Next()
	line, ok := s.Accept()
	if !ok {
		t.Fatal("Accept should succeed while visible")
	}
	if line != "/technique Playing Servant Role " {
		t.Errorf("line = %q", line)
	}
	if s.Visible() {
		t.Error("Accept must return to hidden")
	}

	// Hidden state rejects Accept.
	if _, ok := s.Accept(); ok {
		t.Error("Accept while hidden should fail")
	}
}

func TestSuggestState_HiddenOnNonCommand(t *testing.T) {
	c := NewCompleter(NewRegistry())
	s := NewSuggestState()

	s.Refresh(c, "/tec")
	if !s.Visible() {
		t.Fatal("expected visible")
	}
	s.Refresh(c, "plain text")
	if s.Visible() {
		t.Error("non-command input must hide the popup")
	}
}

func TestSuggestState_CommandNameAccept(t *testing.T) {
	c := NewCompleter(NewRegistry())
	s := NewSuggestState()

	s.Refresh(c, "/vul")
	line, ok := s.Accept()
	if !ok || line != "/vulnerability " {
		t.Errorf("line = %q, ok = %v", line, ok)
	}
}
