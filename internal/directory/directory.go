// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package directory holds the contact list for the authenticated identity.
package directory

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jeranaias/whitemirror-tui/internal/model"
)

// uuidPattern matches the backend's canonical 36-character hyphenated hex
// identifiers.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Directory is the in-memory contact list. The assistant contact is always
// present and pinned first; human contacts follow in display-name order.
type Directory struct {
	mu       sync.RWMutex
	contacts []model.Contact
}

// New creates a directory holding only the assistant contact.
func New() *Directory {
	return &Directory{
		contacts: []model.Contact{model.BotContact()},
	}
}

// SetContacts replaces the human contacts, keeping the assistant pinned on
// top. Entries with the assistant's id are ignored.
func (d *Directory) SetContacts(contacts []model.Contact) {
	humans := make([]model.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.ID == model.BotContactID {
			continue
		}
		humans = append(humans, c)
	}
	sort.Slice(humans, func(i, j int) bool {
		return strings.ToLower(humans[i].DisplayName) < strings.ToLower(humans[j].DisplayName)
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	d.contacts = append([]model.Contact{model.BotContact()}, humans...)
}

// Contacts returns the full list, assistant first.
func (d *Directory) Contacts() []model.Contact {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Contact, len(d.contacts))
	copy(out, d.contacts)
	return out
}

// ByID looks up a contact by its identifier.
func (d *Directory) ByID(id string) (model.Contact, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contact{}, false
}

// Resolve maps a user-typed fragment to a contact. Display names are tried
// first with a case-insensitive substring match; failing that, a fragment
// shaped like a canonical identifier is used literally even when the contact
// is not in the directory.
func (d *Directory) Resolve(query string) (model.Contact, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.Contact{}, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	lowered := strings.ToLower(query)
	for _, c := range d.contacts {
		if strings.Contains(strings.ToLower(c.DisplayName), lowered) {
			return c, true
		}
	}
	for _, c := range d.contacts {
		if c.ID == query {
			return c, true
		}
	}
	if uuidPattern.MatchString(query) {
		return model.Contact{ID: query, DisplayName: query, Kind: model.ContactHuman}, true
	}
	return model.Contact{}, false
}
