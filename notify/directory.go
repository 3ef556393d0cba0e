// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Contact is one user-directory entry.
type Contact struct {
	UserID  string `yaml:"user_id"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Channel string `yaml:"channel"` // preferred channel, "email" or "sms"
}

// ContactLookup resolves a user to a contact entry.
type ContactLookup interface {
	Lookup(userID string) (Contact, bool)
}

// Directory is an in-memory user directory. It is read-only after
// construction and safe for concurrent lookups.
type Directory struct {
	contacts map[string]Contact
}

// NewDirectory indexes contacts by user ID. Entries without a user ID are
// dropped; a repeated user ID keeps the last entry.
func NewDirectory(contacts []Contact) *Directory {
	d := &Directory{contacts: make(map[string]Contact, len(contacts))}
	for _, c := range contacts {
		c.UserID = strings.TrimSpace(c.UserID)
		c.Email = strings.TrimSpace(c.Email)
		c.Phone = strings.TrimSpace(c.Phone)
		c.Channel = strings.ToLower(strings.TrimSpace(c.Channel))
		if c.UserID == "" {
			continue
		}
		d.contacts[c.UserID] = c
	}
	return d
}

// LoadDirectory reads a directory file: a YAML or JSON list of contacts.
//
//	- user_id: alice
//	  email: alice@example.com
//	  channel: email
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user directory: %w", err)
	}

	var contacts []Contact
	if err := yaml.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("failed to parse user directory %s: %w", path, err)
	}

	return NewDirectory(contacts), nil
}

func (d *Directory) Lookup(userID string) (Contact, bool) {
	c, ok := d.contacts[userID]
	return c, ok
}

// Len returns the number of contacts.
func (d *Directory) Len() int {
	return len(d.contacts)
}
