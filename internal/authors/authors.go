// SPDX-License-Identifier: AGPL-3.0-or-later

/*
git-mit - commit message trailers and lints for pairing developers.
It keeps the Co-authored-by and Relates-to trailers of every commit accurate and checks outgoing messages against a configurable set of rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package authors holds the catalogue that maps the initials a developer
// types to full author identities.
//
// A catalogue is read from a TOML or YAML document, or from
// author.config.<initial>.<field> keys of a config store, and is always
// rendered back as TOML sorted by initial.
package authors

import (
	"fmt"
	"sort"
	"strings"
)

// Author is a commit author identity.
type Author struct {
	Name       string
	Email      string
	SigningKey string
}

// String renders the author the way git writes identities.
func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Catalogue maps initials to authors. The zero value is an empty catalogue.
// Catalogues are values: every operation returns a new one.
type Catalogue struct {
	authors map[string]Author
}

// New builds a catalogue from entries.
func New(entries map[string]Author) Catalogue {
	c := Catalogue{authors: make(map[string]Author, len(entries))}
	for k, v := range entries {
		c.authors[k] = v
	}
	return c
}

// Len returns the number of entries.
func (c Catalogue) Len() int { return len(c.authors) }

// Get returns the author registered under initial.
func (c Catalogue) Get(initial string) (Author, bool) {
	a, ok := c.authors[initial]
	return a, ok
}

// Initials returns every initial in ascending order.
func (c Catalogue) Initials() []string {
	out := make([]string, 0, len(c.authors))
	for k := range c.authors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Entries returns a copy of the underlying mapping.
func (c Catalogue) Entries() map[string]Author {
	out := make(map[string]Author, len(c.authors))
	for k, v := range c.authors {
		out[k] = v
	}
	return out
}

// Merge returns the union of c and other. Entries in other win.
func (c Catalogue) Merge(other Catalogue) Catalogue {
	out := New(c.authors)
	for k, v := range other.authors {
		out.authors[k] = v
	}
	return out
}

// Missing returns the initials that have no entry, in the order given and
// without repeats.
func (c Catalogue) Missing(initials []string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, i := range initials {
		if _, ok := c.authors[i]; ok || seen[i] {
			continue
		}
		seen[i] = true
		missing = append(missing, i)
	}
	return missing
}

// Lookup resolves initials to authors in the order given.
func (c Catalogue) Lookup(initials []string) ([]Author, error) {
	if missing := c.Missing(initials); len(missing) > 0 {
		return nil, &MissingInitialsError{Initials: missing}
	}
	out := make([]Author, 0, len(initials))
	for _, i := range initials {
		out = append(out, c.authors[i])
	}
	return out, nil
}

// Example returns the catalogue printed by the example command.
func Example() Catalogue {
	return New(map[string]Author{
		"ae": {Name: "Anyone Else", Email: "anyone@example.com"},
		"bt": {Name: "Billie Thompson", Email: "billie@example.com", SigningKey: "0A46826A"},
		"se": {Name: "Someone Else", Email: "someone@example.com"},
	})
}

// MissingInitialsError reports initials absent from the catalogue.
type MissingInitialsError struct {
	Initials []string
}

func (e *MissingInitialsError) Error() string {
	return fmt.Sprintf("could not find the initials %s in the author catalogue", strings.Join(e.Initials, ", "))
}
