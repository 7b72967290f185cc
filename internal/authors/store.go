// SPDX-License-Identifier: AGPL-3.0-or-later
package authors

import (
	"strings"

	"github.com/bartekus/gitmit/internal/store"
)

const configPrefix = "author.config."

// FromStore assembles the catalogue kept under author.config.<initial>.*.
// Initials without both a name and an email are skipped.
func FromStore(s store.Store) (Catalogue, error) {
	keys, err := s.Entries(configPrefix + "*")
	if err != nil {
		return Catalogue{}, err
	}

	partial := make(map[string]*Author)
	for _, key := range keys {
		rest := strings.TrimPrefix(key, configPrefix)
		dot := strings.LastIndexByte(rest, '.')
		if dot <= 0 {
			continue
		}
		initial, field := rest[:dot], rest[dot+1:]

		value, ok, err := s.String(key)
		if err != nil {
			return Catalogue{}, err
		}
		if !ok {
			continue
		}

		a, exists := partial[initial]
		if !exists {
			a = &Author{}
			partial[initial] = a
		}
		switch field {
		case "name":
			a.Name = value
		case "email":
			a.Email = value
		case "signingkey":
			a.SigningKey = value
		}
	}

	c := New(nil)
	for initial, a := range partial {
		if a.Name == "" || a.Email == "" {
			continue
		}
		c.authors[initial] = *a
	}
	return c, nil
}

// Save stores a under initial in the persistent catalogue keys.
func Save(s store.Store, initial string, a Author) error {
	prefix := configPrefix + initial + "."
	if err := s.SetString(prefix+"name", a.Name); err != nil {
		return err
	}
	if err := s.SetString(prefix+"email", a.Email); err != nil {
		return err
	}
	if a.SigningKey == "" {
		return s.Remove(prefix + "signingkey")
	}
	return s.SetString(prefix+"signingkey", a.SigningKey)
}
