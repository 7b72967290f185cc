// SPDX-License-Identifier: AGPL-3.0-or-later

/*
git-mit - commit message trailers and lints for pairing developers.
It keeps the Co-authored-by and Relates-to trailers of every commit accurate and checks outgoing messages against a configurable set of rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package session keeps the time-limited pairing state of a repository:
// who is committing, who they are working with and which issue the work
// relates to.
//
// All state lives in a store.Store. Expiry is an absolute Unix time written
// next to the values and compared with the clock on every read, so nothing
// runs in the background.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bartekus/gitmit/internal/authors"
	"github.com/bartekus/gitmit/internal/store"
)

const (
	keyUserName       = "user.name"
	keyUserEmail      = "user.email"
	keyUserSigningKey = "user.signingkey"
	keyCoAuthors      = "author.coauthors"
	keyAuthorExpires  = "author.expires"
	keyRelatesTo      = "relate.to"
	keyRelateExpires  = "relate.expires"
)

// ErrNoAuthorsToSet is returned when SetAuthors is called without authors.
var ErrNoAuthorsToSet = errors.New("no authors to set")

// Status describes a time-limited value.
type Status int

const (
	// Unset means the value was never written.
	Unset Status = iota
	// Expired means the value was written but its expiry has passed.
	Expired
	Active
)

func (s Status) String() string {
	switch s {
	case Unset:
		return "unset"
	case Expired:
		return "expired"
	case Active:
		return "active"
	}
	return "unknown"
}

// CoAuthors is the result of reading the co-author list.
type CoAuthors struct {
	Status    Status
	ExpiresAt time.Time
	// Authors is only filled when Status is Active.
	Authors []authors.Author
}

// RelatesTo is the result of reading the issue reference.
type RelatesTo struct {
	Status    Status
	ExpiresAt time.Time
	Ref       string
}

// StaleError reports that the co-author list is needed but not active.
type StaleError struct {
	Status    Status
	ExpiredAt time.Time
}

func (e *StaleError) Error() string {
	if e.Status == Expired {
		return fmt.Sprintf("the authors expired at %s", e.ExpiredAt.Format(time.RFC3339))
	}
	return "no authors have been set"
}

// Session reads and writes pairing state.
type Session struct {
	store store.Store
	now   func() time.Time
}

type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(st store.Store, opts ...Option) *Session {
	s := &Session{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetAuthors records list[0] as the committer and the rest as co-authors,
// valid for ttl.
func (s *Session) SetAuthors(list []authors.Author, ttl time.Duration) error {
	if len(list) == 0 {
		return ErrNoAuthorsToSet
	}

	if err := s.removeCoAuthors(); err != nil {
		return err
	}

	primary := list[0]
	if err := s.store.SetString(keyUserName, primary.Name); err != nil {
		return err
	}
	if err := s.store.SetString(keyUserEmail, primary.Email); err != nil {
		return err
	}
	if primary.SigningKey != "" {
		if err := s.store.SetString(keyUserSigningKey, primary.SigningKey); err != nil {
			return err
		}
	} else if err := s.store.Remove(keyUserSigningKey); err != nil {
		return err
	}

	for i, a := range list[1:] {
		prefix := coAuthorPrefix(i)
		if err := s.store.SetString(prefix+"name", a.Name); err != nil {
			return err
		}
		if err := s.store.SetString(prefix+"email", a.Email); err != nil {
			return err
		}
	}

	return s.store.SetInt64(keyAuthorExpires, s.now().Add(ttl).Unix())
}

func (s *Session) removeCoAuthors() error {
	keys, err := s.store.Entries(keyCoAuthors + ".*")
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.store.Remove(k); err != nil {
			return err
		}
		// A value from a wider scope stays visible after the removal and is
		// masked with an empty one in the write scope.
		v, ok, err := s.store.String(k)
		if err != nil {
			return err
		}
		if ok && v != "" {
			if err := s.store.SetString(k, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// CoAuthors reads the co-author list. The walk over indices stops at the
// first index missing a name or an email; an empty value counts as missing.
func (s *Session) CoAuthors() (CoAuthors, error) {
	status, expires, err := s.expiry(keyAuthorExpires)
	if err != nil || status != Active {
		return CoAuthors{Status: status, ExpiresAt: expires}, err
	}

	out := CoAuthors{Status: Active, ExpiresAt: expires, Authors: []authors.Author{}}
	for i := 0; ; i++ {
		prefix := coAuthorPrefix(i)
		name, okName, err := s.store.String(prefix + "name")
		if err != nil {
			return CoAuthors{}, err
		}
		email, okEmail, err := s.store.String(prefix + "email")
		if err != nil {
			return CoAuthors{}, err
		}
		if !okName || !okEmail || name == "" || email == "" {
			return out, nil
		}
		out.Authors = append(out.Authors, authors.Author{Name: name, Email: email})
	}
}

// RequireCoAuthors returns the active co-author list or a *StaleError.
func (s *Session) RequireCoAuthors() ([]authors.Author, error) {
	c, err := s.CoAuthors()
	if err != nil {
		return nil, err
	}
	if c.Status != Active {
		return nil, &StaleError{Status: c.Status, ExpiredAt: c.ExpiresAt}
	}
	return c.Authors, nil
}

// Primary returns the committer identity recorded by SetAuthors.
func (s *Session) Primary() (authors.Author, bool, error) {
	name, okName, err := s.store.String(keyUserName)
	if err != nil {
		return authors.Author{}, false, err
	}
	email, okEmail, err := s.store.String(keyUserEmail)
	if err != nil {
		return authors.Author{}, false, err
	}
	key, _, err := s.store.String(keyUserSigningKey)
	if err != nil {
		return authors.Author{}, false, err
	}
	return authors.Author{Name: name, Email: email, SigningKey: key}, okName && okEmail, nil
}

// SetRelatesTo records the issue reference, valid for ttl.
func (s *Session) SetRelatesTo(ref string, ttl time.Duration) error {
	if err := s.store.SetString(keyRelatesTo, ref); err != nil {
		return err
	}
	return s.store.SetInt64(keyRelateExpires, s.now().Add(ttl).Unix())
}

func (s *Session) RelatesTo() (RelatesTo, error) {
	status, expires, err := s.expiry(keyRelateExpires)
	if err != nil || status != Active {
		return RelatesTo{Status: status, ExpiresAt: expires}, err
	}
	ref, ok, err := s.store.String(keyRelatesTo)
	if err != nil {
		return RelatesTo{}, err
	}
	if !ok {
		return RelatesTo{Status: Unset, ExpiresAt: expires}, nil
	}
	return RelatesTo{Status: Active, ExpiresAt: expires, Ref: ref}, nil
}

func (s *Session) expiry(key string) (Status, time.Time, error) {
	unix, ok, err := s.store.Int64(key)
	if err != nil {
		return Unset, time.Time{}, err
	}
	if !ok {
		return Unset, time.Time{}, nil
	}
	expires := time.Unix(unix, 0)
	if s.now().Unix() > unix {
		return Expired, expires, nil
	}
	return Active, expires, nil
}

func coAuthorPrefix(i int) string {
	return keyCoAuthors + "." + strconv.Itoa(i) + "."
}
