// SPDX-License-Identifier: AGPL-3.0-or-later

/*
git-mit - commit message trailers and lints for pairing developers.
It keeps the Co-authored-by and Relates-to trailers of every commit accurate and checks outgoing messages against a configurable set of rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package store is the key/value configuration store every other package
// reads and writes through.
//
// Keys use git's dotted config syntax (section.subsection.name). Two
// implementations exist: GitConfig, backed by the git config hierarchy, and
// InMemory, used by tests. Both follow the same contract:
//
//   - reading an absent key reports ok == false and a nil error;
//   - a write is visible to the next read in the same process;
//   - removing an absent key is not an error.
package store

// Store reads and writes typed configuration values.
type Store interface {
	// Entries lists the keys matching glob, sorted. The only wildcard is '*',
	// which matches any run of characters including dots. An empty glob
	// lists every key.
	Entries(glob string) ([]string, error)

	String(key string) (string, bool, error)
	Int64(key string) (int64, bool, error)
	Bool(key string) (bool, bool, error)

	SetString(key, value string) error
	SetInt64(key string, value int64) error
	SetBool(key string, value bool) error

	// Remove deletes every value of key.
	Remove(key string) error
}
