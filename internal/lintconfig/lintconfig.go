// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lintconfig works out which lints are enabled for a repository.
//
// Three sources are layered, later ones winning: the registry defaults, the
// lint.<name> booleans of the config store and the [mit.lint] table of the
// repository's .git-mit.toml document.
package lintconfig

import (
	"strings"

	"github.com/bartekus/gitmit/internal/lints"
	"github.com/bartekus/gitmit/internal/store"
)

const storePrefix = "lint."

// Resolve returns the enabled lint set.
func Resolve(reg *lints.Registry, doc Document, st store.Store) (lints.Set, error) {
	enabled := reg.DefaultEnabled()

	fromStore, err := storeOverrides(st)
	if err != nil {
		return nil, err
	}
	enabled, err = overlay(reg, enabled, fromStore)
	if err != nil {
		return nil, err
	}
	return overlay(reg, enabled, doc.Lints)
}

// SetEnabled records a per-lint override in the config store.
func SetEnabled(reg *lints.Registry, st store.Store, name string, enabled bool) error {
	if _, ok := reg.Lookup(name); !ok {
		return &lints.UnknownNameError{Name: name}
	}
	return st.SetBool(storePrefix+name, enabled)
}

func storeOverrides(st store.Store) (map[string]bool, error) {
	keys, err := st.Entries(storePrefix + "*")
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(keys))
	for _, key := range keys {
		v, ok, err := st.Bool(key)
		if err != nil {
			return nil, err
		}
		if ok {
			out[strings.TrimPrefix(key, storePrefix)] = v
		}
	}
	return out, nil
}

func overlay(reg *lints.Registry, base lints.Set, overrides map[string]bool) (lints.Set, error) {
	for _, name := range sortedNames(overrides) {
		l, ok := reg.Lookup(name)
		if !ok {
			return nil, &lints.UnknownNameError{Name: name}
		}
		base = base.With(l.Code(), overrides[name])
	}
	return base, nil
}
