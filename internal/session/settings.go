// SPDX-License-Identifier: AGPL-3.0-or-later
package session

import "fmt"

const (
	keyNonCleanBehaviour = "author.non-clean-behaviour"
	keyRelateTemplate    = "relate.template"
)

// NonCleanBehaviour decides what the prepare-commit-msg hook does while a
// merge, rebase, cherry-pick or revert is in progress.
type NonCleanBehaviour string

const (
	// AddTo injects trailers as usual.
	AddTo NonCleanBehaviour = "add-to"
	// NoChange leaves the message exactly as git prepared it.
	NoChange NonCleanBehaviour = "no-change"
)

// ParseNonCleanBehaviour validates a user supplied setting.
func ParseNonCleanBehaviour(s string) (NonCleanBehaviour, error) {
	switch b := NonCleanBehaviour(s); b {
	case AddTo, NoChange:
		return b, nil
	}
	return "", fmt.Errorf("invalid non-clean behaviour %q: expected %q or %q", s, AddTo, NoChange)
}

// NonCleanBehaviour returns the stored setting as written, or AddTo when
// nothing is stored.
func (s *Session) NonCleanBehaviour() (NonCleanBehaviour, error) {
	v, ok, err := s.store.String(keyNonCleanBehaviour)
	if err != nil {
		return "", err
	}
	if !ok {
		return AddTo, nil
	}
	return NonCleanBehaviour(v), nil
}

func (s *Session) SetNonCleanBehaviour(b NonCleanBehaviour) error {
	return s.store.SetString(keyNonCleanBehaviour, string(b))
}

// RelatesToTemplate returns the template applied to issue references. It
// contains {value} where the reference goes.
func (s *Session) RelatesToTemplate() (string, bool, error) {
	return s.store.String(keyRelateTemplate)
}

func (s *Session) SetRelatesToTemplate(tmpl string) error {
	if tmpl == "" {
		return s.store.Remove(keyRelateTemplate)
	}
	return s.store.SetString(keyRelateTemplate, tmpl)
}
