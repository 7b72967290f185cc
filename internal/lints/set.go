// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import "sort"

// Set is a set of rule codes.
type Set map[Code]struct{}

// NewSet builds a set from codes.
func NewSet(codes ...Code) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether c is in the set.
func (s Set) Contains(c Code) bool {
	_, ok := s[c]
	return ok
}

// With returns a copy of the set with c added or removed.
func (s Set) With(c Code, enabled bool) Set {
	out := make(Set, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	if enabled {
		out[c] = struct{}{}
	} else {
		delete(out, c)
	}
	return out
}

// Codes returns the members in ascending order.
func (s Set) Codes() []Code {
	codes := make([]Code, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Names returns the rule names of the members, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for c := range s {
		names = append(names, c.String())
	}
	sort.Strings(names)
	return names
}
