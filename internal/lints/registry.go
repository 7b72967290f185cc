// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bartekus/gitmit/internal/message"
)

// All returns every rule in canonical order.
func All() []Lint {
	return []Lint{
		NewDuplicatedTrailers(),
		NewPivotalTrackerIDMissing(),
		NewJiraIssueKeyMissing(),
		NewGitHubIDMissing(),
		NewSubjectNotSeparateFromBody(),
		NewSubjectLongerThan72Characters(),
		NewSubjectNotCapitalized(),
		NewSubjectEndsWithPeriod(),
		NewBodyWiderThan72Characters(),
		NewNotConventionalCommit(),
		NewNotEmojiLog(),
	}
}

// Registry enumerates rules and evaluates them over messages.
type Registry struct {
	lints []Lint
}

// NewRegistry creates a registry over the given rules.
func NewRegistry(lints ...Lint) *Registry {
	return &Registry{lints: lints}
}

// Default returns a registry holding every rule.
func Default() *Registry {
	return NewRegistry(All()...)
}

// Lints returns the registered rules in registration order.
func (r *Registry) Lints() []Lint {
	out := make([]Lint, len(r.lints))
	copy(out, r.lints)
	return out
}

// Available returns the codes of all registered rules.
func (r *Registry) Available() Set {
	s := make(Set, len(r.lints))
	for _, l := range r.lints {
		s[l.Code()] = struct{}{}
	}
	return s
}

// DefaultEnabled returns the codes of the rules that run without configuration.
func (r *Registry) DefaultEnabled() Set {
	s := make(Set)
	for _, l := range r.lints {
		if l.EnabledByDefault() {
			s[l.Code()] = struct{}{}
		}
	}
	return s
}

// Lookup finds a rule by its exact kebab-case name.
func (r *Registry) Lookup(name string) (Lint, bool) {
	for _, l := range r.lints {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// FromNames converts rule names into a set. Matching is case-sensitive.
func (r *Registry) FromNames(names []string) (Set, error) {
	s := make(Set, len(names))
	for _, name := range names {
		l, ok := r.Lookup(name)
		if !ok {
			return nil, &UnknownNameError{Name: name}
		}
		s[l.Code()] = struct{}{}
	}
	return s, nil
}

// Run evaluates every enabled rule over m and returns the problems found.
// Rules run concurrently; the result follows registration order but callers
// should not depend on it.
func (r *Registry) Run(m message.Message, enabled Set) []Problem {
	var selected []Lint
	for _, l := range r.lints {
		if enabled.Contains(l.Code()) {
			selected = append(selected, l)
		}
	}

	results := make([]*Problem, len(selected))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, l := range selected {
		g.Go(func() error {
			results[i] = l.Lint(m)
			return nil
		})
	}
	_ = g.Wait()

	var problems []Problem
	for _, p := range results {
		if p == nil {
			continue
		}
		p.Source = m.String()
		problems = append(problems, *p)
	}
	return problems
}
