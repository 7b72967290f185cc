// SPDX-License-Identifier: AGPL-3.0-or-later

// Package trailers adds the session's Co-authored-by and Relates-to trailers
// to a commit message.
package trailers

import (
	"strings"

	"github.com/bartekus/gitmit/internal/message"
	"github.com/bartekus/gitmit/internal/session"
)

// TemplatePlaceholder is replaced by the issue reference in a relates-to
// template.
const TemplatePlaceholder = "{value}"

// Injector writes session trailers into commit messages. Applying it twice
// gives the same message as applying it once.
type Injector struct {
	session *session.Session
}

func New(s *session.Session) *Injector {
	return &Injector{session: s}
}

// Apply returns m with the active co-authors and issue reference added.
// Expired or unset values add nothing.
func (i *Injector) Apply(m message.Message) (message.Message, error) {
	var add []message.Trailer
	co, err := i.session.CoAuthors()
	if err != nil {
		return m, err
	}
	if co.Status == session.Active {
		for _, a := range co.Authors {
			add = append(add, message.CoAuthoredBy(a.Name, a.Email))
		}
	}

	rel, err := i.session.RelatesTo()
	if err != nil {
		return m, err
	}
	if rel.Status == session.Active {
		ref, err := i.renderRef(rel.Ref)
		if err != nil {
			return m, err
		}
		add = append(add, message.RelatesTo(ref))
	}
	return m.AddTrailers(add...), nil
}

// Inject rewrites the commit message file at path in place.
func (i *Injector) Inject(path string) error {
	m, err := message.ReadFile(path)
	if err != nil {
		return err
	}
	updated, err := i.Apply(m)
	if err != nil {
		return err
	}
	return message.WriteFile(path, updated)
}

func (i *Injector) renderRef(ref string) (string, error) {
	tmpl, ok, err := i.session.RelatesToTemplate()
	if err != nil || !ok {
		return ref, err
	}
	return RenderTemplate(tmpl, ref), nil
}

// RenderTemplate substitutes ref into tmpl. A template without the
// placeholder is ignored.
func RenderTemplate(tmpl, ref string) string {
	if !strings.Contains(tmpl, TemplatePlaceholder) {
		return ref
	}
	return strings.ReplaceAll(tmpl, TemplatePlaceholder, ref)
}
