// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import (
	"fmt"
	"unicode/utf8"

	"github.com/bartekus/gitmit/internal/message"
)

type bodyWiderThan72Characters struct{ rule }

func NewBodyWiderThan72Characters() Lint {
	return &bodyWiderThan72Characters{rule{code: BodyWiderThan72Characters}}
}

func (l *bodyWiderThan72Characters) Lint(m message.Message) *Problem {
	var labels []Label
	for _, line := range m.BodyLines() {
		if utf8.RuneCountInString(line.Text) <= maxLineWidth {
			continue
		}
		cut := byteOffsetOfRune(line.Text, maxLineWidth)
		labels = append(labels, Label{Text: "Too long", Offset: line.Offset + cut, Length: len(line.Text) - cut})
	}
	if len(labels) == 0 {
		return nil
	}
	return l.problem(
		fmt.Sprintf("Your commit has a body wider than %d characters", maxLineWidth),
		fmt.Sprintf("Git does not wrap the body for you, so wide lines are hard to read in a terminal.\n\nWrap the body at %d characters.", maxLineWidth),
		labels...,
	)
}
