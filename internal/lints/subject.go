// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bartekus/gitmit/internal/message"
)

const maxLineWidth = 72

type subjectNotSeparateFromBody struct{ rule }

func NewSubjectNotSeparateFromBody() Lint {
	return &subjectNotSeparateFromBody{rule{code: SubjectNotSeparateFromBody, enabled: true}}
}

func (l *subjectNotSeparateFromBody) Lint(m message.Message) *Problem {
	content := m.Content()
	if len(content) < 2 || strings.TrimSpace(content[1].Text) == "" {
		return nil
	}
	return l.problem(
		"Your commit message is missing a blank line between the subject and the body",
		"Most tools that render and parse commit messages expect the subject to be followed by a blank line.\n\nAdd an empty line after the subject.",
		Label{Text: "Missing blank line before this line", Offset: content[1].Offset, Length: len(content[1].Text)},
	)
}

type subjectLongerThan72Characters struct{ rule }

func NewSubjectLongerThan72Characters() Lint {
	return &subjectLongerThan72Characters{rule{code: SubjectLongerThan72Characters, enabled: true}}
}

func (l *subjectLongerThan72Characters) Lint(m message.Message) *Problem {
	subject, ok := m.SubjectLine()
	if !ok || utf8.RuneCountInString(subject.Text) <= maxLineWidth {
		return nil
	}
	cut := byteOffsetOfRune(subject.Text, maxLineWidth)
	return l.problem(
		fmt.Sprintf("Your subject is longer than %d characters", maxLineWidth),
		"Long subjects get truncated by many git tools, hiding what the commit does.\n\nMove the extra detail into the body.",
		Label{Text: "Too long", Offset: subject.Offset + cut, Length: len(subject.Text) - cut},
	)
}

type subjectNotCapitalized struct{ rule }

func NewSubjectNotCapitalized() Lint {
	return &subjectNotCapitalized{rule{code: SubjectNotCapitalized}}
}

func (l *subjectNotCapitalized) Lint(m message.Message) *Problem {
	subject, ok := m.SubjectLine()
	if !ok {
		return nil
	}
	r, size := utf8.DecodeRuneInString(subject.Text)
	if unicode.ToUpper(r) == r {
		return nil
	}
	return l.problem(
		"Your commit message is missing a capital letter",
		"The subject reads like a title, so it starts with a capital letter.\n\nCapitalise the first word of the subject.",
		Label{Text: "Not capitalised", Offset: subject.Offset, Length: size},
	)
}

type subjectEndsWithPeriod struct{ rule }

func NewSubjectEndsWithPeriod() Lint {
	return &subjectEndsWithPeriod{rule{code: SubjectEndsWithPeriod}}
}

func (l *subjectEndsWithPeriod) Lint(m message.Message) *Problem {
	subject, ok := m.SubjectLine()
	if !ok || !strings.HasSuffix(subject.Text, ".") {
		return nil
	}
	return l.problem(
		"Your commit message ends with a period",
		"The subject reads like a title, and titles do not end with a full stop.\n\nRemove the trailing period.",
		Label{Text: "Unneeded period", Offset: subject.Offset + len(subject.Text) - 1, Length: 1},
	)
}

// byteOffsetOfRune returns the byte index at which rune number n starts.
func byteOffsetOfRune(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
