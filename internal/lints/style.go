// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import (
	"regexp"
	"strings"

	"github.com/bartekus/gitmit/internal/message"
)

var conventionalCommitPattern = regexp.MustCompile(`^[^()\s]+(\([A-Za-z0-9_-]+\))?!?: `)

// emojiLogPrefixes are the subject prefixes accepted by the emoji-log convention.
var emojiLogPrefixes = []string{
	"📦 NEW: ",
	"👌 IMPROVE: ",
	"🐛 FIX: ",
	"📖 DOC: ",
	"🚀 RELEASE: ",
	"🤖 TEST: ",
	"‼️ BREAKING: ",
}

type notConventionalCommit struct{ rule }

func NewNotConventionalCommit() Lint {
	return &notConventionalCommit{rule{code: NotConventionalCommit}}
}

func (l *notConventionalCommit) Lint(m message.Message) *Problem {
	subject, ok := m.SubjectLine()
	if ok && conventionalCommitPattern.MatchString(subject.Text) {
		return nil
	}
	return l.problem(
		"Your commit message isn't in conventional style",
		"Conventional commits start the subject with a type, an optional scope and a colon, for example:\n\n"+
			"feat(parser): add ability to parse arrays\n\n"+
			"See https://www.conventionalcommits.org/ for the full format.",
		subjectLabel(subject, ok, "Not conventional")...,
	)
}

type notEmojiLog struct{ rule }

func NewNotEmojiLog() Lint {
	return &notEmojiLog{rule{code: NotEmojiLog}}
}

func (l *notEmojiLog) Lint(m message.Message) *Problem {
	subject, ok := m.SubjectLine()
	if ok {
		for _, prefix := range emojiLogPrefixes {
			if strings.HasPrefix(subject.Text, prefix) {
				return nil
			}
		}
	}
	return l.problem(
		"Your commit message isn't in emoji log style",
		"Emoji log subjects start with one of these prefixes:\n\n"+strings.Join(emojiLogPrefixes, "\n")+
			"\n\nSee https://github.com/ahmadawais/Emoji-Log for details.",
		subjectLabel(subject, ok, "Not emoji log")...,
	)
}

func subjectLabel(subject message.Line, ok bool, text string) []Label {
	if !ok {
		return nil
	}
	return []Label{{Text: text, Offset: subject.Offset, Length: len(subject.Text)}}
}
