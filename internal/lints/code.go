// SPDX-License-Identifier: AGPL-3.0-or-later

/*
git-mit - commit message trailers and lints for pairing developers.
It keeps the Co-authored-by and Relates-to trailers of every commit accurate and checks outgoing messages against a configurable set of rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package lints holds the commit message rules, the registry that lists them
// and the runner that evaluates the enabled ones over a message.
package lints

// Code identifies a rule. The numeric value doubles as the process exit code
// used when that rule is the only one that failed, so values never change.
type Code int

const (
	DuplicatedTrailers            Code = 20
	PivotalTrackerIDMissing       Code = 21
	JiraIssueKeyMissing           Code = 22
	GitHubIDMissing               Code = 23
	SubjectNotSeparateFromBody    Code = 24
	SubjectLongerThan72Characters Code = 25
	SubjectNotCapitalized         Code = 26
	SubjectEndsWithPeriod         Code = 27
	BodyWiderThan72Characters     Code = 28
	NotConventionalCommit         Code = 29
	NotEmojiLog                   Code = 30
)

var codeNames = map[Code]string{
	DuplicatedTrailers:            "duplicated-trailers",
	PivotalTrackerIDMissing:       "pivotal-tracker-id-missing",
	JiraIssueKeyMissing:           "jira-issue-key-missing",
	GitHubIDMissing:               "github-id-missing",
	SubjectNotSeparateFromBody:    "subject-not-separated-from-body",
	SubjectLongerThan72Characters: "subject-longer-than-72-characters",
	SubjectNotCapitalized:         "subject-line-not-capitalized",
	SubjectEndsWithPeriod:         "subject-line-ends-with-period",
	BodyWiderThan72Characters:     "body-wider-than-72-characters",
	NotConventionalCommit:         "not-conventional-commit",
	NotEmojiLog:                   "not-emoji-log",
}

// String returns the kebab-case rule name used in configuration.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// ExitCode returns the exit code reported for a lone problem of this kind.
func (c Code) ExitCode() int { return int(c) }
