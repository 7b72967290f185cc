// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import (
	"regexp"

	"github.com/bartekus/gitmit/internal/message"
)

var (
	pivotalTrackerIDPattern = regexp.MustCompile(`(?i)\[(((finish|fix)(ed|es)?|complete[ds]?|deliver(s|ed)?) )?#\d+(,? #\d+)*\]`)
	jiraIssueKeyPattern     = regexp.MustCompile(`(?m)(^| )[A-Z]{2,}-[0-9]+( |$)`)
	gitHubIDPattern         = regexp.MustCompile(`(?m)(^| )([A-Za-z0-9_-]{3,39}/[A-Za-z0-9-]+#|GH-|#)[0-9]+( |$)`)
)

// issueReference fails when the message content never matches pattern.
type issueReference struct {
	rule
	pattern *regexp.Regexp
	summary string
	help    string
}

func NewPivotalTrackerIDMissing() Lint {
	return &issueReference{
		rule:    rule{code: PivotalTrackerIDMissing},
		pattern: pivotalTrackerIDPattern,
		summary: "Your commit message is missing a Pivotal Tracker ID",
		help: "Reference the story this commit works on, so the work stays traceable.\n\n" +
			"Add the ID in square brackets anywhere in the message, for example:\n\n" +
			"[#12345678]\n[fixes #12345678]\n[finished #12345678, #23456789]",
	}
}

func NewJiraIssueKeyMissing() Lint {
	return &issueReference{
		rule:    rule{code: JiraIssueKeyMissing},
		pattern: jiraIssueKeyPattern,
		summary: "Your commit message is missing a JIRA Issue Key",
		help: "Reference the issue this commit works on, so the work stays traceable.\n\n" +
			"Add the key anywhere in the message, for example in the body or a trailer:\n\n" +
			"Relates-to: JRA-123",
	}
}

func NewGitHubIDMissing() Lint {
	return &issueReference{
		rule:    rule{code: GitHubIDMissing},
		pattern: gitHubIDPattern,
		summary: "Your commit message is missing a GitHub ID",
		help: "Reference the issue this commit works on, so the work stays traceable.\n\n" +
			"Any of these forms will do:\n\n" +
			"#123\nGH-123\nowner/repo#123",
	}
}

func (l *issueReference) Lint(m message.Message) *Problem {
	if m.Matches(l.pattern) {
		return nil
	}
	var labels []Label
	if subject, ok := m.SubjectLine(); ok {
		labels = append(labels, Label{Text: "No reference in this message", Offset: subject.Offset, Length: len(subject.Text)})
	}
	return l.problem(l.summary, l.help, labels...)
}
