// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import (
	"fmt"
	"strings"

	"github.com/bartekus/gitmit/internal/message"
)

// duplicatedTrailerKeys are the trailers that must never repeat with the same value.
var duplicatedTrailerKeys = []string{"Signed-off-by", "Co-authored-by"}

type duplicatedTrailers struct{ rule }

func NewDuplicatedTrailers() Lint {
	return &duplicatedTrailers{rule{code: DuplicatedTrailers, enabled: true}}
}

func (l *duplicatedTrailers) Lint(m message.Message) *Problem {
	seen := make(map[string]bool)
	var keys []string
	var labels []Label

	for _, line := range m.TrailerLines() {
		t, ok := message.ParseTrailer(line.Text)
		if !ok {
			continue
		}
		key, checked := checkedTrailerKey(t.Key)
		if !checked {
			continue
		}
		id := key + "\x00" + t.Value
		if !seen[id] {
			seen[id] = true
			continue
		}
		if !containsString(keys, key) {
			keys = append(keys, key)
		}
		labels = append(labels, Label{
			Text:   fmt.Sprintf("Duplicated `%s`", key),
			Offset: line.Offset,
			Length: len(line.Text),
		})
	}

	if len(labels) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		quoted = append(quoted, fmt.Sprintf("%q", k))
	}
	return l.problem(
		"Your commit message has duplicated trailers",
		fmt.Sprintf("Duplicates usually sneak in while rebasing or amending, either in the editor or from another git hook.\n\nDelete the repeated %s lines to fix this.", strings.Join(quoted, " and ")),
		labels...,
	)
}

func checkedTrailerKey(key string) (string, bool) {
	for _, k := range duplicatedTrailerKeys {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
