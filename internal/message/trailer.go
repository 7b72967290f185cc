// SPDX-License-Identifier: AGPL-3.0-or-later
package message

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	trailerPattern = regexp.MustCompile(`^([A-Za-z0-9-]+): (.*)$`)
	lineBreaks     = regexp.MustCompile(`[\r\n]+`)
)

// Trailer is a "Key: Value" line from the trailer block.
type Trailer struct {
	Key   string
	Value string
}

// NewTrailer builds a trailer with a whitespace-trimmed value. Line breaks in
// the value become single spaces so the trailer always renders as one line.
func NewTrailer(key, value string) Trailer {
	return Trailer{Key: key, Value: strings.TrimSpace(lineBreaks.ReplaceAllString(value, " "))}
}

// CoAuthoredBy builds the Co-authored-by trailer for an author.
func CoAuthoredBy(name, email string) Trailer {
	return NewTrailer("Co-authored-by", fmt.Sprintf("%s <%s>", name, email))
}

// RelatesTo builds the Relates-to trailer for an issue reference.
func RelatesTo(ref string) Trailer {
	return NewTrailer("Relates-to", ref)
}

// ParseTrailer splits a line on its first colon.
func ParseTrailer(line string) (Trailer, bool) {
	m := trailerPattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return Trailer{}, false
	}
	return NewTrailer(m[1], m[2]), true
}

// String renders the trailer as it appears in a message.
func (t Trailer) String() string {
	return t.Key + ": " + t.Value
}
