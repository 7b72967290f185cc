// SPDX-License-Identifier: AGPL-3.0-or-later

/*
git-mit - commit message trailers and lints for pairing developers.
It keeps the Co-authored-by and Relates-to trailers of every commit accurate and checks outgoing messages against a configurable set of rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package message is the parsed model of a git commit message.
//
// A message reads, top to bottom, as an optional subject, an optional body,
// an optional trailer block and a tail. The tail is the suffix made of comment
// lines, blank lines and everything at or below the scissors line. Message
// values are immutable: every modification returns a new Message, and String
// always returns the exact text the message was built from.
package message

import (
	"regexp"
	"strings"
)

// DefaultCommentChar is used unless a scissors line declares another one.
const DefaultCommentChar = "#"

const scissorsMarker = "------------------------ >8 ------------------------"

var commentCharPattern = regexp.MustCompile(`(?m)^(\S+) ` + regexp.QuoteMeta(scissorsMarker) + `\r?$`)

// Line is a single line of a message without its terminator.
type Line struct {
	Text string
	// Offset is the byte offset of the first character of the line.
	Offset int
}

// Message is an immutable commit message.
type Message struct {
	raw         string
	commentChar string
}

// New parses raw. It never fails.
func New(raw string) Message {
	return Message{raw: raw, commentChar: detectCommentChar(raw)}
}

func detectCommentChar(raw string) string {
	m := commentCharPattern.FindStringSubmatch(raw)
	if m == nil {
		return DefaultCommentChar
	}
	return m[1]
}

// String returns the message exactly as it was parsed or built.
func (m Message) String() string { return m.raw }

// CommentChar returns the comment indicator in effect for this message.
func (m Message) CommentChar() string { return m.commentChar }

// ScissorsLine returns the scissors marker for this message's comment char.
func (m Message) ScissorsLine() string { return m.commentChar + " " + scissorsMarker }

// Subject returns the first content line that is neither blank nor part of
// the trailer block. It is empty when the message has no subject.
func (m Message) Subject() string {
	l, _ := m.SubjectLine()
	return l.Text
}

// SubjectLine is Subject with position information.
func (m Message) SubjectLine() (Line, bool) {
	content := m.content()
	block := trailerBlockStart(content)
	for _, l := range content[:block] {
		if !isBlank(l.Text) {
			return l, true
		}
	}
	return Line{}, false
}

// Body returns the lines between the subject and the trailer block, joined
// with newlines and stripped of surrounding blank lines.
func (m Message) Body() string {
	lines := m.BodyLines()
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	return strings.Join(texts, "\n")
}

// BodyLines is Body with position information.
func (m Message) BodyLines() []Line {
	content := m.content()
	block := trailerBlockStart(content)

	start := -1
	for i, l := range content[:block] {
		if !isBlank(l.Text) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}
	return trimBlank(content[start:block])
}

// Trailers returns the trailers of the trailer block in order. Comment lines
// and the scissors region never contribute trailers.
func (m Message) Trailers() []Trailer {
	lines := m.TrailerLines()
	trailers := make([]Trailer, 0, len(lines))
	for _, l := range lines {
		if t, ok := ParseTrailer(l.Text); ok {
			trailers = append(trailers, t)
		}
	}
	return trailers
}

// TrailerLines is Trailers with position information.
func (m Message) TrailerLines() []Line {
	content := m.content()
	return content[trailerBlockStart(content):]
}

// ContentLines returns the non-comment lines above the scissors line with
// leading and trailing blank lines removed.
func (m Message) ContentLines() []string {
	lines := m.Content()
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	return texts
}

// Content is ContentLines with position information.
func (m Message) Content() []Line {
	return trimBlank(m.content())
}

// Matches reports whether re matches the content of the message.
func (m Message) Matches(re *regexp.Regexp) bool {
	return re.MatchString(strings.Join(m.ContentLines(), "\n"))
}

// HasTrailerLine reports whether a content line equals the rendered trailer.
func (m Message) HasTrailerLine(t Trailer) bool {
	rendered := t.String()
	l := m.layout()
	for _, ln := range l.lines[:l.scissors] {
		if ln.Text == rendered {
			return true
		}
	}
	return false
}

// AddTrailer returns a message with t appended to the trailer block. When a
// line equal to the rendered trailer already exists the message is returned
// unchanged, so repeated calls converge. The tail is kept byte for byte.
func (m Message) AddTrailer(t Trailer) Message {
	return m.AddTrailers(t)
}

// AddTrailers appends every trailer not already present as one block, in the
// order given. New lines use the message's own line terminator.
func (m Message) AddTrailers(ts ...Trailer) Message {
	var missing []string
	seen := make(map[string]bool, len(ts))
	for _, t := range ts {
		rendered := t.String()
		if seen[rendered] || m.HasTrailerLine(t) {
			continue
		}
		seen[rendered] = true
		missing = append(missing, rendered)
	}
	if len(missing) == 0 {
		return m
	}

	nl := m.newline()
	tailOffset := m.layout().tailOffset(len(m.raw))
	head := trimTrailingBlankLines(m.raw[:tailOffset])
	tail := m.raw[tailOffset:]

	var b strings.Builder
	if head == "" {
		b.WriteString(nl)
	} else {
		b.WriteString(head)
		b.WriteString(nl)
		if len(m.TrailerLines()) == 0 {
			b.WriteString(nl)
		}
	}
	for _, rendered := range missing {
		b.WriteString(rendered)
		b.WriteString(nl)
	}
	if tail != "" {
		b.WriteString(nl)
		b.WriteString(tail)
	}
	return New(b.String())
}

// newline returns the terminator of the first line, "\n" by default.
func (m Message) newline() string {
	if i := strings.IndexByte(m.raw, '\n'); i > 0 && m.raw[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// trimTrailingBlankLines cuts s after the text of its last non-blank line.
// Whitespace inside that line is kept.
func trimTrailingBlankLines(s string) string {
	lines := splitLines(s)
	for i := len(lines) - 1; i >= 0; i-- {
		if !isBlank(lines[i].Text) {
			return s[:lines[i].Offset+len(lines[i].Text)]
		}
	}
	return ""
}

type layout struct {
	lines []Line
	// scissors is the index of the scissors line, len(lines) when absent.
	scissors int
	// tail is the index of the first tail line, len(lines) when empty.
	tail int
}

func (l layout) tailOffset(size int) int {
	if l.tail >= len(l.lines) {
		return size
	}
	return l.lines[l.tail].Offset
}

func (m Message) layout() layout {
	lines := splitLines(m.raw)
	scissors := len(lines)
	marker := m.ScissorsLine()
	for i, l := range lines {
		if l.Text == marker {
			scissors = i
			break
		}
	}

	tail := scissors
	for tail > 0 && (isBlank(lines[tail-1].Text) || m.isComment(lines[tail-1].Text)) {
		tail--
	}
	for tail < scissors && isBlank(lines[tail].Text) {
		tail++
	}

	return layout{lines: lines, scissors: scissors, tail: tail}
}

// content returns the non-comment lines above the scissors with trailing
// blank lines removed. Leading blank lines are kept.
func (m Message) content() []Line {
	l := m.layout()
	var content []Line
	for _, ln := range l.lines[:l.scissors] {
		if m.isComment(ln.Text) {
			continue
		}
		content = append(content, ln)
	}
	end := len(content)
	for end > 0 && isBlank(content[end-1].Text) {
		end--
	}
	return content[:end]
}

func (m Message) isComment(text string) bool {
	return strings.HasPrefix(text, m.commentChar)
}

// trailerBlockStart returns the index of the first line of the trailer block,
// or len(lines) when there is none. The block is the final paragraph, and
// only counts when every line in it is a trailer and a blank line precedes it.
// The first non-blank line is the subject and never belongs to the block.
func trailerBlockStart(lines []Line) int {
	end := len(lines)
	start := end
	for start > 0 && trailerPattern.MatchString(lines[start-1].Text) {
		start--
	}
	if start == end || start <= firstNonBlank(lines) || !isBlank(lines[start-1].Text) {
		return end
	}
	return start
}

func firstNonBlank(lines []Line) int {
	for i, l := range lines {
		if !isBlank(l.Text) {
			return i
		}
	}
	return len(lines)
}

func splitLines(raw string) []Line {
	var lines []Line
	offset := 0
	for offset < len(raw) {
		end := strings.IndexByte(raw[offset:], '\n')
		if end < 0 {
			lines = append(lines, Line{Text: strings.TrimSuffix(raw[offset:], "\r"), Offset: offset})
			break
		}
		lines = append(lines, Line{Text: strings.TrimSuffix(raw[offset:offset+end], "\r"), Offset: offset})
		offset += end + 1
	}
	return lines
}

func trimBlank(lines []Line) []Line {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start].Text) {
		start++
	}
	for end > start && isBlank(lines[end-1].Text) {
		end--
	}
	return lines[start:end]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
