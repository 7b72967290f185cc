// SPDX-License-Identifier: AGPL-3.0-or-later
package message

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scissors = "# ------------------------ >8 ------------------------"

func TestNew_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"Subject",
		"Subject\n",
		"Subject\r\n\r\nBody\r\n",
		"Subject\n\nBody\n\nSigned-off-by: X <x@e>\n",
		"Subject\n\n# comment\n" + scissors + "\ndiff --git a/x b/x\n",
		"\n\n\n# only comments\n",
	}
	for _, in := range inputs {
		assert.Equal(t, in, New(in).String())
	}
}

func TestCommentChar(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "default", raw: "Subject\n\nBody\n", want: "#"},
		{name: "hash scissors", raw: "Subject\n" + scissors + "\n", want: "#"},
		{name: "semicolon scissors", raw: "Subject\n; ------------------------ >8 ------------------------\n", want: ";"},
		{name: "marker mid line ignored", raw: "Subject ; ------------------------ >8 ------------------------ trailing\n", want: "#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.raw).CommentChar())
		})
	}
}

func TestAccessors(t *testing.T) {
	m := New("Subject line\n\nLine one\nLine two\n\nSigned-off-by: X <x@e>\nCo-authored-by: Y <y@e>\n# Please enter the commit message\n")

	assert.Equal(t, "Subject line", m.Subject())
	assert.Equal(t, "Line one\nLine two", m.Body())
	assert.Equal(t, []Trailer{
		{Key: "Signed-off-by", Value: "X <x@e>"},
		{Key: "Co-authored-by", Value: "Y <y@e>"},
	}, m.Trailers())
	assert.Equal(t, []string{
		"Subject line", "", "Line one", "Line two", "", "Signed-off-by: X <x@e>", "Co-authored-by: Y <y@e>",
	}, m.ContentLines())
}

func TestSubject_SkipsLeadingBlankAndComments(t *testing.T) {
	m := New("# comment\n\nSubject\n")
	assert.Equal(t, "Subject", m.Subject())

	line, ok := m.SubjectLine()
	require.True(t, ok)
	assert.Equal(t, 11, line.Offset)

	tests := []struct {
		name     string
		raw      string
		subject  string
		trailers []Trailer
	}{
		{name: "conventional subject after comment", raw: "# note\n\nfeat: add parser\n", subject: "feat: add parser", trailers: []Trailer{}},
		{name: "conventional subject after blank line", raw: "\nfix: the thing\n", subject: "fix: the thing", trailers: []Trailer{}},
		{
			name:     "trailer-shaped subject with a real block",
			raw:      "\n\nfeat: x\n\nSigned-off-by: X <x@e>\n",
			subject:  "feat: x",
			trailers: []Trailer{{Key: "Signed-off-by", Value: "X <x@e>"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.raw)
			assert.Equal(t, tt.subject, m.Subject())
			assert.Equal(t, tt.trailers, m.Trailers())
		})
	}
}

func TestSubject_EmptyMessage(t *testing.T) {
	_, ok := New("").SubjectLine()
	assert.False(t, ok)
	assert.Empty(t, New("\n# comment\n").Subject())
	assert.Empty(t, New("").Body())
}

func TestTrailers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Trailer
	}{
		{
			name: "subject that looks like a trailer",
			raw:  "Fix: the thing\n",
			want: []Trailer{},
		},
		{
			name: "trailer abutting the body is not a block",
			raw:  "Subject\nSigned-off-by: X <x@e>\n",
			want: []Trailer{},
		},
		{
			name: "mixed final paragraph is not a block",
			raw:  "Subject\n\nBody text\nSigned-off-by: X <x@e>\n",
			want: []Trailer{},
		},
		{
			name: "value containing colons",
			raw:  "Subject\n\nRelates-to: https://example.com/issues/1\n",
			want: []Trailer{{Key: "Relates-to", Value: "https://example.com/issues/1"}},
		},
		{
			name: "comment lines are ignored",
			raw:  "Subject\n\nSigned-off-by: A <a@e>\n# Co-authored-by: B <b@e>\n",
			want: []Trailer{{Key: "Signed-off-by", Value: "A <a@e>"}},
		},
		{
			name: "scissors region is ignored",
			raw:  "Subject\n\nBody\n" + scissors + "\n\nSigned-off-by: X <x@e>\n",
			want: []Trailer{},
		},
		{
			name: "first content line is the subject even after a blank line",
			raw:  "\nCo-authored-by: A <a@e>\n",
			want: []Trailer{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.raw).Trailers())
		})
	}
}

func TestMatches(t *testing.T) {
	re := regexp.MustCompile(`(?m)(^| )[A-Z]{2,}-[0-9]+( |$)`)

	assert.True(t, New("Subject\n\nRelates-to: JIRA-123\n").Matches(re))
	assert.False(t, New("Subject\n\n# JIRA-123\n").Matches(re))
}

func TestAddTrailer(t *testing.T) {
	coAuthor := CoAuthoredBy("A", "a@e")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "empty message",
			raw:  "",
			want: "\nCo-authored-by: A <a@e>\n",
		},
		{
			name: "subject without newline",
			raw:  "Subject",
			want: "Subject\n\nCo-authored-by: A <a@e>\n",
		},
		{
			name: "subject and body",
			raw:  "Subject\n\nBody\n",
			want: "Subject\n\nBody\n\nCo-authored-by: A <a@e>\n",
		},
		{
			name: "existing trailer block",
			raw:  "Subject\n\nSigned-off-by: X <x@e>\n",
			want: "Subject\n\nSigned-off-by: X <x@e>\nCo-authored-by: A <a@e>\n",
		},
		{
			name: "comment tail",
			raw:  "Subject\n\n# Please enter the commit message\n",
			want: "Subject\n\nCo-authored-by: A <a@e>\n\n# Please enter the commit message\n",
		},
		{
			name: "template with no content",
			raw:  "\n# Please enter the commit message\n",
			want: "\nCo-authored-by: A <a@e>\n\n# Please enter the commit message\n",
		},
		{
			name: "scissors tail",
			raw:  "Subject\n\n" + scissors + "\ndiff --git a/x b/x\n",
			want: "Subject\n\nCo-authored-by: A <a@e>\n\n" + scissors + "\ndiff --git a/x b/x\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := New(tt.raw).AddTrailer(coAuthor)
			assert.Equal(t, tt.want, once.String())

			twice := once.AddTrailer(coAuthor)
			assert.Equal(t, once.String(), twice.String())
		})
	}
}

func TestAddTrailer_Sequence(t *testing.T) {
	m := New("Subject\n").
		AddTrailer(CoAuthoredBy("A", "a@e")).
		AddTrailer(CoAuthoredBy("B", "b@e")).
		AddTrailer(RelatesTo("[#123]"))

	assert.Equal(t, "Subject\n\nCo-authored-by: A <a@e>\nCo-authored-by: B <b@e>\nRelates-to: [#123]\n", m.String())
	assert.Len(t, m.Trailers(), 3)
}

func TestAddTrailer_KeepsLineEndingsAndWhitespace(t *testing.T) {
	got := New("Subject\r\n\r\nSigned-off-by: X <x@e>\r\n").AddTrailer(CoAuthoredBy("A", "a@e"))
	assert.Equal(t, "Subject\r\n\r\nSigned-off-by: X <x@e>\r\nCo-authored-by: A <a@e>\r\n", got.String())

	got = New("Subject  \n\n\n").AddTrailer(CoAuthoredBy("A", "a@e"))
	assert.Equal(t, "Subject  \n\nCo-authored-by: A <a@e>\n", got.String())
}

func TestAddTrailers(t *testing.T) {
	a, b := CoAuthoredBy("A", "a@e"), CoAuthoredBy("B", "b@e")

	got := New("").AddTrailers(a, b, RelatesTo("[#1]"), a)
	assert.Equal(t, "\nCo-authored-by: A <a@e>\nCo-authored-by: B <b@e>\nRelates-to: [#1]\n", got.String())
	assert.Equal(t, got.String(), got.AddTrailers(a, b, RelatesTo("[#1]")).String())

	got = New("Subject\n\nCo-authored-by: A <a@e>\n").AddTrailers(a, b)
	assert.Equal(t, "Subject\n\nCo-authored-by: A <a@e>\nCo-authored-by: B <b@e>\n", got.String())

	m := New("Subject\n")
	assert.Equal(t, m, m.AddTrailers())
}

func TestNewTrailer_FoldsLineBreaks(t *testing.T) {
	assert.Equal(t, "Relates-to: a b", RelatesTo("a\nb").String())
	assert.Equal(t, "Relates-to: a b", RelatesTo(" a\r\n\r\nb\n").String())

	once := New("Subject\n").AddTrailer(RelatesTo("a\nb"))
	assert.Equal(t, "Subject\n\nRelates-to: a b\n", once.String())
	assert.Equal(t, once.String(), once.AddTrailer(RelatesTo("a\nb")).String())
}

func TestParseTrailer(t *testing.T) {
	tr, ok := ParseTrailer("Relates-to:   value: with colon  ")
	require.True(t, ok)
	assert.Equal(t, Trailer{Key: "Relates-to", Value: "value: with colon"}, tr)
	assert.Equal(t, "Relates-to: value: with colon", tr.String())

	_, ok = ParseTrailer("Not a trailer")
	assert.False(t, ok)
	_, ok = ParseTrailer("Bad key!: value")
	assert.False(t, ok)
}

func FuzzRoundTrip(f *testing.F) {
	f.Add("Subject\n\nBody\n")
	f.Add("\n" + scissors + "\nx")
	f.Fuzz(func(t *testing.T, raw string) {
		if New(raw).String() != raw {
			t.Fatalf("round trip changed %q", raw)
		}
	})
}

func FuzzAddTrailerIdempotent(f *testing.F) {
	f.Add("", "A <a@e>")
	f.Add("Subject\n\nBody\n\n# comment\n", "[#123]")
	f.Add("Subject\n\nSigned-off-by: X <x@e>\n"+scissors+"\ndiff\n", "a\nb")
	f.Add("Subject\r\n\r\nBody\r\n", " padded\r\n")
	f.Fuzz(func(t *testing.T, raw, value string) {
		if strings.Contains(value, ">8") {
			// A value carrying the scissors marker would become the scissors line.
			t.Skip()
		}
		tr := NewTrailer("Relates-to", value)
		once := New(raw).AddTrailer(tr)
		twice := once.AddTrailer(tr)
		if once.String() != twice.String() {
			t.Fatalf("not idempotent for %q with %q:\n%q\n%q", raw, value, once.String(), twice.String())
		}
	})
}
