// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders lint problems and tabular listings for the
// terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bartekus/gitmit/internal/lints"
)

var (
	colorError = lipgloss.Color("#E74C3C")
	colorLabel = lipgloss.Color("#F4D03F")
	colorMuted = lipgloss.Color("#2C4A54")
	colorHelp  = lipgloss.Color("#20B9B4")
)

type styles struct {
	title  lipgloss.Style
	gutter lipgloss.Style
	label  lipgloss.Style
	help   lipgloss.Style
}

// Reporter writes problems to a terminal or a plain stream.
type Reporter struct {
	w      io.Writer
	styles styles
}

type Option func(*lipgloss.Renderer)

// WithColor forces colour on or off instead of detecting it from the writer.
func WithColor(enabled bool) Option {
	return func(r *lipgloss.Renderer) {
		if enabled {
			r.SetColorProfile(termenv.TrueColor)
		} else {
			r.SetColorProfile(termenv.Ascii)
		}
	}
}

func New(w io.Writer, opts ...Option) *Reporter {
	r := lipgloss.NewRenderer(w)
	for _, opt := range opts {
		opt(r)
	}
	return &Reporter{
		w: w,
		styles: styles{
			title:  r.NewStyle().Bold(true).Foreground(colorError),
			gutter: r.NewStyle().Foreground(colorMuted),
			label:  r.NewStyle().Bold(true).Foreground(colorLabel),
			help:   r.NewStyle().Foreground(colorHelp),
		},
	}
}

// Problems writes every problem, ordered by code, separated by blank lines.
func (r *Reporter) Problems(problems []lints.Problem) error {
	sorted := make([]lints.Problem, len(problems))
	copy(sorted, problems)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	blocks := make([]string, 0, len(sorted))
	for _, p := range sorted {
		blocks = append(blocks, r.problem(p))
	}
	_, err := io.WriteString(r.w, strings.Join(blocks, "\n"))
	return err
}

func (r *Reporter) problem(p lints.Problem) string {
	var b strings.Builder
	b.WriteString(r.styles.title.Render("error[" + p.Code.String() + "]"))
	b.WriteString(": " + p.Summary + "\n")

	snippets := make([]snippet, 0, len(p.Labels))
	width := 1
	for _, l := range p.Labels {
		s, ok := locate(p.Source, l)
		if !ok {
			continue
		}
		snippets = append(snippets, s)
		if w := len(strconv.Itoa(s.line)); w > width {
			width = w
		}
	}
	for _, s := range snippets {
		num := fmt.Sprintf("%*d", width, s.line)
		blank := strings.Repeat(" ", width)
		b.WriteString("  " + r.styles.gutter.Render(num+" |") + " " + s.text + "\n")
		marker := strings.Repeat(" ", s.column) + strings.Repeat("^", s.width)
		if s.label != "" {
			marker += " " + s.label
		}
		b.WriteString("  " + r.styles.gutter.Render(blank+" |") + " " + r.styles.label.Render(marker) + "\n")
	}

	if p.Help != "" {
		for i, line := range strings.Split(p.Help, "\n") {
			switch {
			case i == 0:
				b.WriteString("  " + r.styles.help.Render("help:") + " " + line + "\n")
			case line == "":
				b.WriteString("\n")
			default:
				b.WriteString("        " + line + "\n")
			}
		}
	}
	return b.String()
}

type snippet struct {
	line   int
	text   string
	column int
	width  int
	label  string
}

// locate finds the source line a label starts on. Columns and widths are
// measured in terminal cells.
func locate(source string, l lints.Label) (snippet, bool) {
	if l.Offset < 0 || l.Offset > len(source) || !utf8.ValidString(source) {
		return snippet{}, false
	}
	start := strings.LastIndexByte(source[:l.Offset], '\n') + 1
	end := strings.IndexByte(source[l.Offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += l.Offset
	}
	stop := l.Offset + l.Length
	if stop > end {
		stop = end
	}

	width := lipgloss.Width(source[l.Offset:stop])
	if width < 1 {
		width = 1
	}
	return snippet{
		line:   strings.Count(source[:start], "\n") + 1,
		text:   strings.TrimSuffix(source[start:end], "\r"),
		column: lipgloss.Width(source[start:l.Offset]),
		width:  width,
		label:  l.Text,
	}, true
}
