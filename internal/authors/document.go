// SPDX-License-Identifier: AGPL-3.0-or-later
package authors

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Span locates a region of a catalogue document. Line and Column are
// 1-based; Offset is a byte offset. A zero Line means the location is unknown.
type Span struct {
	Line   int
	Column int
	Offset int
	Length int
}

// FormatError is the failure of one document syntax.
type FormatError struct {
	Format  string
	Message string
	Span    Span
}

func (e FormatError) Error() string {
	if e.Span.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("%s: %s (line %d, column %d)", e.Format, e.Message, e.Span.Line, e.Span.Column)
}

// ParseError reports a catalogue document no syntax could read. It carries
// one FormatError per syntax tried.
type ParseError struct {
	Source   string
	Attempts []FormatError
}

func (e *ParseError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return "could not parse the author catalogue: " + strings.Join(parts, "; ")
}

type tomlEntry struct {
	Name       string `toml:"name"`
	Email      string `toml:"email"`
	SigningKey string `toml:"signingkey,omitempty"`
}

// Parse reads a catalogue document in TOML or YAML. A blank document is an
// empty catalogue.
func Parse(doc string) (Catalogue, error) {
	if strings.TrimSpace(doc) == "" {
		return New(nil), nil
	}

	c, tomlErr := parseTOML(doc)
	if tomlErr == nil {
		return c, nil
	}
	c, yamlErr := parseYAML(doc)
	if yamlErr == nil {
		return c, nil
	}
	return Catalogue{}, &ParseError{Source: doc, Attempts: []FormatError{*tomlErr, *yamlErr}}
}

// Render writes c as a TOML document sorted by initial.
func Render(c Catalogue) (string, error) {
	entries := make(map[string]tomlEntry, c.Len())
	for k, a := range c.authors {
		entries[k] = tomlEntry{Name: a.Name, Email: a.Email, SigningKey: a.SigningKey}
	}
	out, err := toml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("render author catalogue: %w", err)
	}
	return string(out), nil
}

func parseTOML(doc string) (Catalogue, *FormatError) {
	var entries map[string]tomlEntry
	if err := toml.Unmarshal([]byte(doc), &entries); err != nil {
		fe := &FormatError{Format: "toml", Message: err.Error()}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			fe.Message = strings.TrimPrefix(de.Error(), "toml: ")
			fe.Span = spanAt(doc, row, col)
		}
		return Catalogue{}, fe
	}

	c := New(nil)
	for initial, e := range entries {
		a := Author{Name: e.Name, Email: e.Email, SigningKey: e.SigningKey}
		if a.Name == "" || a.Email == "" {
			return Catalogue{}, &FormatError{
				Format:  "toml",
				Message: fmt.Sprintf("author %q needs both a name and an email", initial),
				Span:    tomlTableSpan(doc, initial),
			}
		}
		c.authors[initial] = a
	}
	return c, nil
}

func parseYAML(doc string) (Catalogue, *FormatError) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &root); err != nil {
		return Catalogue{}, &FormatError{
			Format:  "yaml",
			Message: strings.TrimPrefix(err.Error(), "yaml: "),
			Span:    spanAt(doc, yamlErrorLine(err), 1),
		}
	}

	c := New(nil)
	if len(root.Content) == 0 {
		return c, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return Catalogue{}, yamlNodeError(doc, top, "expected a mapping of initials to authors")
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if value.Kind != yaml.MappingNode {
			return Catalogue{}, yamlNodeError(doc, value, fmt.Sprintf("author %q must be a mapping", key.Value))
		}
		var a Author
		for j := 0; j+1 < len(value.Content); j += 2 {
			field, v := value.Content[j], value.Content[j+1]
			if v.Kind != yaml.ScalarNode {
				return Catalogue{}, yamlNodeError(doc, v, fmt.Sprintf("field %q of author %q must be a string", field.Value, key.Value))
			}
			switch field.Value {
			case "name":
				a.Name = v.Value
			case "email":
				a.Email = v.Value
			case "signingkey":
				a.SigningKey = v.Value
			}
		}
		if a.Name == "" || a.Email == "" {
			return Catalogue{}, yamlNodeError(doc, key, fmt.Sprintf("author %q needs both a name and an email", key.Value))
		}
		c.authors[key.Value] = a
	}
	return c, nil
}

func yamlNodeError(doc string, n *yaml.Node, msg string) *FormatError {
	return &FormatError{Format: "yaml", Message: msg, Span: spanAt(doc, n.Line, n.Column)}
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// tomlTableSpan finds the header line of the table for initial.
func tomlTableSpan(doc, initial string) Span {
	for i, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "["+initial+"]" || trimmed == `["`+initial+`"]` || trimmed == "['"+initial+"']" {
			return spanAt(doc, i+1, strings.Index(line, "[")+1)
		}
	}
	return Span{}
}

// spanAt converts a 1-based line and column into a span running to the end
// of that line. Out of range positions yield a zero span.
func spanAt(doc string, line, column int) Span {
	if line < 1 {
		return Span{}
	}
	offset := 0
	for l := 1; l < line; l++ {
		nl := strings.IndexByte(doc[offset:], '\n')
		if nl < 0 {
			return Span{}
		}
		offset += nl + 1
	}
	end := strings.IndexByte(doc[offset:], '\n')
	if end < 0 {
		end = len(doc) - offset
	}
	if column < 1 {
		column = 1
	}
	start := offset + column - 1
	if start > offset+end {
		start = offset + end
	}
	return Span{Line: line, Column: column, Offset: start, Length: offset + end - start}
}
