// SPDX-License-Identifier: AGPL-3.0-or-later
package lintconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/bartekus/gitmit/internal/lints"
)

// Namespace is the top-level table git-mit owns in the document.
const Namespace = "mit"

// DocumentNames are tried in order next to the repository root.
var DocumentNames = []string{".git-mit.toml", ".git-mit.toml.dist"}

// Document is the repository-local lint configuration.
type Document struct {
	// Path is where the document was read from, empty when none exists.
	Path  string
	Lints map[string]bool
}

// DocumentError reports a lint document that cannot be used.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("lint configuration: %v", e.Err)
	}
	return fmt.Sprintf("lint configuration %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// LoadDocument reads the first existing document in repoRoot. A repository
// without one has an empty document.
func LoadDocument(repoRoot string) (Document, error) {
	for _, name := range DocumentNames {
		path := filepath.Join(repoRoot, name)
		data, err := os.ReadFile(path) //nolint:gosec // G304: fixed names under the repository root
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Document{}, &DocumentError{Path: path, Err: err}
		}
		doc, err := ParseDocument(data)
		if err != nil {
			var de *DocumentError
			if errors.As(err, &de) {
				de.Path = path
			}
			return Document{}, err
		}
		doc.Path = path
		return doc, nil
	}
	return Document{Lints: map[string]bool{}}, nil
}

// ParseDocument decodes a TOML lint document. Only the [mit.lint] table is
// read; every value in it must be a boolean.
func ParseDocument(data []byte) (Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Document{}, &DocumentError{Err: err}
	}

	doc := Document{Lints: map[string]bool{}}
	ns, ok := raw[Namespace].(map[string]any)
	if !ok {
		return doc, nil
	}
	table, ok := ns["lint"].(map[string]any)
	if !ok {
		return doc, nil
	}
	for name, v := range table {
		b, ok := v.(bool)
		if !ok {
			return Document{}, &DocumentError{Err: fmt.Errorf("%s.lint.%s must be true or false", Namespace, name)}
		}
		doc.Lints[name] = b
	}
	return doc, nil
}

// Generate renders a document that pins every lint in the registry to its
// state in enabled.
func Generate(reg *lints.Registry, enabled lints.Set) (string, error) {
	table := make(map[string]bool)
	for _, l := range reg.Lints() {
		table[l.Name()] = enabled.Contains(l.Code())
	}
	out, err := toml.Marshal(map[string]map[string]map[string]bool{
		Namespace: {"lint": table},
	})
	if err != nil {
		return "", fmt.Errorf("render lint configuration: %w", err)
	}
	return string(out), nil
}

func sortedNames(m map[string]bool) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
