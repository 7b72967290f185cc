// SPDX-License-Identifier: AGPL-3.0-or-later
package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

// Scope selects the git config file that writes go to.
type Scope string

const (
	// ScopeDefault lets git pick: the repository config inside a
	// repository.
	ScopeDefault Scope = ""
	ScopeLocal   Scope = "local"
	ScopeGlobal  Scope = "global"
)

// ParseScope converts a command line scope name.
func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case ScopeLocal, ScopeGlobal:
		return Scope(s), true
	case ScopeDefault:
		return ScopeDefault, true
	}
	return "", false
}

// Exit statuses of git config that are not failures.
const (
	gitConfigKeyMissing   = 1
	gitConfigNothingUnset = 5
)

// GitConfig is a Store over the git config hierarchy.
//
// Reads see the merged view git presents (system, global, local) unless a
// file is configured, in which case only that file is read. Writes go to the
// configured scope or file.
type GitConfig struct {
	exec  Executor
	dir   string
	file  string
	scope Scope
}

type Option func(*GitConfig)

// WithDir runs git in dir, which decides the repository config in effect.
func WithDir(dir string) Option {
	return func(g *GitConfig) { g.dir = dir }
}

// WithFile reads and writes a single config file instead of the hierarchy.
func WithFile(path string) Option {
	return func(g *GitConfig) { g.file = path }
}

func WithScope(scope Scope) Option {
	return func(g *GitConfig) { g.scope = scope }
}

func WithExecutor(e Executor) Option {
	return func(g *GitConfig) { g.exec = e }
}

// NewGitConfig creates a git backed store.
func NewGitConfig(opts ...Option) *GitConfig {
	g := &GitConfig{exec: ExecExecutor{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GitConfig) readArgs(args ...string) []string {
	base := []string{"config"}
	if g.file != "" {
		base = append(base, "--file", g.file)
	}
	return append(base, args...)
}

func (g *GitConfig) writeArgs(args ...string) []string {
	base := []string{"config"}
	switch {
	case g.file != "":
		base = append(base, "--file", g.file)
	case g.scope != ScopeDefault:
		base = append(base, "--"+string(g.scope))
	}
	return append(base, args...)
}

func (g *GitConfig) git(args []string) (string, error) {
	return g.exec.Git(context.Background(), g.dir, args...)
}

func (g *GitConfig) Entries(glob string) ([]string, error) {
	out, err := g.git(g.readArgs("--name-only", "--list"))
	if err != nil {
		return nil, &Error{Op: "list", Err: err}
	}

	seen := make(map[string]bool)
	var keys []string
	for _, line := range strings.Split(out, "\n") {
		key := strings.TrimSpace(line)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return filterKeys(keys, glob), nil
}

func (g *GitConfig) get(key string, typeFlag string) (string, bool, error) {
	args := []string{"--get", key}
	if typeFlag != "" {
		args = append([]string{typeFlag}, args...)
	}
	out, err := g.git(g.readArgs(args...))
	if err != nil {
		if exitCode(err) == gitConfigKeyMissing {
			return "", false, nil
		}
		return "", false, &Error{Op: "get", Key: key, Err: err}
	}
	return strings.TrimSuffix(out, "\n"), true, nil
}

func (g *GitConfig) String(key string) (string, bool, error) {
	return g.get(key, "")
}

func (g *GitConfig) Int64(key string) (int64, bool, error) {
	raw, ok, err := g.get(key, "--type=int")
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false, &Error{Op: "get", Key: key, Err: ErrInvalidValue}
	}
	return v, true, nil
}

func (g *GitConfig) Bool(key string) (bool, bool, error) {
	raw, ok, err := g.get(key, "--type=bool")
	if err != nil || !ok {
		return false, false, err
	}
	return strings.TrimSpace(raw) == "true", true, nil
}

func (g *GitConfig) SetString(key, value string) error {
	if _, err := g.git(g.writeArgs(key, value)); err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (g *GitConfig) SetInt64(key string, value int64) error {
	return g.SetString(key, strconv.FormatInt(value, 10))
}

func (g *GitConfig) SetBool(key string, value bool) error {
	return g.SetString(key, strconv.FormatBool(value))
}

func (g *GitConfig) Remove(key string) error {
	if _, err := g.git(g.writeArgs("--unset-all", key)); err != nil {
		if exitCode(err) == gitConfigNothingUnset {
			return nil
		}
		return &Error{Op: "remove", Key: key, Err: err}
	}
	return nil
}
