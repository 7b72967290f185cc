// SPDX-License-Identifier: AGPL-3.0-or-later

/*
git-mit - commit message trailers and lints for pairing developers.
It keeps the Co-authored-by and Relates-to trailers of every commit accurate and checks outgoing messages against a configurable set of rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands builds the cobra command trees of the git-mit binaries.
// Every binary is a thin main around one constructor here.
package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/bartekus/gitmit/internal/store"
)

// Environment variables read by the binaries.
const (
	EnvAuthorsConfig    = "GIT_MIT_AUTHORS_CONFIG"
	EnvAuthorsExec      = "GIT_MIT_AUTHORS_EXEC"
	EnvAuthorsTimeout   = "GIT_MIT_AUTHORS_TIMEOUT"
	EnvRelatesToTimeout = "GIT_MIT_RELATES_TO_TIMEOUT"
)

const defaultTimeoutMinutes = 60

// Version is set at build time with -ldflags.
var Version = "0.0.0-dev"

// Clipboard receives rejected commit messages.
type Clipboard interface {
	Supported() bool
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Supported() bool { return !clipboard.Unsupported }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Env is everything a command needs from the process. Tests replace the
// fields with fakes.
type Env struct {
	// Dir is the working directory git commands run in.
	Dir    string
	Getenv func(string) string
	Now    func() time.Time

	// Store opens the config store that writes go to scope.
	Store func(dir string, scope store.Scope) store.Store

	StdoutIsTerminal func() bool
	StderrIsTerminal func() bool
	Clipboard        Clipboard

	LookPath func(string) (string, error)
	// Exec runs a shell command and returns its stdout.
	Exec          func(ctx context.Context, dir, command string) (string, error)
	UserConfigDir func() (string, error)
}

// DefaultEnv wires Env to the real process.
func DefaultEnv() Env {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return Env{
		Dir:    dir,
		Getenv: os.Getenv,
		Now:    time.Now,
		Store: func(dir string, scope store.Scope) store.Store {
			return store.NewGitConfig(store.WithDir(dir), store.WithScope(scope))
		},
		StdoutIsTerminal: func() bool { return isTerminal(os.Stdout) },
		StderrIsTerminal: func() bool { return isTerminal(os.Stderr) },
		Clipboard:        systemClipboard{},
		LookPath:         exec.LookPath,
		Exec:             shellExec,
		UserConfigDir:    os.UserConfigDir,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func shellExec(ctx context.Context, dir, command string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %q: %w: %s", command, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// defaultCataloguePath is $GIT_MIT_AUTHORS_CONFIG or the user config dir.
func (e Env) defaultCataloguePath() string {
	if p := e.Getenv(EnvAuthorsConfig); p != "" {
		return p
	}
	dir, err := e.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "git-mit", "mit.toml")
}

// minutes reads a whole number of minutes from the environment.
func (e Env) minutes(name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(e.Getenv(name)))
	if err != nil || v <= 0 {
		return defaultTimeoutMinutes
	}
	return v
}
