// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import (
	"github.com/bartekus/gitmit/internal/message"
)

// Lint is a single commit message rule.
//
// Implementations must be pure functions of the message: they may be
// evaluated concurrently and in any order.
type Lint interface {
	// Code returns the stable identifier of the rule.
	Code() Code

	// Name returns the kebab-case name used in configuration.
	Name() string

	// EnabledByDefault reports whether the rule runs without configuration.
	EnabledByDefault() bool

	// Lint returns a problem, or nil when the message passes.
	Lint(m message.Message) *Problem
}

type rule struct {
	code    Code
	enabled bool
}

func (r rule) Code() Code { return r.code }

func (r rule) Name() string { return r.code.String() }

func (r rule) EnabledByDefault() bool { return r.enabled }

func (r rule) problem(summary, help string, labels ...Label) *Problem {
	return &Problem{Code: r.code, Summary: summary, Help: help, Labels: labels}
}
