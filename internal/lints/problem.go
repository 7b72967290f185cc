// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

// Label marks a byte range of the commit message a problem refers to.
type Label struct {
	Text   string
	Offset int
	Length int
}

// Problem is a single finding produced by a rule. It is not an error: the
// runner collects every problem before anything is reported.
type Problem struct {
	Code    Code
	Summary string
	Help    string
	Labels  []Label
	// Source is the message text the labels point into.
	Source string
}
