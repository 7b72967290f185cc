// SPDX-License-Identifier: AGPL-3.0-or-later
package lints

import "fmt"

// UnknownNameError is returned when configuration names a rule that does
// not exist.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown lint %q", e.Name)
}
