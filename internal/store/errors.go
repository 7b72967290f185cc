// SPDX-License-Identifier: AGPL-3.0-or-later
package store

import (
	"errors"
	"fmt"
)

// ErrInvalidValue indicates a stored value cannot be read as the requested type.
var ErrInvalidValue = errors.New("invalid value")

// Error reports a failed store operation.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("config store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
