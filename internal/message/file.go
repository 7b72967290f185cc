// SPDX-License-Identifier: AGPL-3.0-or-later
package message

import (
	"fmt"
	"os"

	"github.com/bartekus/gitmit/internal/fsutil"
)

// ReadError reports a commit message file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading commit message %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ReadFile parses the commit message stored at path.
func ReadFile(path string) (Message, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is handed to us by git
	if err != nil {
		return Message{}, &ReadError{Path: path, Err: err}
	}
	return New(string(data)), nil
}

// WriteFile atomically replaces the file at path with the rendered message.
func WriteFile(path string, m Message) error {
	if err := fsutil.AtomicWrite(path, []byte(m.String())); err != nil {
		return fmt.Errorf("writing commit message %s: %w", path, err)
	}
	return nil
}
