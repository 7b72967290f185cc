package clierr

import (
	"errors"
	"fmt"
)

// Exit codes shared by every git-mit binary. Lint problems use the code of
// the failing lint (20 and up) when only one lint failed.
const (
	Generic          = 1
	StaleAuthors     = 3
	UnparsableAuthor = 4
	MissingInitial   = 5
	UnknownLint      = 6
	NoAuthorsToSet   = 7
	MessageRead      = 8
	ConfigStore      = 9
	MultipleProblems = 10
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
// It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// Silent reports whether the message was already shown to the user, in
// which case main prints nothing more.
func (e *ExitError) Silent() bool { return e.msg == "" && e.cause == nil }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError that wraps an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Newf is a formatted variant.
func Newf(code int, format string, args ...any) error {
	return &ExitError{code: normalize(code), msg: fmt.Sprintf(format, args...)}
}

// Exit returns an error that only sets the exit code. Use it after the
// command has already reported the failure itself.
func Exit(code int) error {
	return &ExitError{code: normalize(code)}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return Generic
}

// IsSilent reports whether err needs no further printing.
func IsSilent(err error) bool {
	var e *ExitError
	return errors.As(err, &e) && e.Silent()
}

func normalize(code int) int {
	if code <= 0 {
		return Generic
	}
	return code
}
