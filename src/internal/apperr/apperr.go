// Package apperr defines the failure kinds a jsfmt run can end with and how
// they map to process exit codes.
package apperr

import (
	"errors"
	"fmt"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Kind classifies a terminal failure.
type Kind int

const (
	UsageError Kind = iota + 1
	IoError
	ConfigParseError
	EngineError
)

func (k Kind) String() string {
	switch k {
	case UsageError:
		return "usage error"
	case IoError:
		return "io error"
	case ConfigParseError:
		return "config parse error"
	case EngineError:
		return "engine error"
	default:
		return "error"
	}
}

// Error is the single error type surfaced to the top-level dispatcher.
// Message is the complete line shown to the user; Err keeps the cause.
type Error struct {
	Kind      Kind
	Message   string
	Err       error
	ShowUsage bool
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Usagef builds a UsageError. showUsage controls whether the dispatcher
// follows the message with the usage text.
func Usagef(showUsage bool, format string, args ...any) error {
	return &Error{Kind: UsageError, Message: fmt.Sprintf(format, args...), ShowUsage: showUsage}
}

// Wrap builds an Error of the given kind whose message is prefix + ": " + cause.
func Wrap(kind Kind, err error, prefix string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: prefix + ": " + err.Error(), Err: err}
}

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsUsage reports whether err is a usage error that should be followed by
// the usage text.
func IsUsage(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == UsageError && e.ShowUsage
}

// ExitCode maps err to the process exit status. Every failure kind is
// terminal and shares status 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
