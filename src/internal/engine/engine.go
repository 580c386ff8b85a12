// Package engine is the contract between the command-line adapter and the
// formatter that does the actual parsing and printing.
package engine

import (
	"context"
	"strings"

	"jsfmt/src/internal/overrides"
)

// Request is one formatting call. Path and Extension are synthetic: they
// select the language, nothing is read from disk.
type Request struct {
	Path      string
	Extension string
	Text      string
	Overrides overrides.Map
}

// Outcome is the successful result of Format. When Changed is false the
// engine decided no change was needed and Text is empty.
type Outcome struct {
	Changed bool
	Text    string
}

// Formatted returns a changed outcome carrying text.
func Formatted(text string) Outcome { return Outcome{Changed: true, Text: text} }

// Unchanged returns the no-change outcome.
func Unchanged() Outcome { return Outcome{} }

// Engine formats source text.
type Engine interface {
	Format(ctx context.Context, req Request) (Outcome, error)
}

// Func adapts a function to Engine.
type Func func(ctx context.Context, req Request) (Outcome, error)

func (f Func) Format(ctx context.Context, req Request) (Outcome, error) { return f(ctx, req) }

// Error is a failure reported by the engine, either while resolving the
// configuration or while formatting.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return "formatting failed"
	}
	return strings.Join(e.Messages, "\n")
}

// NewError returns an *Error holding msgs.
func NewError(msgs ...string) *Error { return &Error{Messages: msgs} }
