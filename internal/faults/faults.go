// Package faults defines the error kinds shared between the core services
// and the presentation layers. Handlers map kinds to transport codes; the
// core only ever produces a kind.
package faults

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Internal is the fallback for errors without an explicit kind.
	Internal Kind = iota
	// InvalidInput marks requests rejected before any work is done.
	InvalidInput
	// NotFound marks lookups of identifiers absent from the data source.
	NotFound
	// ProviderFailure marks failures of the embedding backend. The core
	// never retries these; the caller decides on retry policy.
	ProviderFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NotFound:
		return "not found"
	case ProviderFailure:
		return "provider failure"
	default:
		return "internal"
	}
}

type Error struct {
	kind Kind
	msg  string
	err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error while keeping it unwrappable.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		if e.msg == "" {
			return e.err.Error()
		}
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

// KindOf returns the kind of err, or Internal when err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
