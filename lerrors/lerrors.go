// Package lerrors implements the storage core's error taxonomy: a small
// closed set of error kinds that the session boundary (outside this core)
// type-switches on to decide retry-vs-abort-vs-diagnostic behavior.
//
// NotFound is deliberately not a Kind here: a missing key or an empty
// SET_RANGE result is modeled as a plain (zero value, false) or (nil, nil)
// return at the KV layer, never as an *Error.
package lerrors

import (
	"fmt"

	"github.com/go-stack/stack"
	"github.com/pkg/errors"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// Corrupt marks an inconsistent on-disk or in-memory tuple: bad header
	// size, a GetBasicType size mismatch, mismatched composite-comparator
	// column types. Fatal to the current scan.
	Corrupt Kind = iota + 1
	// Constraint marks a unique-index violation during build or insert.
	// Fatal to the statement; recovered at the transaction boundary.
	Constraint
	// Invalid marks a scan key referencing an attribute not covered by the
	// supplied index, or any other caller-supplied argument this core
	// cannot act on. Fatal to the statement.
	Invalid
	// NotSupported marks an index-scan strategy this core does not
	// implement for the common prefix (anything but equality).
	NotSupported
	// CantOpen marks a failure to open the KV environment or a sub-store.
	// Fatal to the transaction.
	CantOpen
	// IO marks an underlying KV store error other than not-found or
	// key-exists. Fatal to the transaction.
	IO
)

func (k Kind) String() string {
	switch k {
	case Corrupt:
		return "corrupt"
	case Constraint:
		return "constraint"
	case Invalid:
		return "invalid"
	case NotSupported:
		return "not_supported"
	case CantOpen:
		return "cant_open"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// fatalStack identifies the kinds worth capturing a call stack for, mirroring
// the C++ original's elog(ERROR, ...) unwind-with-location behavior for the
// two kinds that indicate the store or a buffer is broken, not just a bad
// argument.
func fatalStack(k Kind) bool {
	return k == Corrupt || k == IO
}

// Error is the concrete error type returned by this core's packages.
type Error struct {
	kind  Kind
	cause error
	stack stack.CallStack
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return wrap(kind, errors.New(fmt.Sprintf(format, args...)))
}

// Wrap attaches kind to an existing cause, preserving it for errors.Cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return wrap(kind, errors.Wrap(cause, fmt.Sprintf(format, args...)))
}

func wrap(kind Kind, cause error) *Error {
	e := &Error{kind: kind, cause: cause}
	if fatalStack(kind) {
		e.stack = stack.Trace().TrimRuntime()
	}
	return e
}

func (e *Error) Error() string {
	if fatalStack(e.kind) && len(e.stack) > 0 {
		return fmt.Sprintf("%s: %v\n%+v", e.kind, e.cause, e.stack)
	}
	return fmt.Sprintf("%s: %v", e.kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}
