package combinator

import (
	"errors"
	"fmt"

	"github.com/apstndb/parsefrom/input"
)

// ErrorKind classifies a recoverable parse error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTag
	KindChar
	KindDigit
	KindSign
	KindSpace
	KindCrLf
	KindBool
	KindFloat
	KindEOF
	KindVerify
	KindAlt
	KindMany
	KindCount
	KindDuplicate

	// KindRange reports a well-formed literal whose value does not fit the
	// target type. It is the only kind that is not a structural mismatch.
	KindRange
)

var kindNames = map[ErrorKind]string{
	KindUnknown:   "unknown",
	KindTag:       "tag",
	KindChar:      "char",
	KindDigit:     "digit",
	KindSign:      "sign",
	KindSpace:     "space",
	KindCrLf:      "line ending",
	KindBool:      "bool",
	KindFloat:     "float",
	KindEOF:       "eof",
	KindVerify:    "verify",
	KindAlt:       "alt",
	KindMany:      "many",
	KindCount:     "count",
	KindDuplicate: "duplicate",
	KindRange:     "range",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a recoverable parse error. A caller composing several parsers may
// try another alternative at the same input after receiving it.
type Error struct {
	Kind ErrorKind

	// Input is the cursor at the point of failure.
	Input input.Cursor

	// Expected describes the construct that was expected, e.g. `"="` or "digit".
	Expected string

	// Err is the underlying cause, if any.
	Err error
}

// NewError returns an *Error of the given kind at in.
func NewError(in input.Cursor, kind ErrorKind, expected string) *Error {
	return &Error{Kind: kind, Input: in, Expected: expected}
}

// Position returns the position of the failure.
func (e *Error) Position() input.Position { return e.Input.Position() }

func (e *Error) Error() string {
	return e.Position().String() + ": " + e.Message()
}

// Message returns the error text without position information.
func (e *Error) Message() string {
	var msg string
	switch {
	case e.Kind == KindRange:
		msg = "value out of range"
		if e.Expected != "" {
			msg += " for " + e.Expected
		}
	case e.Expected != "":
		msg = "expected " + e.Expected
	default:
		msg = "unexpected input (" + e.Kind.String() + ")"
	}
	switch cause := e.Err.(type) {
	case nil:
	case *Error:
		if e.Kind != KindAlt {
			msg += ": " + cause.Message()
		}
	default:
		if e.Kind != KindRange {
			msg += ": " + cause.Error()
		}
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ErrIncomplete is matched by errors.Is for every incomplete outcome.
var ErrIncomplete = errors.New("incomplete input")

// Incomplete reports that a streaming cursor ran out of data before the
// parser could decide. It is not a failure: retry with more input.
type Incomplete struct {
	Input input.Cursor

	// Needed is the minimum number of additional bytes required, or 0 if
	// unknown.
	Needed int
}

func (e *Incomplete) Error() string {
	if e.Needed > 0 {
		return fmt.Sprintf("%v: incomplete input: need %d more bytes", e.Input.Position(), e.Needed)
	}
	return fmt.Sprintf("%v: incomplete input", e.Input.Position())
}

func (e *Incomplete) Is(target error) bool { return target == ErrIncomplete }

// Failure is an unrecoverable parse error produced by Cut. Alternatives and
// repetitions never backtrack over it.
type Failure struct {
	Err *Error
}

func (e *Failure) Error() string { return e.Err.Error() }

func (e *Failure) Unwrap() error { return e.Err }

// Backtrackable reports whether err allows an enclosing parser to try another
// alternative at the same input. Only a bare *Error qualifies; incomplete
// outcomes, failures and foreign errors are propagated as they are.
func Backtrackable(err error) bool {
	_, ok := err.(*Error)
	return ok
}

// IsMismatch reports whether err is a structural mismatch: a recoverable
// error of any kind other than KindRange.
func IsMismatch(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind != KindRange
}

// IsRange reports whether err is, or wraps, a range violation.
func IsRange(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindRange
}

// IsIncomplete reports whether err is an incomplete outcome.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// IsFailure reports whether err is, or wraps, an unrecoverable failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// KindOf returns the kind of the *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func incomplete(in input.Cursor, needed int) error {
	return &Incomplete{Input: in, Needed: needed}
}
