package combinator

import (
	"strings"

	"github.com/apstndb/parsefrom/input"
)

// Parser is the signature shared by every parser: it consumes a prefix of in
// and returns the remaining input together with the produced value.
//
// On error the returned cursor is unspecified; callers continue from the
// cursor they passed in.
type Parser[T any] func(in input.Cursor) (input.Cursor, T, error)

// Pair holds the results of two sequential parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Map applies f to the value produced by p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(in input.Cursor) (input.Cursor, U, error) {
		var zero U
		rest, v, err := p(in)
		if err != nil {
			return in, zero, err
		}
		return rest, f(v), nil
	}
}

// MapRes applies a fallible transformation to the value produced by p.
// An error from f that is not already an *Error becomes a KindVerify error
// positioned where p started.
func MapRes[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	return func(in input.Cursor) (input.Cursor, U, error) {
		var zero U
		rest, v, err := p(in)
		if err != nil {
			return in, zero, err
		}
		u, err := f(v)
		if err != nil {
			if _, ok := err.(*Error); ok {
				return in, zero, err
			}
			return in, zero, &Error{Kind: KindVerify, Input: in, Err: err}
		}
		return rest, u, nil
	}
}

// Value returns v when p succeeds, discarding p's own value.
func Value[T, U any](v U, p Parser[T]) Parser[U] {
	return Map(p, func(T) U { return v })
}

// Opt makes p optional: a backtrackable error yields nil without consuming
// input.
func Opt[T any](p Parser[T]) Parser[*T] {
	return func(in input.Cursor) (input.Cursor, *T, error) {
		rest, v, err := p(in)
		switch {
		case err == nil:
			return rest, &v, nil
		case Backtrackable(err):
			return in, nil, nil
		default:
			return in, nil, err
		}
	}
}

// Alt tries each parser in order at the same input and returns the first
// success. Incomplete outcomes and failures stop the search immediately.
// If every alternative fails recoverably the result is a KindAlt error
// listing what each alternative expected.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(in input.Cursor) (input.Cursor, T, error) {
		var zero T
		var expected []string
		var last error
		for _, p := range ps {
			rest, v, err := p(in)
			if err == nil {
				return rest, v, nil
			}
			if !Backtrackable(err) {
				return in, zero, err
			}
			if e := err.(*Error); e.Expected != "" {
				expected = append(expected, e.Expected)
			}
			last = err
		}
		return in, zero, &Error{Kind: KindAlt, Input: in, Expected: strings.Join(expected, " or "), Err: last}
	}
}

// Cut promotes a recoverable error of p to a *Failure so that enclosing
// alternatives do not try other branches.
func Cut[T any](p Parser[T]) Parser[T] {
	return func(in input.Cursor) (input.Cursor, T, error) {
		rest, v, err := p(in)
		if e, ok := err.(*Error); ok {
			return in, v, &Failure{Err: e}
		}
		return rest, v, err
	}
}

// Complete turns an incomplete outcome of p into a recoverable KindEOF error.
func Complete[T any](p Parser[T]) Parser[T] {
	return func(in input.Cursor) (input.Cursor, T, error) {
		rest, v, err := p(in)
		if IsIncomplete(err) {
			return in, v, &Error{Kind: KindEOF, Input: in, Expected: "more input", Err: err}
		}
		return rest, v, err
	}
}

// Recognize returns the input consumed by p instead of p's value.
func Recognize[T any](p Parser[T]) Parser[string] {
	return func(in input.Cursor) (input.Cursor, string, error) {
		rest, _, err := p(in)
		if err != nil {
			return in, "", err
		}
		return rest, rest.Consumed(in), nil
	}
}

// Preceded runs first then second and keeps second's value.
func Preceded[A, B any](first Parser[A], second Parser[B]) Parser[B] {
	return func(in input.Cursor) (input.Cursor, B, error) {
		var zero B
		rest, _, err := first(in)
		if err != nil {
			return in, zero, err
		}
		return second(rest)
	}
}

// Terminated runs first then second and keeps first's value.
func Terminated[A, B any](first Parser[A], second Parser[B]) Parser[A] {
	return func(in input.Cursor) (input.Cursor, A, error) {
		var zero A
		rest, v, err := first(in)
		if err != nil {
			return in, zero, err
		}
		rest, _, err = second(rest)
		if err != nil {
			return in, zero, err
		}
		return rest, v, nil
	}
}

// Delimited runs open, p and close and keeps p's value.
func Delimited[A, T, B any](open Parser[A], p Parser[T], close Parser[B]) Parser[T] {
	return Preceded(open, Terminated(p, close))
}

// SeparatedPair runs first, sep and second and keeps both values.
func SeparatedPair[A, S, B any](first Parser[A], sep Parser[S], second Parser[B]) Parser[Pair[A, B]] {
	return func(in input.Cursor) (input.Cursor, Pair[A, B], error) {
		var zero Pair[A, B]
		rest, a, err := first(in)
		if err != nil {
			return in, zero, err
		}
		rest, _, err = sep(rest)
		if err != nil {
			return in, zero, err
		}
		rest, b, err := second(rest)
		if err != nil {
			return in, zero, err
		}
		return rest, Pair[A, B]{First: a, Second: b}, nil
	}
}

// AllConsuming succeeds only if p consumes the whole buffer.
func AllConsuming[T any](p Parser[T]) Parser[T] {
	return func(in input.Cursor) (input.Cursor, T, error) {
		var zero T
		rest, v, err := p(in)
		if err != nil {
			return in, zero, err
		}
		if !rest.IsEmpty() {
			return in, zero, NewError(rest, KindEOF, "end of input")
		}
		return rest, v, nil
	}
}
