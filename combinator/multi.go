package combinator

import (
	"fmt"

	"github.com/apstndb/parsefrom/input"
)

// Many0 applies p until it fails recoverably and collects the values.
// A success that consumes nothing is reported as a KindMany error instead of
// looping forever.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return func(in input.Cursor) (input.Cursor, []T, error) {
		return many(in, p, nil)
	}
}

// Many1 is like Many0 but p must succeed at least once.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(in input.Cursor) (input.Cursor, []T, error) {
		rest, v, err := p(in)
		if err != nil {
			return in, nil, err
		}
		return many(rest, p, []T{v})
	}
}

func many[T any](in input.Cursor, p Parser[T], acc []T) (input.Cursor, []T, error) {
	for {
		rest, v, err := p(in)
		switch {
		case err == nil && rest.Offset() == in.Offset():
			return in, nil, NewError(in, KindMany, "progress")
		case err == nil:
			acc = append(acc, v)
			in = rest
		case Backtrackable(err):
			return in, acc, nil
		default:
			return in, nil, err
		}
	}
}

// SeparatedList0 parses zero or more elements separated by sep. When a
// separator is not followed by an element the list ends before the separator.
func SeparatedList0[T, S any](sep Parser[S], elem Parser[T]) Parser[[]T] {
	return func(in input.Cursor) (input.Cursor, []T, error) {
		rest, v, err := elem(in)
		switch {
		case err == nil:
			return separatedTail(rest, sep, elem, []T{v})
		case Backtrackable(err):
			return in, nil, nil
		default:
			return in, nil, err
		}
	}
}

// SeparatedList1 is like SeparatedList0 but requires at least one element.
func SeparatedList1[T, S any](sep Parser[S], elem Parser[T]) Parser[[]T] {
	return func(in input.Cursor) (input.Cursor, []T, error) {
		rest, v, err := elem(in)
		if err != nil {
			return in, nil, err
		}
		return separatedTail(rest, sep, elem, []T{v})
	}
}

func separatedTail[T, S any](in input.Cursor, sep Parser[S], elem Parser[T], acc []T) (input.Cursor, []T, error) {
	for {
		afterSep, _, err := sep(in)
		switch {
		case err == nil && afterSep.Offset() == in.Offset():
			return in, nil, NewError(in, KindMany, "progress")
		case err == nil:
		case Backtrackable(err):
			return in, acc, nil
		default:
			return in, nil, err
		}

		rest, v, err := elem(afterSep)
		switch {
		case err == nil:
			acc = append(acc, v)
			in = rest
		case Backtrackable(err):
			return in, acc, nil
		default:
			return in, nil, err
		}
	}
}

// Count applies p exactly n times. The first error is returned unchanged.
func Count[T any](p Parser[T], n int) Parser[[]T] {
	return func(in input.Cursor) (input.Cursor, []T, error) {
		acc := make([]T, 0, n)
		cur := in
		for range n {
			rest, v, err := p(cur)
			if err != nil {
				return in, nil, err
			}
			acc = append(acc, v)
			cur = rest
		}
		return cur, acc, nil
	}
}

// SeparatedCount parses exactly n elements separated by sep. Unlike
// SeparatedList0 a missing separator or element is an error: the list has a
// fixed length.
func SeparatedCount[T, S any](sep Parser[S], elem Parser[T], n int) Parser[[]T] {
	return func(in input.Cursor) (input.Cursor, []T, error) {
		acc := make([]T, 0, n)
		cur := in
		for i := range n {
			if i > 0 {
				rest, _, err := sep(cur)
				if err != nil {
					return in, nil, withCount(err, i, n)
				}
				cur = rest
			}
			rest, v, err := elem(cur)
			if err != nil {
				return in, nil, withCount(err, i, n)
			}
			acc = append(acc, v)
			cur = rest
		}
		return cur, acc, nil
	}
}

func withCount(err error, got, want int) error {
	e, ok := err.(*Error)
	if !ok || e.Kind == KindRange {
		return err
	}
	return &Error{
		Kind:     KindCount,
		Input:    e.Input,
		Expected: fmt.Sprintf("%d elements, found %d", want, got),
		Err:      e,
	}
}
