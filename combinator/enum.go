package combinator

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/apstndb/parsefrom/input"
)

// EnumParser matches one literal out of a fixed table and returns the value
// associated with it. The longest matching literal wins, so "u16" is not
// mistaken for "u1" when both are present.
type EnumParser[T any] struct {
	values      map[string]T
	literals    []string // longest first
	caseMatters bool
}

// NewEnum creates a case-sensitive enum parser over values.
func NewEnum[T any](values map[string]T) *EnumParser[T] {
	literals := lo.Keys(values)
	slices.SortFunc(literals, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return &EnumParser[T]{
		values:      values,
		literals:    literals,
		caseMatters: true,
	}
}

// CaseInsensitive makes the parser match literals ignoring case.
func (p *EnumParser[T]) CaseInsensitive() *EnumParser[T] {
	p.caseMatters = false
	return p
}

// Literals returns the accepted literals in sorted order.
func (p *EnumParser[T]) Literals() []string {
	literals := slices.Clone(p.literals)
	slices.Sort(literals)
	return literals
}

func (p *EnumParser[T]) equal(a, b string) bool {
	if p.caseMatters {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// Parse implements Parser for the enum table.
func (p *EnumParser[T]) Parse(in input.Cursor) (input.Cursor, T, error) {
	var zero T
	rem := in.Remaining()

	if in.IsStreaming() {
		// A longer literal may still complete in the next chunk.
		for _, lit := range p.literals {
			if len(rem) < len(lit) && p.equal(rem, lit[:len(rem)]) {
				return in, zero, incomplete(in, len(lit)-len(rem))
			}
		}
	}

	for _, lit := range p.literals {
		if len(rem) >= len(lit) && p.equal(rem[:len(lit)], lit) {
			return in.Advance(len(lit)), p.values[lit], nil
		}
	}

	quoted := lo.Map(p.Literals(), func(s string, _ int) string { return strconv.Quote(s) })
	return in, zero, NewError(in, KindTag, "one of "+strings.Join(quoted, ", "))
}
