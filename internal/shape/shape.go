package shape

import (
	"fmt"

	"github.com/apstndb/parsefrom"
	"github.com/apstndb/parsefrom/combinator"
)

// Shape is a compiled shape expression.
type Shape interface {
	// String returns the shape in expression syntax.
	String() string

	// Parser returns a parser producing values of the shape. Scalars produce
	// their parsefrom type, sequences and arrays []any, sets
	// map[any]struct{} and mappings map[any]any.
	Parser() combinator.Parser[any]

	// Comparable reports whether values of the shape can be set elements
	// or map keys.
	Comparable() bool
}

// Seq is a line separated sequence.
type Seq struct {
	Elem Shape
}

func (s Seq) String() string   { return "[]" + s.Elem.String() }
func (s Seq) Comparable() bool { return false }

func (s Seq) Parser() combinator.Parser[any] {
	return combinator.Map(parsefrom.SeqOf(s.Elem.Parser()), func(v []any) any { return v })
}

// Array is a comma separated list of fixed length.
type Array struct {
	Len  int
	Elem Shape
}

func (s Array) String() string   { return fmt.Sprintf("[%d]%v", s.Len, s.Elem) }
func (s Array) Comparable() bool { return false }

func (s Array) Parser() combinator.Parser[any] {
	return combinator.Map(parsefrom.ArrayOf(s.Len, s.Elem.Parser()), func(v []any) any { return v })
}

// Set is a line separated set.
type Set struct {
	Elem Shape
}

func (s Set) String() string   { return "set[" + s.Elem.String() + "]" }
func (s Set) Comparable() bool { return false }

func (s Set) Parser() combinator.Parser[any] {
	return combinator.Map(parsefrom.SetOf(s.Elem.Parser()), func(v map[any]struct{}) any { return v })
}

// Map is a line separated list of key=value entries.
type Map struct {
	Key, Value Shape
	Duplicates parsefrom.DuplicatePolicy
}

func (s Map) String() string   { return "map[" + s.Key.String() + "]" + s.Value.String() }
func (s Map) Comparable() bool { return false }

func (s Map) Parser() combinator.Parser[any] {
	return combinator.Map(parsefrom.MapOf(s.Key.Parser(), s.Value.Parser(), s.Duplicates), func(v map[any]any) any { return v })
}
