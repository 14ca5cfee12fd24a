package shape

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/apstndb/parsefrom"
	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
)

// Options control how an expression is compiled.
type Options struct {
	// Duplicates is the duplicate key policy of every map shape.
	Duplicates parsefrom.DuplicatePolicy
}

// MaxArrayLen is the largest N accepted in [N]S.
const MaxArrayLen = 1 << 16

var builtins = Builtins()

// Parse compiles expr against the built-in scalars.
func Parse(expr string, opts Options) (Shape, error) {
	return builtins.Parse(expr, opts)
}

// Parse compiles expr against the scalars of r.
func (r *Registry) Parse(expr string, opts Options) (Shape, error) {
	c := &compiler{
		scalars: combinator.NewEnum(lo.MapValues(r.snapshot(), func(s Scalar, _ string) Shape { return s })),
		opts:    opts,
	}
	_, s, err := combinator.AllConsuming[Shape](c.shape)(input.New(expr).Named("shape"))
	if err != nil {
		return nil, fmt.Errorf("invalid shape %q: %w", expr, err)
	}
	return s, nil
}

type compiler struct {
	scalars *combinator.EnumParser[Shape]
	opts    Options
}

var maxArrayLen = MaxArrayLen

var arrayLen = combinator.Verify(
	combinator.MapRes(combinator.Digit1, strconv.Atoi),
	combinator.RangeValidator[int](nil, &maxArrayLen),
)

func (c *compiler) shape(in input.Cursor) (input.Cursor, Shape, error) {
	return combinator.Alt[Shape](c.seq, c.array, c.set, c.mapping, c.scalars.Parse)(in)
}

// key is a shape usable as a set element or map key.
func (c *compiler) key(in input.Cursor) (input.Cursor, Shape, error) {
	return combinator.Verify[Shape](c.shape, func(s Shape) error {
		if !s.Comparable() {
			return fmt.Errorf("%v cannot be a set element or map key", s)
		}
		return nil
	})(in)
}

func (c *compiler) seq(in input.Cursor) (input.Cursor, Shape, error) {
	return combinator.Map(
		combinator.Preceded(combinator.Tag("[]"), combinator.Cut[Shape](c.shape)),
		func(elem Shape) Shape { return Seq{Elem: elem} },
	)(in)
}

func (c *compiler) array(in input.Cursor) (input.Cursor, Shape, error) {
	return combinator.Map(
		combinator.Preceded(combinator.Tag("["),
			combinator.Cut(combinator.SeparatedPair(arrayLen, combinator.Tag("]"), combinator.Parser[Shape](c.shape)))),
		func(p combinator.Pair[int, Shape]) Shape { return Array{Len: p.First, Elem: p.Second} },
	)(in)
}

func (c *compiler) set(in input.Cursor) (input.Cursor, Shape, error) {
	return combinator.Map(
		combinator.Preceded(combinator.Tag("set["),
			combinator.Cut(combinator.Terminated(combinator.Parser[Shape](c.key), combinator.Tag("]")))),
		func(elem Shape) Shape { return Set{Elem: elem} },
	)(in)
}

func (c *compiler) mapping(in input.Cursor) (input.Cursor, Shape, error) {
	return combinator.Map(
		combinator.Preceded(combinator.Tag("map["),
			combinator.Cut(combinator.SeparatedPair(combinator.Parser[Shape](c.key), combinator.Tag("]"), combinator.Parser[Shape](c.shape)))),
		func(p combinator.Pair[Shape, Shape]) Shape {
			return Map{Key: p.First, Value: p.Second, Duplicates: c.opts.Duplicates}
		},
	)(in)
}
