package shape

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/apstndb/parsefrom"
	"github.com/apstndb/parsefrom/combinator"
)

// Scalar is a named leaf shape backed by a ParseFrom implementation.
// The registry handles scalars of different Go types uniformly through this
// interface.
type Scalar interface {
	Shape
	Name() string
	Description() string
}

// typedScalar provides the Scalar implementation for any ParseFrom type T.
type typedScalar[T any] struct {
	name        string
	description string
	parse       combinator.Parser[T]
	comparable  bool
}

func (s *typedScalar[T]) Name() string        { return s.name }
func (s *typedScalar[T]) Description() string { return s.description }
func (s *typedScalar[T]) String() string      { return s.name }
func (s *typedScalar[T]) Comparable() bool    { return s.comparable }

func (s *typedScalar[T]) Parser() combinator.Parser[any] {
	return combinator.Map(s.parse, func(v T) any { return v })
}

// NewScalar creates a scalar shape for T. Values of comparable scalars may be
// used as set elements and map keys.
func NewScalar[T parsefrom.ParseFrom[T]](name, description string, comparable bool) Scalar {
	return &typedScalar[T]{
		name:        name,
		description: description,
		parse:       parsefrom.Of[T](),
		comparable:  comparable,
	}
}

// Registry manages the scalar shapes an expression may refer to.
type Registry struct {
	scalars map[string]Scalar
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scalars: make(map[string]Scalar),
	}
}

// Register adds a scalar to the registry. Names are case-sensitive.
func (r *Registry) Register(s Scalar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if name == "" {
		return fmt.Errorf("scalar shape must have a name")
	}
	if _, exists := r.scalars[name]; exists {
		return fmt.Errorf("shape %s already registered", name)
	}

	r.scalars[name] = s
	return nil
}

// Lookup retrieves a scalar by name.
func (r *Registry) Lookup(name string) (Scalar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scalars[name]
	return s, ok
}

// All iterates over the registered scalars in name order.
func (r *Registry) All() iter.Seq[Scalar] {
	r.mu.RLock()
	snapshot := maps.Clone(r.scalars)
	r.mu.RUnlock()

	return func(yield func(Scalar) bool) {
		for _, name := range slices.Sorted(maps.Keys(snapshot)) {
			if !yield(snapshot[name]) {
				return
			}
		}
	}
}

func (r *Registry) snapshot() map[string]Scalar {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.scalars)
}

// Builtins returns a registry holding the built-in scalar shapes.
func Builtins() *Registry {
	r := NewRegistry()
	for _, s := range []Scalar{
		NewScalar[parsefrom.Uint8]("u8", "unsigned 8-bit integer", true),
		NewScalar[parsefrom.Uint16]("u16", "unsigned 16-bit integer", true),
		NewScalar[parsefrom.Uint32]("u32", "unsigned 32-bit integer", true),
		NewScalar[parsefrom.Uint64]("u64", "unsigned 64-bit integer", true),
		NewScalar[parsefrom.Int8]("i8", "signed 8-bit integer", true),
		NewScalar[parsefrom.Int16]("i16", "signed 16-bit integer", true),
		NewScalar[parsefrom.Int32]("i32", "signed 32-bit integer", true),
		NewScalar[parsefrom.Int64]("i64", "signed 64-bit integer", true),
		NewScalar[parsefrom.Float32]("f32", "32-bit floating point number", false),
		NewScalar[parsefrom.Float64]("f64", "64-bit floating point number", false),
		NewScalar[parsefrom.BigInt]("bigint", "arbitrary width integer", false),
		NewScalar[parsefrom.Decimal]("decimal", "arbitrary precision decimal", false),
		NewScalar[parsefrom.Bool]("bool", "true or false", true),
		NewScalar[parsefrom.Char]("char", "one UTF-8 code point", true),
		NewScalar[parsefrom.Byte]("byte", "one raw byte", true),
	} {
		lo.Must0(r.Register(s))
	}
	return r
}
