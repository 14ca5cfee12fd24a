package combinator

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/apstndb/parsefrom/input"
)

// Validator is a function type for value validation.
type Validator[T any] func(value T) error

// ChainValidators combines multiple validators into a single validator.
// All validators must pass for the value to be considered valid.
func ChainValidators[T any](validators ...Validator[T]) Validator[T] {
	return func(value T) error {
		for _, validator := range validators {
			if err := validator(value); err != nil {
				return err
			}
		}
		return nil
	}
}

// RangeValidator creates a validator for ordered values with optional
// inclusive bounds. A nil bound is not checked.
func RangeValidator[T constraints.Ordered](min, max *T) Validator[T] {
	return func(v T) error {
		if min != nil && v < *min {
			return fmt.Errorf("value %v is less than minimum %v", v, *min)
		}
		if max != nil && v > *max {
			return fmt.Errorf("value %v is greater than maximum %v", v, *max)
		}
		return nil
	}
}

// Verify runs p and then the validators on its value. A rejected value is a
// recoverable KindVerify error positioned where p started, so alternatives
// can still be tried.
func Verify[T any](p Parser[T], validators ...Validator[T]) Parser[T] {
	validate := ChainValidators(validators...)
	return func(in input.Cursor) (input.Cursor, T, error) {
		var zero T
		rest, v, err := p(in)
		if err != nil {
			return in, zero, err
		}
		if err := validate(v); err != nil {
			return in, zero, &Error{Kind: KindVerify, Input: in, Err: err}
		}
		return rest, v, nil
	}
}
