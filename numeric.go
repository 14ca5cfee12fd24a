//
// Copyright 2025 apstndb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package parsefrom

import (
	"errors"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
)

// Decimal integer types. Each parses an optional sign (signed types only)
// followed by one or more ASCII digits.
type (
	Int8   int8
	Int16  int16
	Int32  int32
	Int64  int64
	Uint8  uint8
	Uint16 uint16
	Uint32 uint32
	Uint64 uint64
)

func (Int8) Parse(in input.Cursor) (input.Cursor, Int8, error) {
	return parseSigned[Int8](in, 8, "int8")
}

func (Int16) Parse(in input.Cursor) (input.Cursor, Int16, error) {
	return parseSigned[Int16](in, 16, "int16")
}

func (Int32) Parse(in input.Cursor) (input.Cursor, Int32, error) {
	return parseSigned[Int32](in, 32, "int32")
}

func (Int64) Parse(in input.Cursor) (input.Cursor, Int64, error) {
	return parseSigned[Int64](in, 64, "int64")
}

func (Uint8) Parse(in input.Cursor) (input.Cursor, Uint8, error) {
	return parseUnsigned[Uint8](in, 8, "uint8")
}

func (Uint16) Parse(in input.Cursor) (input.Cursor, Uint16, error) {
	return parseUnsigned[Uint16](in, 16, "uint16")
}

func (Uint32) Parse(in input.Cursor) (input.Cursor, Uint32, error) {
	return parseUnsigned[Uint32](in, 32, "uint32")
}

func (Uint64) Parse(in input.Cursor) (input.Cursor, Uint64, error) {
	return parseUnsigned[Uint64](in, 64, "uint64")
}

var (
	sign = combinator.Alt(combinator.Tag("+"), combinator.Tag("-"))

	signedLiteral = combinator.Recognize(combinator.Preceded(combinator.Opt(sign), combinator.Digit1))
)

func parseSigned[T constraints.Signed](in input.Cursor, bitSize int, name string) (input.Cursor, T, error) {
	rest, lit, err := signedLiteral(in)
	if err != nil {
		return in, 0, err
	}
	n, err := strconv.ParseInt(lit, 10, bitSize)
	if err != nil {
		return in, 0, numError(in, name, err)
	}
	return rest, T(n), nil
}

func parseUnsigned[T constraints.Unsigned](in input.Cursor, bitSize int, name string) (input.Cursor, T, error) {
	if in.HasPrefix("-") {
		return in, 0, combinator.NewError(in, combinator.KindSign, "unsigned integer")
	}
	rest, lit, err := combinator.Digit1(in)
	if err != nil {
		return in, 0, err
	}
	n, err := strconv.ParseUint(lit, 10, bitSize)
	if err != nil {
		return in, 0, numError(in, name, err)
	}
	return rest, T(n), nil
}

// numError converts a strconv error for a literal starting at in. Only range
// errors are expected here since the literal was already recognised.
func numError(in input.Cursor, name string, err error) error {
	kind := combinator.KindVerify
	if errors.Is(err, strconv.ErrRange) {
		kind = combinator.KindRange
	}
	return &combinator.Error{Kind: kind, Input: in, Expected: name, Err: err}
}
