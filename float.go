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

// Floating point types. Both accept an optional sign, a decimal mantissa with
// an optional fraction, an optional exponent, and the special values nan,
// inf and infinity in any letter case. Only the infinities take a sign.
type (
	Float32 float32
	Float64 float64
)

func (Float32) Parse(in input.Cursor) (input.Cursor, Float32, error) {
	return parseFloat[Float32](in, 32, "float32")
}

func (Float64) Parse(in input.Cursor) (input.Cursor, Float64, error) {
	return parseFloat[Float64](in, 64, "float64")
}

var (
	// digits ["." digits*] | "." digits
	mantissa = combinator.Alt(
		combinator.Recognize(combinator.Preceded(combinator.Digit1,
			combinator.Opt(combinator.Preceded(combinator.Tag("."), combinator.Digit0)))),
		combinator.Recognize(combinator.Preceded(combinator.Tag("."), combinator.Digit1)),
	)

	// An exponent marker must be followed by digits.
	exponent = combinator.Recognize(combinator.Preceded(
		combinator.Alt(combinator.Tag("e"), combinator.Tag("E")),
		combinator.Preceded(combinator.Opt(sign), combinator.Cut(combinator.Digit1)),
	))

	decimalLiteral = combinator.Recognize(combinator.Preceded(
		combinator.Opt(sign),
		combinator.Preceded(mantissa, combinator.Opt(exponent)),
	))

	floatLiteral = combinator.Alt(
		decimalLiteral,
		combinator.Recognize(combinator.Preceded(
			combinator.Opt(sign),
			combinator.Alt(combinator.TagNoCase("infinity"), combinator.TagNoCase("inf")),
		)),
		combinator.TagNoCase("nan"),
	)
)

func parseFloat[T constraints.Float](in input.Cursor, bitSize int, name string) (input.Cursor, T, error) {
	rest, lit, err := floatLiteral(in)
	if combinator.Backtrackable(err) {
		return in, 0, combinator.NewError(in, combinator.KindFloat, "floating point number")
	}
	if err != nil {
		return in, 0, err
	}
	f, err := strconv.ParseFloat(lit, bitSize)
	if err != nil {
		kind := combinator.KindFloat
		if errors.Is(err, strconv.ErrRange) {
			kind = combinator.KindRange
		}
		return in, 0, &combinator.Error{Kind: kind, Input: in, Expected: name, Err: err}
	}
	return rest, T(f), nil
}
