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
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
)

// BigInt is a signed decimal integer of arbitrary width. The zero value holds
// a nil *big.Int.
type BigInt struct {
	*big.Int
}

func (BigInt) Parse(in input.Cursor) (input.Cursor, BigInt, error) {
	rest, lit, err := signedLiteral(in)
	if err != nil {
		return in, BigInt{}, err
	}
	n, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return in, BigInt{}, combinator.NewError(in, combinator.KindDigit, "integer")
	}
	return rest, BigInt{n}, nil
}

// Decimal is an arbitrary precision decimal number. It accepts the decimal
// part of the floating point grammar; nan and infinities are rejected.
type Decimal struct {
	*apd.Decimal
}

func (Decimal) Parse(in input.Cursor) (input.Cursor, Decimal, error) {
	rest, lit, err := decimalLiteral(in)
	if combinator.Backtrackable(err) {
		return in, Decimal{}, combinator.NewError(in, combinator.KindFloat, "decimal number")
	}
	if err != nil {
		return in, Decimal{}, err
	}
	d, _, err := apd.NewFromString(lit)
	if err != nil {
		// The literal is well-formed, so only the exponent can be out of range.
		return in, Decimal{}, &combinator.Error{Kind: combinator.KindRange, Input: in, Expected: "decimal", Err: err}
	}
	return rest, Decimal{d}, nil
}
