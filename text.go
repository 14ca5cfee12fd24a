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
	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
)

// Char parses a single UTF-8 encoded code point, whatever it is.
type Char rune

func (Char) Parse(in input.Cursor) (input.Cursor, Char, error) {
	rest, r, err := combinator.AnyChar(in)
	if err != nil {
		return in, 0, err
	}
	return rest, Char(r), nil
}

func (c Char) String() string { return string(rune(c)) }

// Byte reads a single raw byte. It is not a number: "7" yields the byte '7'.
type Byte byte

func (Byte) Parse(in input.Cursor) (input.Cursor, Byte, error) {
	b, ok := in.PeekByte()
	switch {
	case ok:
		return in.Advance(1), Byte(b), nil
	case in.IsStreaming():
		return in, 0, &combinator.Incomplete{Input: in, Needed: 1}
	default:
		return in, 0, combinator.NewError(in, combinator.KindEOF, "byte")
	}
}
