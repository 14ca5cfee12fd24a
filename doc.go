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

// Package parsefrom provides a uniform parsing capability that any type can
// implement, so that parsing a value from text becomes one composable step
// inside a parser-combinator pipeline.
//
// # Overview
//
// A type T takes part by implementing ParseFrom[T]: a Parse method that reads
// a prefix of an input.Cursor and returns the rest of the input together with
// the value. The method ignores its receiver, so the zero value of T is enough
// to call it:
//
//	var n parsefrom.Uint32
//	rest, n, err := n.Parse(input.New("123 apples"))
//
// Generic code calls the capability through Parse and Of, which need no value
// at all:
//
//	rest, list, err := parsefrom.Parse[parsefrom.Seq[parsefrom.Uint8]](in)
//
// # Built-in implementations
//
// Go does not allow methods on predeclared types, so the built-in
// implementations live on named types that convert to and from them:
//
//   - Int8 … Int64, Uint8 … Uint64: decimal integers, optional sign for the
//     signed types. Overflow is a range error, never a wrap-around.
//   - Float32, Float64: decimal floating point, plus nan, inf and infinity.
//   - BigInt, Decimal: arbitrary precision integers and decimals.
//   - Bool: the literals true and false.
//   - Char: one UTF-8 code point. Byte: one raw byte.
//   - Seq[T], Set[T]: elements separated by line endings.
//   - Map[K, V]: key=value entries separated by line endings.
//
// SeqOf, SetOf, ArrayOf and MapOf build the same containers from arbitrary
// combinator.Parser values, for element types that do not implement the
// capability themselves.
//
// # Outcomes
//
// Parsers report one of three outcomes besides success. See package
// combinator for the error types:
//
//   - *combinator.Error: the input does not start with a value of the type.
//     Composing parsers may try an alternative at the same position.
//   - *combinator.Incomplete: only in streaming mode, the buffer ends inside
//     what may still become a value.
//   - *combinator.Failure: an unrecoverable error raised through
//     combinator.Cut.
package parsefrom
