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

// ParseFrom is implemented by types that know how to parse themselves.
//
// Parse must consume the shortest prefix of in that forms a value of T and
// leave everything after it in the returned cursor. The receiver is not used;
// implementations are declared on value receivers so that the zero value of
// T can be used to call them.
type ParseFrom[T any] interface {
	Parse(in input.Cursor) (input.Cursor, T, error)
}

// Parse parses a T from the start of in.
func Parse[T ParseFrom[T]](in input.Cursor) (input.Cursor, T, error) {
	var zero T
	return zero.Parse(in)
}

// Of returns the capability of T as a combinator.Parser.
func Of[T ParseFrom[T]]() combinator.Parser[T] {
	return Parse[T]
}

// ParseComplete parses s as a T and requires the whole string to be consumed.
// Leftover input is reported as a KindEOF error at the first unconsumed byte.
func ParseComplete[T ParseFrom[T]](s string) (T, error) {
	return ParseAll[T](input.New(s))
}

// ParseAll is like ParseComplete for an existing cursor. The cursor is
// switched to complete mode first, so an incomplete outcome can only come
// from a foreign parser and is reported as a KindEOF error rather than
// returned as is.
func ParseAll[T ParseFrom[T]](in input.Cursor) (T, error) {
	_, v, err := combinator.AllConsuming(combinator.Complete(Of[T]()))(in.Complete())
	return v, err
}

// ParseString parses a T from the start of s and returns the unconsumed rest.
func ParseString[T ParseFrom[T]](s string) (T, string, error) {
	rest, v, err := Parse[T](input.New(s))
	if err != nil {
		var zero T
		return zero, s, err
	}
	return v, rest.Remaining(), nil
}
