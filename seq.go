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

// Seq is an ordered sequence of elements separated by line endings.
type Seq[T ParseFrom[T]] []T

func (Seq[T]) Parse(in input.Cursor) (input.Cursor, Seq[T], error) {
	rest, v, err := SeqOf(Of[T]())(in)
	return rest, v, err
}

// SeqOf parses elements with elem, each optionally followed by one line
// ending. The sequence ends at the first element that does not match or at
// the first element not followed by a line ending; zero elements is a valid
// empty sequence. A line ending after the last element is consumed.
//
// Any recoverable element error ends the sequence, an out of range value
// included. Incomplete outcomes and failures from an element are returned as
// they are.
func SeqOf[T any](elem combinator.Parser[T]) combinator.Parser[[]T] {
	return func(in input.Cursor) (input.Cursor, []T, error) {
		out := make([]T, 0)
		cur := in
		for {
			rest, v, err := elem(cur)
			switch {
			case err == nil:
			case combinator.Backtrackable(err):
				return cur, out, nil
			default:
				return in, nil, err
			}
			out = append(out, v)

			rest, _, err = combinator.LineEnding(rest)
			switch {
			case err == nil:
				cur = rest
			case combinator.Backtrackable(err):
				return rest, out, nil
			default:
				return in, nil, err
			}
		}
	}
}

// Set is an unordered set of elements separated by line endings. It accepts
// the same text as Seq; repeated elements are merged.
type Set[T interface {
	comparable
	ParseFrom[T]
}] map[T]struct{}

func (Set[T]) Parse(in input.Cursor) (input.Cursor, Set[T], error) {
	return SetOf(Of[T]())(in)
}

// Contains reports whether v is in the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// SetOf is the set counterpart of SeqOf.
func SetOf[T comparable](elem combinator.Parser[T]) combinator.Parser[map[T]struct{}] {
	return combinator.Map(SeqOf(elem), func(list []T) map[T]struct{} {
		set := make(map[T]struct{}, len(list))
		for _, v := range list {
			set[v] = struct{}{}
		}
		return set
	})
}

var arraySeparator = combinator.Delimited(combinator.Space0, combinator.Tag(","), combinator.Space0)

// ArrayOf parses exactly n elements separated by commas, with optional spaces
// and tabs around each comma. A missing element or separator is an error of
// kind KindCount; n == 0 consumes nothing.
func ArrayOf[T any](n int, elem combinator.Parser[T]) combinator.Parser[[]T] {
	return combinator.SeparatedCount(arraySeparator, elem, n)
}
