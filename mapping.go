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
	"fmt"

	"github.com/apstndb/parsefrom/combinator"
	"github.com/apstndb/parsefrom/input"
)

// DuplicatePolicy decides what MapOf does with a key that appears twice.
type DuplicatePolicy int

const (
	// LastWins keeps the value of the last entry with the key.
	LastWins DuplicatePolicy = iota

	// FirstWins keeps the value of the first entry with the key.
	FirstWins

	// RejectDuplicates fails with a KindDuplicate error at the repeated key.
	RejectDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case FirstWins:
		return "first-wins"
	case RejectDuplicates:
		return "reject"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// Map is a set of key=value entries separated by line endings. A repeated
// key overwrites the earlier value.
type Map[K interface {
	comparable
	ParseFrom[K]
}, V ParseFrom[V]] map[K]V

func (Map[K, V]) Parse(in input.Cursor) (input.Cursor, Map[K, V], error) {
	return MapOf(Of[K](), Of[V](), LastWins)(in)
}

var entrySeparator = combinator.Delimited(combinator.Space0, combinator.Tag("="), combinator.Space0)

// MapOf parses entries of the form key "=" value, each optionally followed by
// one line ending. Spaces and tabs are allowed around "=".
//
// The mapping ends at the first key that does not match or is out of range,
// or after an entry that is not followed by a line ending. Once a key has been
// parsed the rest of the entry is required: a missing "=" or a bad value fails
// the whole mapping instead of ending it, so a truncated entry is never
// mistaken for the end of the map.
func MapOf[K comparable, V any](key combinator.Parser[K], value combinator.Parser[V], policy DuplicatePolicy) combinator.Parser[map[K]V] {
	return func(in input.Cursor) (input.Cursor, map[K]V, error) {
		out := make(map[K]V)
		cur := in
		for {
			rest, k, err := key(cur)
			switch {
			case err == nil:
			case combinator.Backtrackable(err):
				return cur, out, nil
			default:
				return in, nil, err
			}

			rest, _, err = entrySeparator(rest)
			if err != nil {
				return in, nil, err
			}

			rest, v, err := value(rest)
			if err != nil {
				return in, nil, err
			}

			if _, dup := out[k]; dup {
				switch policy {
				case FirstWins:
				case RejectDuplicates:
					return in, nil, &combinator.Error{Kind: combinator.KindDuplicate, Input: cur, Err: fmt.Errorf("duplicate key %v", k)}
				default:
					out[k] = v
				}
			} else {
				out[k] = v
			}

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
