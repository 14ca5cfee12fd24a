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

// Bool parses the literals true and false. Matching is case-sensitive.
type Bool bool

var boolLiteral = combinator.Alt(
	combinator.Value(Bool(true), combinator.Tag("true")),
	combinator.Value(Bool(false), combinator.Tag("false")),
)

func (Bool) Parse(in input.Cursor) (input.Cursor, Bool, error) {
	rest, v, err := boolLiteral(in)
	if combinator.Backtrackable(err) {
		return in, false, combinator.NewError(in, combinator.KindBool, "boolean literal")
	}
	return rest, v, err
}
