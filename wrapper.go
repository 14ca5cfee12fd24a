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

// Ptr holds a parsed T behind a pointer. It accepts exactly the text T
// accepts, and a Ptr produced by Parse is never nil.
type Ptr[T ParseFrom[T]] struct {
	Value *T
}

func (Ptr[T]) Parse(in input.Cursor) (input.Cursor, Ptr[T], error) {
	return combinator.Map(Of[T](), func(v T) Ptr[T] { return Ptr[T]{Value: &v} })(in)
}
