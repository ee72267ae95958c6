// Copyright 2020-2025 Buf Technologies, Inc.
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

package ast

import (
	"fmt"
	"math"
)

// Range is a range of field or enum numbers, as written in a reserved or
// extensions statement.
//
// A bounded range is the half-open interval [Start, End), so the source
// range `5 to 10` is stored with End 11. An open-ended range (`5 to max`)
// has no upper bound; End is unused.
//
// An inclusive end of math.MaxInt64 has no exclusive bound that fits, so
// `5 to 9223372036854775807` is also stored as open-ended and cannot be told
// apart from `5 to max`.
type Range struct {
	Start, End int64
	Open       bool
}

// Bounded returns the range [start, end).
func Bounded(start, end int64) Range {
	return Range{Start: start, End: end}
}

// Single returns the range containing only n.
func Single(n int64) Range {
	return Range{Start: n, End: n + 1}
}

// OpenEnded returns the range [start, ∞).
func OpenEnded(start int64) Range {
	return Range{Start: start, Open: true}
}

// Contains returns whether n falls in r.
func (r Range) Contains(n int64) bool {
	return n >= r.Start && (r.Open || n < r.End)
}

// Last returns the largest number in r.
func (r Range) Last() int64 {
	if r.Open {
		return math.MaxInt64
	}
	return r.End - 1
}

// String renders r in source syntax.
func (r Range) String() string {
	switch {
	case r.Open:
		return fmt.Sprintf("%d to max", r.Start)
	case r.End == r.Start+1:
		return fmt.Sprint(r.Start)
	default:
		return fmt.Sprintf("%d to %d", r.Start, r.End-1)
	}
}
