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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Parallel()

	m := NewMap(
		MapEntry{Key: "zeta", Value: Int(1)},
		MapEntry{Key: "alpha", Value: String("a")},
		MapEntry{Key: "zeta", Value: Int(2)},
		MapEntry{Key: "mid", Value: NewMap(MapEntry{Key: "x", Value: Bool(true)})},
	)
	require.Equal(t, 3, m.Len())

	v, ok := m.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, Int(2), v)
	_, ok = m.Get("missing")
	assert.False(t, ok)

	var order []string
	for k := range m.All() {
		order = append(order, k)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, order)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, m.Keys())

	entries := m.Entries()
	entries[0].Value = Int(100)
	v, _ = m.Get("zeta")
	assert.Equal(t, Int(2), v, "Entries must return a copy")
}

func TestMapEqual(t *testing.T) {
	t.Parallel()

	a := NewMap(MapEntry{Key: "a", Value: Int(1)}, MapEntry{Key: "b", Value: NewMap()})
	b := NewMap(MapEntry{Key: "a", Value: Int(1)}, MapEntry{Key: "b", Value: NewMap()})
	reordered := NewMap(MapEntry{Key: "b", Value: NewMap()}, MapEntry{Key: "a", Value: Int(1)})
	retyped := NewMap(MapEntry{Key: "a", Value: Float(1)}, MapEntry{Key: "b", Value: NewMap()})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reordered))
	assert.False(t, a.Equal(retyped))
	assert.True(t, (*Map)(nil).Equal(NewMap()))

	assert.True(t, ValuesEqual(Ident("x"), Ident("x")))
	assert.False(t, ValuesEqual(Ident("x"), String("x")))
	assert.False(t, ValuesEqual(a, Int(1)))
	assert.True(t, ValuesEqual(nil, nil))
}

func TestRange(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		r       Range
		str     string
		last    int64
		in, out int64
	}{
		{r: Single(7), str: "7", last: 7, in: 7, out: 8},
		{r: Bounded(2, 5), str: "2 to 4", last: 4, in: 4, out: 5},
		{r: OpenEnded(6), str: "6 to max", last: 1<<63 - 1, in: 1 << 40, out: 5},
	} {
		assert.Equal(t, tc.str, tc.r.String())
		assert.Equal(t, tc.last, tc.r.Last())
		assert.True(t, tc.r.Contains(tc.in), "%v contains %d", tc.r, tc.in)
		assert.False(t, tc.r.Contains(tc.out), "%v excludes %d", tc.r, tc.out)
	}
}

func TestStreamModeOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Unary, StreamModeOf(false, false))
	assert.Equal(t, ClientStreaming, StreamModeOf(true, false))
	assert.Equal(t, ServerStreaming, StreamModeOf(false, true))
	assert.Equal(t, BidiStreaming, StreamModeOf(true, true))
}

func TestNewComment(t *testing.T) {
	t.Parallel()

	c := NewComment("//  hello world  ")
	assert.Equal(t, SingleLine, c.Kind)
	assert.Equal(t, "hello world", c.Text)

	c = NewComment("/* block\n   text */")
	assert.Equal(t, MultiLine, c.Kind)
	assert.Equal(t, "block\n   text", c.Text)
	assert.Equal(t, "/* block\n   text */", c.Raw)
}

func TestRootHelpers(t *testing.T) {
	t.Parallel()

	root := Root{
		&Comment{Kind: SingleLine, Raw: "// x", Text: "x"},
		&Edition{Value: "2023"},
		&Import{Path: "a.proto"},
		&Import{Modifier: ImportWeak, Path: "b.proto"},
	}
	assert.Equal(t, []string{"a.proto", "b.proto"}, root.Imports())
	syntax, ok := root.Syntax()
	assert.True(t, ok)
	assert.Equal(t, "editions", syntax)

	_, ok = Root{}.Syntax()
	assert.False(t, ok)
}
