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
	"iter"

	"github.com/tidwall/btree"
)

// Option is an `option key = value;` statement, or one element of a
// bracketed `[key = value, ...]` list.
//
// Key is the option name as written, without whitespace. Extension names keep
// their parentheses, for example "(foo.bar).baz".
type Option struct {
	Key   string
	Value Value
}

func (*Option) astNode() {}

// Value is the value of an option.
//
// It is one of [Bool], [Int], [Float], [Ident], [String], or *[Map].
type Value interface {
	isValue()
}

type (
	// Bool is a true or false literal.
	Bool bool
	// Int is a signed integer literal.
	Int int64
	// Float is a floating-point literal.
	Float float64
	// Ident is a bare word, typically naming an enum value or a constant
	// such as inf.
	Ident string
	// String is a string literal, with escapes already decoded.
	String string
)

func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (Ident) isValue()  {}
func (String) isValue() {}
func (*Map) isValue()   {}

// MapEntry is one key/value pair in a [Map].
type MapEntry struct {
	Key   string
	Value Value
}

// Map is an aggregate `{ key: value ... }` literal.
//
// Entries are kept in source order and keys are unique. A Map is immutable
// once built.
type Map struct {
	entries []MapEntry
	index   *btree.Map[string, int]
}

// NewMap builds a map from the given entries, in order. If a key repeats, its
// later value replaces the earlier one, which keeps the earlier position.
func NewMap(entries ...MapEntry) *Map {
	m := &Map{index: new(btree.Map[string, int])}
	for _, e := range entries {
		if i, ok := m.index.Get(e.Key); ok {
			m.entries[i].Value = e.Value
			continue
		}
		m.index.Set(e.Key, len(m.entries))
		m.entries = append(m.entries, e)
	}
	return m
}

// Len returns the number of entries in m.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Get looks up a key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}
	i, ok := m.index.Get(key)
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// All iterates over m's entries in source order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns m's keys in sorted order.
func (m *Map) Keys() []string {
	if m == nil || m.index == nil {
		return nil
	}
	return m.index.Keys()
}

// Entries returns a copy of m's entries in source order.
func (m *Map) Entries() []MapEntry {
	if m == nil {
		return nil
	}
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Equal returns whether m and other hold the same entries in the same order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i := range m.Len() {
		a, b := m.entries[i], other.entries[i]
		if a.Key != b.Key || !ValuesEqual(a.Value, b.Value) {
			return false
		}
	}
	return true
}

// ValuesEqual compares two option values structurally.
func ValuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case *Map:
		b, ok := b.(*Map)
		return ok && a.Equal(b)
	case nil:
		return b == nil
	default:
		return a == b
	}
}
