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
	"slices"
	"strings"
)

// Clone returns a deep copy of r in which every string has its own backing
// memory. The result keeps nothing of the source buffer alive, so the buffer
// can be dropped or reused while the tree lives on.
func (r Root) Clone() Root {
	if r == nil {
		return nil
	}
	out := make(Root, len(r))
	for i, e := range r {
		out[i] = cloneRootEntry(e)
	}
	return out
}

func cloneRootEntry(e RootEntry) RootEntry {
	switch e := e.(type) {
	case *Comment:
		return e.Clone()
	case *Syntax:
		return &Syntax{Value: strings.Clone(e.Value)}
	case *Edition:
		return &Edition{Value: strings.Clone(e.Value)}
	case *Package:
		return &Package{Name: strings.Clone(e.Name)}
	case *Import:
		return &Import{Modifier: e.Modifier, Path: strings.Clone(e.Path)}
	case *Option:
		return e.Clone()
	case *Service:
		return e.Clone()
	case *Message:
		return e.Clone()
	case *Extend:
		return e.Clone()
	case *Enum:
		return e.Clone()
	}
	panic(fmt.Sprintf("ast: unexpected root entry %T", e))
}

// Clone returns an independent copy of c.
func (c *Comment) Clone() *Comment {
	return &Comment{Kind: c.Kind, Raw: strings.Clone(c.Raw), Text: strings.Clone(c.Text)}
}

// Clone returns an independent copy of o.
func (o *Option) Clone() *Option {
	return &Option{Key: strings.Clone(o.Key), Value: CloneValue(o.Value)}
}

func cloneOptions(opts []*Option) []*Option {
	if opts == nil {
		return nil
	}
	out := make([]*Option, len(opts))
	for i, o := range opts {
		out[i] = o.Clone()
	}
	return out
}

// CloneValue returns an independent copy of v.
func CloneValue(v Value) Value {
	switch v := v.(type) {
	case Ident:
		return Ident(strings.Clone(string(v)))
	case String:
		return String(strings.Clone(string(v)))
	case *Map:
		entries := make([]MapEntry, 0, v.Len())
		for k, val := range v.All() {
			entries = append(entries, MapEntry{Key: strings.Clone(k), Value: CloneValue(val)})
		}
		return NewMap(entries...)
	default:
		return v
	}
}

// Clone returns an independent copy of m, including all nested definitions.
func (m *Message) Clone() *Message {
	out := &Message{Name: strings.Clone(m.Name)}
	if m.Entries != nil {
		out.Entries = make([]MessageEntry, len(m.Entries))
	}
	for i, e := range m.Entries {
		switch e := e.(type) {
		case *Comment:
			out.Entries[i] = e.Clone()
		case *Option:
			out.Entries[i] = e.Clone()
		case *Field:
			out.Entries[i] = e.Clone()
		case *OneOf:
			out.Entries[i] = e.Clone()
		case *Message:
			out.Entries[i] = e.Clone()
		case *Extend:
			out.Entries[i] = e.Clone()
		case *Enum:
			out.Entries[i] = e.Clone()
		case *ReservedIndices:
			out.Entries[i] = &ReservedIndices{Ranges: slices.Clone(e.Ranges)}
		case *ReservedIdents:
			out.Entries[i] = e.Clone()
		case *Extensions:
			out.Entries[i] = &Extensions{Ranges: slices.Clone(e.Ranges), Options: cloneOptions(e.Options)}
		default:
			panic(fmt.Sprintf("ast: unexpected message entry %T", e))
		}
	}
	return out
}

// Clone returns an independent copy of f.
func (f *Field) Clone() *Field {
	return &Field{
		Modifier: f.Modifier,
		Type:     strings.Clone(f.Type),
		Name:     strings.Clone(f.Name),
		Number:   f.Number,
		Options:  cloneOptions(f.Options),
	}
}

// Clone returns an independent copy of o.
func (o *OneOf) Clone() *OneOf {
	out := &OneOf{Name: strings.Clone(o.Name)}
	if o.Entries != nil {
		out.Entries = make([]OneOfEntry, len(o.Entries))
	}
	for i, e := range o.Entries {
		switch e := e.(type) {
		case *Comment:
			out.Entries[i] = e.Clone()
		case *Option:
			out.Entries[i] = e.Clone()
		case *Field:
			out.Entries[i] = e.Clone()
		default:
			panic(fmt.Sprintf("ast: unexpected oneof entry %T", e))
		}
	}
	return out
}

// Clone returns an independent copy of r.
func (r *ReservedIdents) Clone() *ReservedIdents {
	names := make([]string, len(r.Names))
	for i, n := range r.Names {
		names[i] = strings.Clone(n)
	}
	return &ReservedIdents{Names: names}
}

// Clone returns an independent copy of e.
func (e *Extend) Clone() *Extend {
	out := &Extend{Type: strings.Clone(e.Type)}
	if e.Entries != nil {
		out.Entries = make([]ExtendEntry, len(e.Entries))
	}
	for i, entry := range e.Entries {
		switch entry := entry.(type) {
		case *Comment:
			out.Entries[i] = entry.Clone()
		case *Field:
			out.Entries[i] = entry.Clone()
		default:
			panic(fmt.Sprintf("ast: unexpected extend entry %T", entry))
		}
	}
	return out
}

// Clone returns an independent copy of e.
func (e *Enum) Clone() *Enum {
	out := &Enum{Name: strings.Clone(e.Name)}
	if e.Entries != nil {
		out.Entries = make([]EnumEntry, len(e.Entries))
	}
	for i, entry := range e.Entries {
		switch entry := entry.(type) {
		case *Comment:
			out.Entries[i] = entry.Clone()
		case *Option:
			out.Entries[i] = entry.Clone()
		case *EnumValue:
			out.Entries[i] = &EnumValue{
				Name:    strings.Clone(entry.Name),
				Number:  entry.Number,
				Options: cloneOptions(entry.Options),
			}
		case *ReservedIndices:
			out.Entries[i] = &ReservedIndices{Ranges: slices.Clone(entry.Ranges)}
		case *ReservedIdents:
			out.Entries[i] = entry.Clone()
		default:
			panic(fmt.Sprintf("ast: unexpected enum entry %T", entry))
		}
	}
	return out
}

// Clone returns an independent copy of s.
func (s *Service) Clone() *Service {
	out := &Service{Name: strings.Clone(s.Name)}
	if s.Entries != nil {
		out.Entries = make([]ServiceEntry, len(s.Entries))
	}
	for i, e := range s.Entries {
		switch e := e.(type) {
		case *Comment:
			out.Entries[i] = e.Clone()
		case *Option:
			out.Entries[i] = e.Clone()
		case *RPC:
			out.Entries[i] = e.Clone()
		default:
			panic(fmt.Sprintf("ast: unexpected service entry %T", e))
		}
	}
	return out
}

// Clone returns an independent copy of r.
func (r *RPC) Clone() *RPC {
	out := &RPC{
		Name:     strings.Clone(r.Name),
		Request:  strings.Clone(r.Request),
		Response: strings.Clone(r.Response),
		Stream:   r.Stream,
	}
	if r.Entries != nil {
		out.Entries = make([]RPCEntry, len(r.Entries))
	}
	for i, e := range r.Entries {
		switch e := e.(type) {
		case *Comment:
			out.Entries[i] = e.Clone()
		case *Option:
			out.Entries[i] = e.Clone()
		default:
			panic(fmt.Sprintf("ast: unexpected rpc entry %T", e))
		}
	}
	return out
}
