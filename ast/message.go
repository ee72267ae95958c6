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

// Message is a `message Name { ... }` definition.
type Message struct {
	Name    string
	Entries []MessageEntry
}

// MessageEntry is an entry that may appear in a message body.
//
// It is one of *[Comment], *[Option], *[Field], *[OneOf], *[Message],
// *[Extend], *[Enum], *[ReservedIndices], *[ReservedIdents], or
// *[Extensions].
type MessageEntry interface {
	Node
	isMessageEntry()
}

// FieldModifier is a field's cardinality keyword. The zero value means the
// field was declared without one.
type FieldModifier int

const (
	NoModifier FieldModifier = iota
	Optional
	Required
	Repeated
)

// String implements [fmt.Stringer].
func (m FieldModifier) String() string {
	switch m {
	case Optional:
		return "optional"
	case Required:
		return "required"
	case Repeated:
		return "repeated"
	default:
		return ""
	}
}

// Field is a field declaration.
//
// Type is the type as written: a possibly dotted (and possibly fully
// qualified) name, or a map type rendered as "map<K, V>".
type Field struct {
	Modifier FieldModifier
	Type     string
	Name     string
	Number   int64
	Options  []*Option
}

// OneOf is a `oneof name { ... }` block.
type OneOf struct {
	Name    string
	Entries []OneOfEntry
}

// OneOfEntry is one of *[Comment], *[Option], or *[Field].
type OneOfEntry interface {
	Node
	isOneOfEntry()
}

// ReservedIndices is a `reserved 1, 5 to 10;` statement.
type ReservedIndices struct {
	Ranges []Range
}

// ReservedIdents is a `reserved "foo", "bar";` statement.
type ReservedIdents struct {
	Names []string
}

// Extensions is an `extensions 100 to max;` statement.
type Extensions struct {
	Ranges  []Range
	Options []*Option
}

func (*Message) astNode()         {}
func (*Field) astNode()           {}
func (*OneOf) astNode()           {}
func (*ReservedIndices) astNode() {}
func (*ReservedIdents) astNode()  {}
func (*Extensions) astNode()      {}

func (*Comment) isMessageEntry()         {}
func (*Option) isMessageEntry()          {}
func (*Field) isMessageEntry()           {}
func (*OneOf) isMessageEntry()           {}
func (*Message) isMessageEntry()         {}
func (*Extend) isMessageEntry()          {}
func (*Enum) isMessageEntry()            {}
func (*ReservedIndices) isMessageEntry() {}
func (*ReservedIdents) isMessageEntry()  {}
func (*Extensions) isMessageEntry()      {}

func (*Comment) isOneOfEntry() {}
func (*Option) isOneOfEntry()  {}
func (*Field) isOneOfEntry()   {}
