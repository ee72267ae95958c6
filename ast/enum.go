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

// Enum is an `enum Name { ... }` definition.
type Enum struct {
	Name    string
	Entries []EnumEntry
}

// EnumEntry is one of *[Comment], *[Option], *[EnumValue],
// *[ReservedIndices], or *[ReservedIdents].
type EnumEntry interface {
	Node
	isEnumEntry()
}

// EnumValue is a `NAME = number [options];` declaration inside an enum.
type EnumValue struct {
	Name    string
	Number  int64
	Options []*Option
}

// Extend is an `extend Type { ... }` block.
type Extend struct {
	Type    string
	Entries []ExtendEntry
}

// ExtendEntry is one of *[Comment] or *[Field].
type ExtendEntry interface {
	Node
	isExtendEntry()
}

func (*Enum) astNode()      {}
func (*EnumValue) astNode() {}
func (*Extend) astNode()    {}

func (*Comment) isEnumEntry()         {}
func (*Option) isEnumEntry()          {}
func (*EnumValue) isEnumEntry()       {}
func (*ReservedIndices) isEnumEntry() {}
func (*ReservedIdents) isEnumEntry()  {}

func (*Comment) isExtendEntry() {}
func (*Field) isExtendEntry()   {}
