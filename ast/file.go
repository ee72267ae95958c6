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

// Node is implemented by every node type in this package. It exists so that
// generic traversal code (see package walk) can accept any node; the entry
// interfaces below are what constrain which nodes may appear where.
type Node interface {
	astNode()
}

// Root is a parsed file: its top-level entries in source order.
type Root []RootEntry

// RootEntry is an entry that may appear at the top level of a file.
//
// It is one of *[Comment], *[Syntax], *[Edition], *[Package], *[Import],
// *[Option], *[Service], *[Message], *[Extend], or *[Enum].
type RootEntry interface {
	Node
	isRootEntry()
}

// Syntax is a `syntax = "...";` declaration.
type Syntax struct {
	Value string
}

// Edition is an `edition = "...";` declaration.
type Edition struct {
	Value string
}

// Package is a `package a.b.c;` declaration.
type Package struct {
	Name string
}

// ImportModifier is the optional modifier on an import.
type ImportModifier int

const (
	ImportPlain ImportModifier = iota
	ImportPublic
	ImportWeak
)

// String implements [fmt.Stringer].
func (m ImportModifier) String() string {
	switch m {
	case ImportPublic:
		return "public"
	case ImportWeak:
		return "weak"
	default:
		return ""
	}
}

// Import is an `import "path";` declaration.
type Import struct {
	Modifier ImportModifier
	Path     string
}

// Imports returns the import paths declared in r, in order.
func (r Root) Imports() []string {
	var paths []string
	for _, e := range r {
		if imp, ok := e.(*Import); ok {
			paths = append(paths, imp.Path)
		}
	}
	return paths
}

// Syntax returns the value of the file's syntax or edition declaration, and
// whether it had one. Editions are returned as "editions".
func (r Root) Syntax() (string, bool) {
	for _, e := range r {
		switch e := e.(type) {
		case *Syntax:
			return e.Value, true
		case *Edition:
			return "editions", true
		}
	}
	return "", false
}

func (*Syntax) astNode()  {}
func (*Edition) astNode() {}
func (*Package) astNode() {}
func (*Import) astNode()  {}

func (*Comment) isRootEntry() {}
func (*Syntax) isRootEntry()  {}
func (*Edition) isRootEntry() {}
func (*Package) isRootEntry() {}
func (*Import) isRootEntry()  {}
func (*Option) isRootEntry()  {}
func (*Service) isRootEntry() {}
func (*Message) isRootEntry() {}
func (*Extend) isRootEntry()  {}
func (*Enum) isRootEntry()    {}
