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

// Package walk provides helper functions for traversing all nodes in a
// syntax tree.
package walk

import (
	"github.com/bufbuild/protoast/ast"
)

// Nodes walks all nodes in the given tree, in source order, depth-first. If
// the function returns an error, the walk is aborted and that error is
// returned.
func Nodes(root ast.Root, fn func(ast.Node) error) error {
	return NodesEnterAndExit(root, fn, nil)
}

// NodesEnterAndExit walks all nodes in the given tree, calling enter when a
// node is first reached and exit after all of its children have been
// visited. Options attached to fields, enum values, and extension ranges are
// visited as their children. Either function may be nil.
func NodesEnterAndExit(root ast.Root, enter, exit func(ast.Node) error) error {
	w := &walker{enter: enter, exit: exit}
	return eachNode(w, root)
}

type walker struct {
	enter, exit func(ast.Node) error
}

func eachNode[E ast.Node](w *walker, nodes []E) error {
	for _, n := range nodes {
		if err := w.walk(n); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walk(n ast.Node) error {
	if w.enter != nil {
		if err := w.enter(n); err != nil {
			return err
		}
	}
	var err error
	switch n := n.(type) {
	case *ast.Message:
		err = eachNode(w, n.Entries)
	case *ast.OneOf:
		err = eachNode(w, n.Entries)
	case *ast.Enum:
		err = eachNode(w, n.Entries)
	case *ast.Extend:
		err = eachNode(w, n.Entries)
	case *ast.Service:
		err = eachNode(w, n.Entries)
	case *ast.RPC:
		err = eachNode(w, n.Entries)
	case *ast.Field:
		err = eachNode(w, n.Options)
	case *ast.EnumValue:
		err = eachNode(w, n.Options)
	case *ast.Extensions:
		err = eachNode(w, n.Options)
	}
	if err != nil {
		return err
	}
	if w.exit != nil {
		return w.exit(n)
	}
	return nil
}

// Definitions walks the named definitions in the tree: messages, fields,
// oneofs, enums, enum values, services, and RPCs. Each is passed along with
// its fully-qualified name, which is prefixed by the file's package.
//
// As in the protobuf language, enum values are scoped to the enum's parent
// rather than the enum itself, and fields declared in an extend block are
// scoped to the block's parent.
func Definitions(root ast.Root, fn func(fullName string, n ast.Node) error) error {
	var prefix string
	for _, e := range root {
		if pkg, ok := e.(*ast.Package); ok {
			prefix = pkg.Name + "."
			break
		}
	}
	d := &defWalker{fn: fn}
	for _, e := range root {
		if err := d.walk(prefix, e); err != nil {
			return err
		}
	}
	return nil
}

type defWalker struct {
	fn func(string, ast.Node) error
}

func (d *defWalker) walk(prefix string, n ast.Node) error {
	switch n := n.(type) {
	case *ast.Message:
		name := prefix + n.Name
		if err := d.fn(name, n); err != nil {
			return err
		}
		for _, e := range n.Entries {
			if err := d.walk(name+".", e); err != nil {
				return err
			}
		}
	case *ast.OneOf:
		// Oneof fields belong to the enclosing message.
		if err := d.fn(prefix+n.Name, n); err != nil {
			return err
		}
		for _, e := range n.Entries {
			if err := d.walk(prefix, e); err != nil {
				return err
			}
		}
	case *ast.Extend:
		for _, e := range n.Entries {
			if err := d.walk(prefix, e); err != nil {
				return err
			}
		}
	case *ast.Enum:
		if err := d.fn(prefix+n.Name, n); err != nil {
			return err
		}
		for _, e := range n.Entries {
			if err := d.walk(prefix, e); err != nil {
				return err
			}
		}
	case *ast.Service:
		name := prefix + n.Name
		if err := d.fn(name, n); err != nil {
			return err
		}
		for _, e := range n.Entries {
			if err := d.walk(name+".", e); err != nil {
				return err
			}
		}
	case *ast.Field:
		return d.fn(prefix+n.Name, n)
	case *ast.EnumValue:
		return d.fn(prefix+n.Name, n)
	case *ast.RPC:
		return d.fn(prefix+n.Name, n)
	}
	return nil
}
