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

// Package astx renders syntax trees as YAML, for golden test outputs.
package astx

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/protoast/ast"
)

// ToYAML converts a syntax tree into a YAML document in a deterministic
// manner.
//
// Each entry becomes a mapping whose first key names the entry's kind.
// Option values are plain scalars, except identifiers, which are written as
// {ident: NAME}, and message literals, which are written as {map: {...}} with
// their keys in source order.
func ToYAML(root ast.Root) string {
	doc := seq()
	for _, e := range root {
		doc.Content = append(doc.Content, entry(e))
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("astx: %v", err))
	}
	return string(out)
}

func entry(n ast.Node) *yaml.Node {
	switch n := n.(type) {
	case *ast.Comment:
		return pairs("comment", str(n.Raw))
	case *ast.Syntax:
		return pairs("syntax", str(n.Value))
	case *ast.Edition:
		return pairs("edition", str(n.Value))
	case *ast.Package:
		return pairs("package", str(n.Name))
	case *ast.Import:
		m := pairs("import", str(n.Path))
		if n.Modifier != ast.ImportPlain {
			push(m, "modifier", str(n.Modifier.String()))
		}
		return m
	case *ast.Option:
		return pairs("option", str(n.Key), "value", value(n.Value))
	case *ast.Message:
		return container("message", n.Name, n.Entries)
	case *ast.Field:
		m := pairs("field", str(n.Name))
		if n.Modifier != ast.NoModifier {
			push(m, "modifier", str(n.Modifier.String()))
		}
		push(m, "type", str(n.Type), "number", integer(n.Number))
		return withOptions(m, n.Options)
	case *ast.OneOf:
		return container("oneof", n.Name, n.Entries)
	case *ast.ReservedIndices:
		return pairs("reserved", ranges(n.Ranges))
	case *ast.ReservedIdents:
		names := seq()
		for _, name := range n.Names {
			names.Content = append(names.Content, str(name))
		}
		names.Style = yaml.FlowStyle
		return pairs("reserved_names", names)
	case *ast.Extensions:
		return withOptions(pairs("extensions", ranges(n.Ranges)), n.Options)
	case *ast.Extend:
		return container("extend", n.Type, n.Entries)
	case *ast.Enum:
		return container("enum", n.Name, n.Entries)
	case *ast.EnumValue:
		return withOptions(pairs("value", str(n.Name), "number", integer(n.Number)), n.Options)
	case *ast.Service:
		return container("service", n.Name, n.Entries)
	case *ast.RPC:
		m := pairs("rpc", str(n.Name), "request", str(n.Request), "response", str(n.Response))
		if n.Stream != ast.Unary {
			push(m, "stream", str(n.Stream.String()))
		}
		return withEntries(m, n.Entries)
	}
	panic(fmt.Sprintf("astx: unexpected node %T", n))
}

func container[E ast.Node](kind, name string, entries []E) *yaml.Node {
	return withEntries(pairs(kind, str(name)), entries)
}

func withEntries[E ast.Node](m *yaml.Node, entries []E) *yaml.Node {
	if len(entries) == 0 {
		return m
	}
	list := seq()
	for _, e := range entries {
		list.Content = append(list.Content, entry(e))
	}
	return push(m, "entries", list)
}

func withOptions(m *yaml.Node, opts []*ast.Option) *yaml.Node {
	if len(opts) == 0 {
		return m
	}
	list := seq()
	for _, opt := range opts {
		list.Content = append(list.Content, entry(opt))
	}
	return push(m, "options", list)
}

func value(v ast.Value) *yaml.Node {
	switch v := v.(type) {
	case ast.Bool:
		return scalar("!!bool", strconv.FormatBool(bool(v)))
	case ast.Int:
		return integer(int64(v))
	case ast.Float:
		s := strconv.FormatFloat(float64(v), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return scalar("!!float", s)
	case ast.Ident:
		m := pairs("ident", str(string(v)))
		m.Style = yaml.FlowStyle
		return m
	case ast.String:
		return str(string(v))
	case *ast.Map:
		fields := mapping()
		for k, val := range v.All() {
			push(fields, k, value(val))
		}
		return pairs("map", fields)
	}
	panic(fmt.Sprintf("astx: unexpected value %T", v))
}

// ranges renders bounded ranges as [start, end) pairs and open-ended ones as
// [start, max].
func ranges(rs []ast.Range) *yaml.Node {
	list := seq()
	for _, r := range rs {
		pair := seq()
		pair.Style = yaml.FlowStyle
		if r.Open {
			pair.Content = append(pair.Content, integer(r.Start), str("max"))
		} else {
			pair.Content = append(pair.Content, integer(r.Start), integer(r.End))
		}
		list.Content = append(list.Content, pair)
	}
	return list
}

func seq() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func str(s string) *yaml.Node {
	return scalar("!!str", s)
}

func integer(n int64) *yaml.Node {
	return scalar("!!int", strconv.FormatInt(n, 10))
}

// pairs builds a mapping from alternating keys and values.
func pairs(key string, value *yaml.Node, more ...any) *yaml.Node {
	return push(mapping(), append([]any{key, value}, more...)...)
}

func push(m *yaml.Node, kv ...any) *yaml.Node {
	for i := 0; i < len(kv); i += 2 {
		m.Content = append(m.Content, str(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return m
}
