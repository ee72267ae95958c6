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

package parser

import (
	"github.com/bufbuild/protoast/ast"
	"github.com/bufbuild/protoast/token"
)

func (p *parser) parseRoot() ast.Root {
	root := ast.Root{}
	for {
		root = appendComments(p, root)
		tok := p.peek(0)
		var entry ast.RootEntry
		switch {
		case tok.Kind == token.EOF:
			if p.lexErr != nil {
				panic(bailout{p.lexErr})
			}
			return root
		case tok.Kind == token.Semi:
			p.next()
			continue
		case tok.Is(token.Syntax):
			p.next()
			entry = &ast.Syntax{Value: p.parseDeclValue("syntax declaration")}
		case tok.Kind == token.Ident && tok.Text == "edition" && p.peek(1).Kind == token.Equals:
			p.next()
			entry = &ast.Edition{Value: p.parseDeclValue("edition declaration")}
		case tok.Is(token.Package):
			p.next()
			entry = &ast.Package{Name: p.dottedName("package declaration")}
			p.expect(token.Semi, "package declaration")
		case tok.Is(token.Import):
			entry = p.parseImport()
		case tok.Is(token.Option):
			entry = p.parseOption()
		case tok.Is(token.Service):
			entry = p.parseService()
		case tok.Is(token.Message):
			entry = p.parseMessage()
		case tok.Is(token.Extend):
			entry = p.parseExtend()
		case tok.Is(token.Enum):
			entry = p.parseEnum()
		default:
			p.fail(tok, "file", `"syntax"`, `"package"`, `"import"`, `"option"`,
				`"message"`, `"enum"`, `"extend"`, `"service"`)
		}
		root = append(root, entry)
	}
}

// parseDeclValue parses the `= "value";` tail of a syntax or edition
// declaration.
func (p *parser) parseDeclValue(context string) string {
	p.expect(token.Equals, context)
	value := p.stringLit(context)
	p.expect(token.Semi, context)
	return value
}

func (p *parser) parseImport() *ast.Import {
	const context = "import"
	p.next()
	imp := new(ast.Import)
	if tok := p.peek(0); tok.Kind == token.Ident {
		switch tok.Text {
		case "public":
			imp.Modifier = ast.ImportPublic
		case "weak":
			imp.Modifier = ast.ImportWeak
		default:
			p.fail(tok, context, "string literal", `"public"`, `"weak"`)
		}
		p.next()
	}
	imp.Path = p.stringLit(context)
	p.expect(token.Semi, context)
	return imp
}

func (p *parser) parseMessage() *ast.Message {
	p.next()
	m := &ast.Message{Name: p.name("message").Text}
	m.Entries = parseBody[[]ast.MessageEntry](p, "message body", p.parseMessageEntry)
	return m
}

func (p *parser) parseMessageEntry(tok token.Token) ast.MessageEntry {
	switch {
	case tok.Is(token.Option):
		return p.parseOption()
	case tok.Is(token.Message) && p.opensBody():
		return p.parseMessage()
	case tok.Is(token.Enum) && p.opensBody():
		return p.parseEnum()
	case tok.Is(token.Extend) && p.opensBody():
		return p.parseExtend()
	case tok.Is(token.Oneof) && p.opensBody():
		return p.parseOneOf()
	case tok.Is(token.Reserved) && !p.fieldAhead():
		return parseReserved[ast.MessageEntry](p)
	case tok.Is(token.Extensions) && !p.fieldAhead():
		return p.parseExtensions()
	case tok.IsName() || tok.Kind == token.Dot:
		return p.parseField()
	}
	p.fail(tok, "message body", "field", `"option"`, `"message"`, `"enum"`,
		`"oneof"`, `"extend"`, `"reserved"`, `"extensions"`, `"}"`)
	return nil
}

func (p *parser) parseOneOf() *ast.OneOf {
	p.next()
	o := &ast.OneOf{Name: p.name("oneof").Text}
	o.Entries = parseBody[[]ast.OneOfEntry](p, "oneof body", func(tok token.Token) ast.OneOfEntry {
		switch {
		case tok.Is(token.Option):
			return p.parseOption()
		case tok.IsName() || tok.Kind == token.Dot:
			return p.parseField()
		}
		p.fail(tok, "oneof body", "field", `"option"`, `"}"`)
		return nil
	})
	return o
}

func (p *parser) parseExtend() *ast.Extend {
	p.next()
	e := &ast.Extend{Type: p.typeName("extend")}
	e.Entries = parseBody[[]ast.ExtendEntry](p, "extend body", func(tok token.Token) ast.ExtendEntry {
		if !tok.IsName() && tok.Kind != token.Dot {
			p.fail(tok, "extend body", "field", `"}"`)
		}
		return p.parseField()
	})
	return e
}

func (p *parser) parseEnum() *ast.Enum {
	p.next()
	e := &ast.Enum{Name: p.name("enum").Text}
	e.Entries = parseBody[[]ast.EnumEntry](p, "enum body", func(tok token.Token) ast.EnumEntry {
		switch {
		case tok.Is(token.Option):
			return p.parseOption()
		case tok.Is(token.Reserved) && p.peek(1).Kind != token.Equals:
			return parseReserved[ast.EnumEntry](p)
		case tok.IsName():
			return p.parseEnumValue()
		}
		p.fail(tok, "enum body", "enum value", `"option"`, `"reserved"`, `"}"`)
		return nil
	})
	return e
}

func (p *parser) parseEnumValue() *ast.EnumValue {
	const context = "enum value"
	v := &ast.EnumValue{Name: p.next().Text}
	p.expect(token.Equals, context)
	v.Number = p.intLit(context)
	v.Options = p.parseCompactOptions(context)
	p.expect(token.Semi, context)
	return v
}

func (p *parser) parseService() *ast.Service {
	p.next()
	s := &ast.Service{Name: p.name("service").Text}
	s.Entries = parseBody[[]ast.ServiceEntry](p, "service body", func(tok token.Token) ast.ServiceEntry {
		switch {
		case tok.Is(token.Option):
			return p.parseOption()
		case tok.Is(token.Rpc):
			return p.parseRPC()
		}
		p.fail(tok, "service body", `"rpc"`, `"option"`, `"}"`)
		return nil
	})
	return s
}

func (p *parser) parseRPC() *ast.RPC {
	const context = "rpc"
	p.next()
	rpc := &ast.RPC{Name: p.name(context).Text}
	reqStream, req := p.parseRPCType(context)
	p.expectWord(token.Returns, context)
	respStream, resp := p.parseRPCType(context)
	rpc.Request, rpc.Response = req, resp
	rpc.Stream = ast.StreamModeOf(reqStream, respStream)

	if p.peek(0).Kind == token.LBrace {
		rpc.Entries = parseBody[[]ast.RPCEntry](p, "rpc body", func(tok token.Token) ast.RPCEntry {
			if !tok.Is(token.Option) {
				p.fail(tok, "rpc body", `"option"`, `"}"`)
			}
			return p.parseOption()
		})
		return rpc
	}
	p.expect(token.Semi, context)
	return rpc
}

// parseRPCType parses a parenthesized request or response type.
func (p *parser) parseRPCType(context string) (streamed bool, typeName string) {
	p.expect(token.LParen, context)
	if tok := p.peek(0); tok.Is(token.Stream) {
		// `stream` is a marker unless it is itself the type name, as in
		// (stream) or (stream.Foo).
		switch after := p.peek(1); {
		case after.IsName():
			streamed = true
		case after.Kind == token.Dot:
			streamed = after.Offset > tok.End()
		}
		if streamed {
			p.next()
		}
	}
	typeName = p.typeName(context)
	p.expect(token.RParen, context)
	return streamed, typeName
}
