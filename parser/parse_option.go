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
	"strings"

	"github.com/bufbuild/protoast/ast"
	"github.com/bufbuild/protoast/token"
)

// parseOption parses an `option name = value;` statement.
func (p *parser) parseOption() *ast.Option {
	const context = "option"
	p.next()
	opt := p.parseOptionBody(context)
	p.expect(token.Semi, context)
	return opt
}

// parseCompactOptions parses an optional bracketed option list, as found
// after a field or enum value.
func (p *parser) parseCompactOptions(context string) []*ast.Option {
	if p.peek(0).Kind != token.LBracket {
		return nil
	}
	p.next()
	var opts []*ast.Option
	for {
		opts = append(opts, p.parseOptionBody(context))
		switch tok := p.peek(0); tok.Kind {
		case token.Comma:
			p.next()
		case token.RBracket:
			p.next()
			return opts
		default:
			p.fail(tok, context, `","`, `"]"`)
		}
	}
}

// parseOptionBody parses `name = value`.
func (p *parser) parseOptionBody(context string) *ast.Option {
	opt := &ast.Option{Key: p.optionName(context)}
	p.expect(token.Equals, context)
	opt.Value = p.parseValue(context)
	return opt
}

// optionName parses an option name such as java_package, (foo.bar) or
// (foo.bar).baz.qux. Extension parts keep their parentheses.
func (p *parser) optionName(context string) string {
	var toks []token.Token
	for {
		if p.peek(0).Kind == token.LParen {
			toks = append(toks, p.next())
			toks = p.typeNameTokens(toks, context)
			toks = append(toks, p.expect(token.RParen, context))
		} else {
			toks = append(toks, p.name(context))
		}
		if p.peek(0).Kind != token.Dot {
			return p.join(toks)
		}
		toks = append(toks, p.next())
	}
}

func (p *parser) parseValue(context string) ast.Value {
	tok := p.peek(0)
	switch {
	case tok.Is(token.True):
		p.next()
		return ast.Bool(true)
	case tok.Is(token.False):
		p.next()
		return ast.Bool(false)
	case tok.Kind == token.Int:
		p.next()
		return ast.Int(tok.Int)
	case tok.Kind == token.Float:
		p.next()
		return ast.Float(tok.Float)
	case tok.Kind == token.String:
		return ast.String(p.stringLit(context))
	case tok.IsName():
		return ast.Ident(p.dottedName(context))
	case tok.Kind == token.LBrace:
		return p.parseAggregate()
	}
	p.fail(tok, context, "option value")
	return nil
}

// stringLit parses one or more adjacent string literals, which are
// concatenated.
func (p *parser) stringLit(context string) string {
	first := p.expect(token.String, context)
	if p.peek(0).Kind != token.String {
		return first.Str
	}
	var buf strings.Builder
	buf.WriteString(first.Str)
	for p.peek(0).Kind == token.String {
		buf.WriteString(p.next().Str)
	}
	return buf.String()
}

// parseAggregate parses a `{ key: value ... }` message literal.
//
// Entries may be separated by commas or semicolons, and the colon may be
// left out before a nested literal. Extension keys are written in brackets
// and keep them.
func (p *parser) parseAggregate() *ast.Map {
	const context = "message literal"
	p.expect(token.LBrace, context)
	var entries []ast.MapEntry
	for {
		if p.peek(0).Kind == token.RBrace {
			p.next()
			return ast.NewMap(entries...)
		}

		var key string
		if p.peek(0).Kind == token.LBracket {
			toks := []token.Token{p.next()}
			toks = p.typeNameTokens(toks, context)
			toks = append(toks, p.expect(token.RBracket, context))
			key = p.join(toks)
		} else {
			key = p.name(context).Text
		}

		switch tok := p.peek(0); tok.Kind {
		case token.Colon:
			p.next()
		case token.LBrace:
		default:
			p.fail(tok, context, `":"`)
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: p.parseValue(context)})

		if kind := p.peek(0).Kind; kind == token.Comma || kind == token.Semi {
			p.next()
		}
	}
}
