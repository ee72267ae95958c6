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
	"math"
	"strings"

	"github.com/bufbuild/protoast/ast"
	"github.com/bufbuild/protoast/token"
)

var modifiers = map[token.Word]ast.FieldModifier{
	token.Optional: ast.Optional,
	token.Required: ast.Required,
	token.Repeated: ast.Repeated,
}

// parseField parses a field declaration, starting with its modifier or type.
func (p *parser) parseField() *ast.Field {
	const context = "field"
	f := new(ast.Field)
	// A modifier keyword directly followed by `name =` is the field's type.
	if tok := p.peek(0); tok.Kind == token.Keyword && tok.Word.IsModifier() && !p.fieldAhead() {
		p.next()
		f.Modifier = modifiers[tok.Word]
	}
	f.Type = p.parseFieldType(context)
	f.Name = p.name(context).Text
	p.expect(token.Equals, context)
	f.Number = p.intLit(context)
	f.Options = p.parseCompactOptions(context)
	p.expect(token.Semi, context)
	return f
}

// parseFieldType parses a type name or a map type. Map types are normalized
// to the form "map<K, V>".
func (p *parser) parseFieldType(context string) string {
	if tok := p.peek(0); !tok.Is(token.Map) || p.peek(1).Kind != token.LAngle {
		return p.typeName(context)
	}
	const mapContext = "map type"
	p.next()
	p.next()
	key := p.typeName(mapContext)
	p.expect(token.Comma, mapContext)
	value := p.typeName(mapContext)
	p.expect(token.RAngle, mapContext)
	return "map<" + key + ", " + value + ">"
}

// typeName parses a possibly qualified type reference, such as foo.Bar or
// .foo.Bar.
func (p *parser) typeName(context string) string {
	return p.join(p.typeNameTokens(nil, context))
}

// dottedName parses a dot-separated name with no leading dot.
func (p *parser) dottedName(context string) string {
	return p.join(p.dottedNameTokens(nil, context))
}

func (p *parser) typeNameTokens(toks []token.Token, context string) []token.Token {
	if p.peek(0).Kind == token.Dot {
		toks = append(toks, p.next())
	}
	return p.dottedNameTokens(toks, context)
}

func (p *parser) dottedNameTokens(toks []token.Token, context string) []token.Token {
	toks = append(toks, p.name(context))
	for p.peek(0).Kind == token.Dot {
		toks = append(toks, p.next())
		toks = append(toks, p.name(context))
	}
	return toks
}

// join returns the text spanned by toks. If nothing separates them in the
// source, this is a slice of the source; otherwise the token texts are
// concatenated.
func (p *parser) join(toks []token.Token) string {
	first, last := toks[0], toks[len(toks)-1]
	n := 0
	for _, tok := range toks {
		n += len(tok.Text)
	}
	if last.End()-first.Offset == n {
		return p.file.Text()[first.Offset:last.End()]
	}
	var buf strings.Builder
	buf.Grow(n)
	for _, tok := range toks {
		buf.WriteString(tok.Text)
	}
	return buf.String()
}

// parseReserved parses a reserved statement in a message or enum body. It
// yields a *ast.ReservedIdents for a list of names and a
// *ast.ReservedIndices for a list of ranges.
func parseReserved[E ast.Node](p *parser) E {
	const context = "reserved"
	p.next()
	var entry ast.Node
	switch tok := p.peek(0); {
	case tok.Kind == token.String:
		names := []string{p.stringLit(context)}
		for p.peek(0).Kind == token.Comma {
			p.next()
			names = append(names, p.stringLit(context))
		}
		entry = &ast.ReservedIdents{Names: names}
	case tok.IsName():
		names := []string{p.next().Text}
		for p.peek(0).Kind == token.Comma {
			p.next()
			names = append(names, p.name(context).Text)
		}
		entry = &ast.ReservedIdents{Names: names}
	case tok.Kind == token.Int:
		entry = &ast.ReservedIndices{Ranges: p.parseRanges(context)}
	default:
		p.fail(tok, context, "integer literal", "string literal", "identifier")
	}
	p.expect(token.Semi, context)
	return entry.(E)
}

func (p *parser) parseExtensions() *ast.Extensions {
	const context = "extensions"
	p.next()
	ext := &ast.Extensions{Ranges: p.parseRanges(context)}
	ext.Options = p.parseCompactOptions(context)
	p.expect(token.Semi, context)
	return ext
}

// parseRanges parses a comma-separated list of `N`, `N to M` and
// `N to max` ranges.
func (p *parser) parseRanges(context string) []ast.Range {
	var ranges []ast.Range
	for {
		start := p.intLit(context)
		r := ast.Single(start)
		if p.peek(0).Is(token.To) {
			p.next()
			if p.peek(0).Is(token.Max) {
				p.next()
				r = ast.OpenEnded(start)
			} else {
				end := p.intLit(context)
				if end == math.MaxInt64 {
					// The exclusive bound would overflow.
					r = ast.OpenEnded(start)
				} else {
					r = ast.Bounded(start, end+1)
				}
			}
		}
		ranges = append(ranges, r)

		if p.peek(0).Kind != token.Comma {
			return ranges
		}
		p.next()
	}
}
