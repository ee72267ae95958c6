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
	"errors"

	"github.com/bufbuild/protoast/ast"
	"github.com/bufbuild/protoast/source"
	"github.com/bufbuild/protoast/token"
)

// Parse parses the given text as a protobuf source file. The filename is only
// used to label error positions and may be empty.
//
// On success, the strings in the returned tree are slices of text wherever
// possible; use [ast.Root.Clone] to detach the tree from it. On failure the
// error is a *[LexicalError] or a *[ParseError] describing the first problem
// found, and no tree is returned.
//
// Parse keeps no state between calls and is safe to call concurrently.
func Parse(filename, text string) (ast.Root, error) {
	return ParseFile(source.NewFile(filename, text))
}

// ParseFile is like [Parse], but takes an already constructed file.
func ParseFile(file *source.File) (root ast.Root, err error) {
	p := &parser{file: file, lex: NewLexer(file)}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			root, err = nil, b.err
		}
	}()
	return p.parseRoot(), nil
}

// bailout carries the first error out of the recursive descent.
type bailout struct {
	err error
}

type parser struct {
	file *source.File
	lex  *Lexer

	// Tokens read from the lexer but not yet consumed, comments included.
	buf []token.Token
	// Set once the lexer fails. The failure is represented in buf by an EOF
	// token at the offending offset, so that it surfaces when the parser
	// reaches it rather than when it is first peeked.
	lexErr error

	// Comments found in the middle of the statement being parsed. They are
	// emitted as entries after that statement.
	pending []*ast.Comment
}

// raw returns the i-th unconsumed token, comments included.
func (p *parser) raw(i int) token.Token {
	for len(p.buf) <= i {
		if n := len(p.buf); n > 0 && p.buf[n-1].Kind == token.EOF {
			p.buf = append(p.buf, p.buf[n-1])
			continue
		}
		tok, err := p.lex.Next()
		if err != nil {
			p.lexErr = err
			tok = token.Token{Kind: token.EOF, Offset: len(p.file.Text())}
			var lexErr *LexicalError
			if errors.As(err, &lexErr) {
				tok.Offset = lexErr.Pos.Offset
			}
		}
		p.buf = append(p.buf, tok)
	}
	return p.buf[i]
}

// peek returns the n-th unconsumed token that is not a comment.
func (p *parser) peek(n int) token.Token {
	for i := 0; ; i++ {
		tok := p.raw(i)
		if tok.Kind.IsComment() {
			continue
		}
		if n == 0 {
			return tok
		}
		n--
	}
}

// next consumes and returns the next token that is not a comment. Comments
// skipped along the way are queued as pending. The EOF token is never
// consumed.
func (p *parser) next() token.Token {
	for {
		tok := p.raw(0)
		if tok.Kind == token.EOF {
			return tok
		}
		p.buf = p.buf[1:]
		if !tok.Kind.IsComment() {
			return tok
		}
		p.pending = append(p.pending, ast.NewComment(tok.Text))
	}
}

// comments consumes the pending comments and any comments that come next.
func (p *parser) comments() []*ast.Comment {
	comments := p.pending
	p.pending = nil
	for tok := p.raw(0); tok.Kind.IsComment(); tok = p.raw(0) {
		p.buf = p.buf[1:]
		comments = append(comments, ast.NewComment(tok.Text))
	}
	return comments
}

// opensBody returns whether the statement starting at the next token has a
// body, that is, whether a { comes before anything that would end a field
// declaration.
func (p *parser) opensBody() bool {
	for i := 0; ; i++ {
		switch p.raw(i).Kind {
		case token.LBrace:
			return true
		case token.Equals, token.Semi, token.RBrace, token.EOF:
			return false
		}
	}
}

// fieldAhead returns whether the next three tokens are a name, a name, and
// an equals sign; that is, whether a keyword in first position is being used
// as a field's type.
func (p *parser) fieldAhead() bool {
	return p.peek(1).IsName() && p.peek(2).Kind == token.Equals
}

func (p *parser) fail(found token.Token, context string, expected ...string) {
	if found.Kind == token.EOF && p.lexErr != nil {
		panic(bailout{p.lexErr})
	}
	panic(bailout{&ParseError{
		Pos:      p.file.Pos(found.Offset),
		Found:    found,
		Expected: expected,
		Context:  context,
	}})
}

func (p *parser) expect(kind token.Kind, context string) token.Token {
	if tok := p.peek(0); tok.Kind != kind {
		p.fail(tok, context, kind.Describe())
	}
	return p.next()
}

func (p *parser) expectWord(word token.Word, context string) token.Token {
	if tok := p.peek(0); !tok.Is(word) {
		p.fail(tok, context, `"`+word.String()+`"`)
	}
	return p.next()
}

// name consumes an identifier or a keyword used as one.
func (p *parser) name(context string) token.Token {
	if tok := p.peek(0); !tok.IsName() {
		p.fail(tok, context, "identifier")
	}
	return p.next()
}

func (p *parser) intLit(context string) int64 {
	return p.expect(token.Int, context).Int
}

// appendComments appends the comments at the current position to entries.
// Every entry type admits comments.
func appendComments[S ~[]E, E ast.Node](p *parser, entries S) S {
	for _, c := range p.comments() {
		entries = append(entries, any(c).(E))
	}
	return entries
}

// parseBody parses a braced list of entries. The entry func is called with
// the first token of each entry and must consume the whole entry.
func parseBody[S ~[]E, E ast.Node](p *parser, context string, entry func(token.Token) E) S {
	p.expect(token.LBrace, context)
	// Comments inside the enclosing statement's header belong after it, not
	// inside its body.
	outer := p.pending
	p.pending = nil

	var entries S
	for {
		entries = appendComments(p, entries)
		switch tok := p.peek(0); tok.Kind {
		case token.RBrace:
			p.next()
			p.pending = append(outer, p.pending...)
			return entries
		case token.Semi:
			p.next()
		default:
			entries = append(entries, entry(tok))
		}
	}
}
