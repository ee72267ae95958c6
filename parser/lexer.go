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
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/protoast/source"
	"github.com/bufbuild/protoast/token"
)

const utf8BOM = "\uFEFF"

// runeReader is a cursor over the buffer being lexed. The mark records where
// the current token began.
type runeReader struct {
	data string
	pos  int
	mark int
}

func (rr *runeReader) readRune() (r rune, size int, ok bool) {
	if rr.pos == len(rr.data) {
		return 0, 0, false
	}
	r, size = utf8.DecodeRuneInString(rr.data[rr.pos:])
	rr.pos += size
	return r, size, true
}

func (rr *runeReader) peekByte() byte {
	if rr.pos == len(rr.data) {
		return 0
	}
	return rr.data[rr.pos]
}

func (rr *runeReader) unreadRune(size int) {
	if rr.pos-size < rr.mark {
		panic("unread past mark")
	}
	rr.pos -= size
}

func (rr *runeReader) setMark() {
	rr.mark = rr.pos
}

func (rr *runeReader) getMark() string {
	return rr.data[rr.mark:rr.pos]
}

// Lexer splits a source file into tokens, one per call to [Lexer.Next].
//
// Comments are returned as tokens. Keywords are returned as [token.Keyword]
// regardless of where they appear; deciding whether one is being used as a
// name is left to the parser.
type Lexer struct {
	file  *source.File
	input runeReader
	err   error
}

// NewLexer returns a lexer over the given file's text. A leading UTF-8 byte
// order mark is skipped; token offsets still count it.
func NewLexer(file *source.File) *Lexer {
	l := &Lexer{file: file, input: runeReader{data: file.Text()}}
	if strings.HasPrefix(l.input.data, utf8BOM) {
		l.input.pos = len(utf8BOM)
	}
	return l
}

// Next returns the next token.
//
// At the end of the input it returns a [token.EOF] token, and keeps doing so
// on subsequent calls. Once it returns an error, which is always a
// *[LexicalError], it returns that same error on every subsequent call.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	tok, err := l.lex()
	if err != nil {
		l.err = err
		return token.Token{}, err
	}
	return tok, nil
}

func (l *Lexer) lex() (token.Token, error) {
	for {
		l.input.setMark()

		c, sz, ok := l.input.readRune()
		if !ok {
			return token.Token{Kind: token.EOF, Offset: l.input.pos}, nil
		}

		if strings.ContainsRune("\n\r\t\f\v ", c) {
			continue
		}

		switch {
		case c == '.':
			// Decimal literals may start with a dot.
			if isDigit(l.input.peekByte()) {
				return l.readNumber()
			}
		case c == '-':
			if b := l.input.peekByte(); isDigit(b) || b == '.' {
				return l.readNumber()
			}
			return token.Token{}, l.errorf(ErrUnrecognizedChar, "%q", c)
		case c == '_' || isLetter(c):
			l.readIdentifier()
			text := l.input.getMark()
			if w := token.Lookup(text); w != token.NotKeyword {
				return l.newToken(token.Keyword, func(t *token.Token) { t.Word = w }), nil
			}
			return l.newToken(token.Ident, nil), nil
		case c < utf8.RuneSelf && isDigit(byte(c)):
			return l.readNumber()
		case c == '\'' || c == '"':
			str, err := l.readStringLiteral(c)
			if err != nil {
				return token.Token{}, err
			}
			return l.newToken(token.String, func(t *token.Token) { t.Str = str }), nil
		case c == '/':
			switch l.input.peekByte() {
			case '/':
				l.skipToEndOfLineComment()
				return l.newToken(token.LineComment, nil), nil
			case '*':
				if ok := l.skipToEndOfBlockComment(); !ok {
					return token.Token{}, &LexicalError{Pos: l.file.Pos(l.input.mark), Err: ErrUnterminatedComment}
				}
				return l.newToken(token.BlockComment, nil), nil
			}
		}

		if kind, ok := token.PunctKind(c); ok {
			return l.newToken(kind, nil), nil
		}
		if c == utf8.RuneError && sz == 1 {
			return token.Token{}, l.errorf(ErrUnrecognizedChar, "invalid UTF-8 byte %#x", l.input.data[l.input.mark])
		}
		return token.Token{}, l.errorf(ErrUnrecognizedChar, "%q", c)
	}
}

func (l *Lexer) newToken(kind token.Kind, init func(*token.Token)) token.Token {
	t := token.Token{
		Kind:   kind,
		Text:   l.input.getMark(),
		Offset: l.input.mark,
	}
	if init != nil {
		init(&t)
	}
	return t
}

// errorf reports an error at the start of the current token.
func (l *Lexer) errorf(cause error, format string, args ...any) error {
	return l.errorAt(l.input.mark, cause, format, args...)
}

func (l *Lexer) errorAt(offset int, cause error, format string, args ...any) error {
	return &LexicalError{
		Pos: l.file.Pos(offset),
		Err: fmt.Errorf("%w: %s", cause, fmt.Sprintf(format, args...)),
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (l *Lexer) readIdentifier() {
	for {
		c, sz, ok := l.input.readRune()
		if !ok {
			break
		}
		if c != '_' && !isLetter(c) && (c < '0' || c > '9') {
			l.input.unreadRune(sz)
			break
		}
	}
}

// readNumber consumes the rest of a numeric literal whose first rune has
// already been read, and decodes it.
func (l *Lexer) readNumber() (token.Token, error) {
	allowExpSign := false
	for {
		c, sz, ok := l.input.readRune()
		if !ok {
			break
		}
		if (c == '-' || c == '+') && !allowExpSign {
			l.input.unreadRune(sz)
			break
		}
		allowExpSign = false
		if c != '.' && c != '_' && (c < '0' || c > '9') && !isLetter(c) && c != '-' && c != '+' {
			l.input.unreadRune(sz)
			break
		}
		if c == 'e' || c == 'E' {
			// Scientific notation may be followed by an exponent sign.
			allowExpSign = true
		}
	}

	text := l.input.getMark()
	digits, negative := strings.CutPrefix(text, "-")

	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		u, err := strconv.ParseUint(digits[2:], 16, 64)
		if err != nil {
			return token.Token{}, l.numError(err, "hexadecimal integer", text)
		}
		return l.intToken(u, negative, text)
	}

	if strings.ContainsAny(digits, ".eE") {
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return token.Token{}, l.numError(err, "float", text)
		}
		if negative {
			f = -f
		}
		return l.newToken(token.Float, func(t *token.Token) { t.Float = f }), nil
	}

	base := 10
	if len(digits) > 1 && digits[0] == '0' {
		base = 8
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		kind := "integer"
		if base == 8 {
			kind = "octal integer"
		}
		return token.Token{}, l.numError(err, kind, text)
	}
	return l.intToken(u, negative, text)
}

func (l *Lexer) intToken(magnitude uint64, negative bool, text string) (token.Token, error) {
	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	if magnitude > limit {
		return token.Token{}, l.errorf(ErrNumberRange, "%s does not fit in a 64-bit signed integer", text)
	}
	v := int64(magnitude)
	if negative {
		v = -v
	}
	return l.newToken(token.Int, func(t *token.Token) { t.Int = v }), nil
}

func (l *Lexer) numError(err error, kind, text string) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
		return l.errorf(ErrNumberRange, "%s %s", kind, text)
	}
	return l.errorf(ErrNumberSyntax, "%s %s", kind, text)
}

// readStringLiteral consumes a string literal whose opening quote has been
// read, and returns its decoded value. A literal without escapes decodes to
// a slice of the input.
func (l *Lexer) readStringLiteral(quote rune) (string, error) {
	start := l.input.pos
	var buf *strings.Builder
	for {
		offset := l.input.pos
		c, _, ok := l.input.readRune()
		if !ok || c == '\n' {
			return "", &LexicalError{Pos: l.file.Pos(l.input.mark), Err: ErrUnterminatedString}
		}
		if c == quote {
			if buf == nil {
				return l.input.data[start:offset], nil
			}
			return buf.String(), nil
		}
		if c != '\\' {
			if buf != nil {
				buf.WriteString(l.input.data[offset:l.input.pos])
			}
			continue
		}

		if buf == nil {
			buf = new(strings.Builder)
			buf.WriteString(l.input.data[start:offset])
		}
		if err := l.readEscape(buf, offset); err != nil {
			return "", err
		}
	}
}

// readEscape decodes one escape sequence, whose backslash is at offset.
func (l *Lexer) readEscape(buf *strings.Builder, offset int) error {
	c, _, ok := l.input.readRune()
	if !ok {
		return &LexicalError{Pos: l.file.Pos(l.input.mark), Err: ErrUnterminatedString}
	}
	switch {
	case c == 'x' || c == 'X':
		hex := l.readDigits(2, isHexDigit)
		if hex == "" {
			return l.errorAt(offset, ErrInvalidEscape, "\\%c must be followed by a hex digit", c)
		}
		i, _ := strconv.ParseUint(hex, 16, 8)
		buf.WriteByte(byte(i))
	case c >= '0' && c <= '7':
		l.input.unreadRune(1)
		octal := l.readDigits(3, isOctalDigit)
		i, _ := strconv.ParseUint(octal, 8, 16)
		if i > 0xff {
			return l.errorAt(offset, ErrInvalidEscape, "octal escape is out range, must be between 0 and 377: \\%s", octal)
		}
		buf.WriteByte(byte(i))
	case c == 'u' || c == 'U':
		n := 4
		if c == 'U' {
			n = 8
		}
		hex := l.readDigits(n, isHexDigit)
		if len(hex) != n {
			return l.errorAt(offset, ErrInvalidEscape, "\\%c requires %d hex digits", c, n)
		}
		i, _ := strconv.ParseUint(hex, 16, 32)
		if i > utf8.MaxRune {
			return l.errorAt(offset, ErrInvalidEscape, "unicode escape is out of range, must be between 0 and 0x10ffff: \\%c%s", c, hex)
		}
		buf.WriteRune(rune(i))
	default:
		b, ok := simpleEscapes[c]
		if !ok {
			return l.errorAt(offset, ErrInvalidEscape, "%q", "\\"+string(c))
		}
		buf.WriteByte(b)
	}
	return nil
}

var simpleEscapes = map[rune]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
}

// readDigits reads up to limit bytes satisfying ok.
func (l *Lexer) readDigits(limit int, ok func(byte) bool) string {
	start := l.input.pos
	for l.input.pos-start < limit && l.input.pos < len(l.input.data) && ok(l.input.data[l.input.pos]) {
		l.input.pos++
	}
	return l.input.data[start:l.input.pos]
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

// skipToEndOfLineComment leaves the trailing line break unread.
func (l *Lexer) skipToEndOfLineComment() {
	if i := strings.IndexByte(l.input.data[l.input.pos:], '\n'); i >= 0 {
		l.input.pos += i
		if l.input.data[l.input.pos-1] == '\r' {
			l.input.pos--
		}
		return
	}
	l.input.pos = len(l.input.data)
}

func (l *Lexer) skipToEndOfBlockComment() bool {
	// Skip the opening star so that "/*/" is not taken as a complete comment.
	l.input.pos++
	i := strings.Index(l.input.data[l.input.pos:], "*/")
	if i < 0 {
		l.input.pos = len(l.input.data)
		return false
	}
	l.input.pos += i + 2
	return true
}
