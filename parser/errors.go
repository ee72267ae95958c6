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
	"strings"

	"github.com/bufbuild/protoast/reporter"
	"github.com/bufbuild/protoast/source"
	"github.com/bufbuild/protoast/token"
)

// ErrNoSyntax is reported as a warning for files that declare neither a
// syntax nor an edition.
var ErrNoSyntax = errors.New("no syntax specified; defaulting to proto2 syntax")

// Causes of a [LexicalError]. They are wrapped with detail about the
// offending input, so test for them with [errors.Is].
var (
	ErrUnrecognizedChar    = errors.New("unrecognized character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrUnterminatedComment = errors.New("block comment never terminates, unexpected EOF")
	ErrInvalidEscape       = errors.New("invalid escape sequence")
	ErrNumberRange         = errors.New("value out of range")
	ErrNumberSyntax        = errors.New("invalid syntax in number")
)

// Causes of a [ParseError].
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
)

// LexicalError is returned when the input cannot be split into tokens.
type LexicalError struct {
	Pos source.Pos
	Err error
}

var _ reporter.ErrorWithPos = (*LexicalError)(nil)

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%v: %v", e.Pos, e.Err)
}

// GetPosition implements [reporter.ErrorWithPos].
func (e *LexicalError) GetPosition() source.Pos {
	return e.Pos
}

// Unwrap implements [reporter.ErrorWithPos].
func (e *LexicalError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a token appears where the grammar does not
// allow it, or when the input ends early.
type ParseError struct {
	Pos source.Pos
	// Found is the offending token. A Kind of token.EOF means the input ended
	// where more was required.
	Found token.Token
	// Expected describes what would have been accepted instead.
	Expected []string
	// Context names the construct being parsed, such as "message body".
	Context string
}

var _ reporter.ErrorWithPos = (*ParseError)(nil)

func (e *ParseError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%v: unexpected %s", e.Pos, e.Found.Describe())
	if e.Context != "" {
		fmt.Fprintf(&buf, " in %s", e.Context)
	}
	if len(e.Expected) > 0 {
		buf.WriteString("; expected ")
		buf.WriteString(oxfordOr(e.Expected))
	}
	return buf.String()
}

// GetPosition implements [reporter.ErrorWithPos].
func (e *ParseError) GetPosition() source.Pos {
	return e.Pos
}

// Unwrap implements [reporter.ErrorWithPos].
func (e *ParseError) Unwrap() error {
	if e.Found.Kind == token.EOF {
		return ErrUnexpectedEOF
	}
	return ErrUnexpectedToken
}

func oxfordOr(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}
