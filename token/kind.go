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

package token

import "fmt"

const (
	EOF Kind = iota // End of input. Carries no text.

	Ident   // An identifier that is not a keyword.
	Keyword // A reserved word; see [Token.Word].
	Int     // A signed integer literal.
	Float   // A floating-point literal.
	String  // A quoted string literal.

	LineComment  // A // comment, without its trailing newline.
	BlockComment // A /* */ comment.

	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	LAngle   // <
	RAngle   // >
	LParen   // (
	RParen   // )
	Semi     // ;
	Comma    // ,
	Colon    // :
	Equals   // =
	Dot      // .

	kindCount
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

// IsComment returns whether this is one of the two comment kinds.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// IsPunct returns whether this kind is a single punctuation rune.
func (k Kind) IsPunct() bool {
	return k >= LBrace && k < kindCount
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Keyword:
		return "Keyword"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	}
	if k.IsPunct() {
		return fmt.Sprintf("Punct(%c)", punct[k-LBrace])
	}
	return fmt.Sprintf("token.Kind(%d)", int(k))
}

// punct is indexed by kind-LBrace.
var punct = [...]rune{'{', '}', '[', ']', '<', '>', '(', ')', ';', ',', ':', '=', '.'}

// PunctKind returns the kind for a punctuation rune, if it is one.
func PunctKind(r rune) (Kind, bool) {
	for i, p := range punct {
		if p == r {
			return LBrace + Kind(i), true
		}
	}
	return EOF, false
}

// Describe returns a human-readable noun for this kind, suitable for use in
// "expected ..." diagnostics.
func (k Kind) Describe() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Keyword:
		return "keyword"
	case Int:
		return "integer literal"
	case Float:
		return "float literal"
	case String:
		return "string literal"
	case LineComment, BlockComment:
		return "comment"
	}
	if k.IsPunct() {
		return fmt.Sprintf("%q", string(punct[k-LBrace]))
	}
	return k.String()
}
