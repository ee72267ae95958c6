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

import (
	"fmt"
	"strconv"
)

// Token is a single lexeme.
//
// Text is always a slice of the buffer that was lexed; it is never copied.
// For literals, the decoded value is carried alongside it.
type Token struct {
	Kind   Kind
	Word   Word   // Set when Kind is Keyword.
	Text   string // Raw source text, including quotes and comment delimiters.
	Offset int    // Byte offset of the first byte of Text.

	// Decoded literal values. Only the field matching Kind is meaningful.
	Int   int64
	Float float64
	Str   string
}

// End returns the offset just past this token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// IsName returns whether this token may be used as a name: a plain
// identifier or any keyword.
func (t Token) IsName() bool {
	return t.Kind == Ident || t.Kind == Keyword
}

// Is returns whether this token is the given keyword.
func (t Token) Is(w Word) bool {
	return t.Kind == Keyword && t.Word == w
}

// Describe renders this token for use in diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Keyword:
		return fmt.Sprintf("keyword %q", t.Text)
	case Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case Int, Float:
		return fmt.Sprintf("number %s", t.Text)
	case String:
		return fmt.Sprintf("string %s", t.Text)
	case LineComment, BlockComment:
		return "comment"
	default:
		return strconv.Quote(t.Text)
	}
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return fmt.Sprintf("%v@%d:%q", t.Kind, t.Offset, t.Text)
}
