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

package ast

import "strings"

// CommentKind distinguishes the two comment syntaxes.
type CommentKind int

const (
	SingleLine CommentKind = iota // A // comment.
	MultiLine                     // A /* */ comment.
)

// String implements [fmt.Stringer].
func (k CommentKind) String() string {
	if k == MultiLine {
		return "multi-line"
	}
	return "single-line"
}

// Comment is a comment, positioned among the entries of whatever container
// it was found in.
type Comment struct {
	Kind CommentKind
	// Raw is the comment exactly as written, including its delimiters.
	Raw string
	// Text is Raw with the delimiters and surrounding whitespace removed.
	Text string
}

// NewComment builds a Comment from its raw text, which must start with
// either // or /* (in which case it must also end with */).
func NewComment(raw string) *Comment {
	if strings.HasPrefix(raw, "/*") {
		body := strings.TrimSuffix(raw[2:], "*/")
		return &Comment{Kind: MultiLine, Raw: raw, Text: strings.TrimSpace(body)}
	}
	return &Comment{Kind: SingleLine, Raw: raw, Text: strings.TrimSpace(strings.TrimPrefix(raw, "//"))}
}

func (*Comment) astNode() {}
