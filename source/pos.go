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

package source

import "fmt"

// Pos identifies a location in a source file.
type Pos struct {
	Filename string
	Offset   int // Zero-based byte offset.
	Line     int // One-based line number.
	Col      int // One-based column, in grapheme clusters.
}

// String renders the position as "file:line:col", omitting the file when it
// is unnamed.
func (p Pos) String() string {
	if p.Line == 0 {
		if p.Filename == "" {
			return "<unknown>"
		}
		return p.Filename
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// UnknownPos returns a placeholder position for a file whose contents are
// not available.
func UnknownPos(filename string) Pos {
	return Pos{Filename: filename}
}
