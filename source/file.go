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

import (
	"slices"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// File is a named source buffer.
//
// It contains additional book-keeping information for resolving byte offsets
// into line and column information. Files are immutable once created and safe
// for concurrent use.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path, text string

	once sync.Once
	// The offset at which each line starts; lineIndex[0] is always 0.
	lineIndex []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path. It is only used for labelling positions.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Pos converts a byte offset into a full position.
//
// Lines are 1-indexed. Columns are 1-indexed and count grapheme clusters from
// the start of the line, so a column points at what a user sees in an editor
// rather than at a byte.
//
// This operation is O(log n) in the number of lines.
func (f *File) Pos(offset int) Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Text()) {
		offset = len(f.Text())
	}
	if f == nil || offset == 0 {
		return Pos{Filename: f.Path(), Offset: offset, Line: 1, Col: 1}
	}

	lines := f.lines()
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}

	chunk := f.text[lines[line]:offset]
	return Pos{
		Filename: f.path,
		Offset:   offset,
		Line:     line + 1,
		Col:      uniseg.GraphemeClusterCount(chunk) + 1,
	}
}

// EOF returns the position just past the last byte of the file.
func (f *File) EOF() Pos {
	return f.Pos(len(f.Text()))
}

// Line returns the given 1-indexed line, without its trailing newline.
func (f *File) Line(line int) string {
	lines := f.lines()
	if line < 1 || line > len(lines) {
		return ""
	}
	start, end := lines[line-1], len(f.text)
	if line < len(lines) {
		end = lines[line]
	}
	return strings.TrimRight(f.text[start:end], "\r\n")
}

func (f *File) lines() []int {
	if f == nil {
		return []int{0}
	}

	f.once.Do(func() {
		f.lineIndex = append(f.lineIndex, 0)
		for i := 0; i < len(f.text); i++ {
			if f.text[i] == '\n' {
				f.lineIndex = append(f.lineIndex, i+1)
			}
		}
	})
	return f.lineIndex
}
