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


// Package parser turns protobuf source text into the syntax tree defined by
// package ast.
//
// [Parse] is the entry point. It reads a whole file and returns either a
// complete tree or the first error found; there is no error recovery and no
// partial result. [Lexer] is exported for tools that only need tokens.
//
// Keywords are lexed as keywords everywhere. The parser accepts any keyword
// where a name is expected, so `message message { message message = 1; }`
// is a valid file. At the top level, a keyword that begins a statement
// commits to that statement. Inside bodies, `option` always starts an option,
// and any other statement keyword that is not followed by its statement's
// shape is taken as a field's type.
//
// Comments are not attached to declarations. They appear as [ast.Comment]
// entries next to the declarations they were found among; comments found
// inside a declaration follow it.
package parser
