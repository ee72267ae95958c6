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

// Package token defines the lexical vocabulary of the protobuf source
// language: token kinds, the reserved keyword set, and the [Token] value the
// lexer hands to the parser.
//
// Classification here is purely lexical. A [Keyword] token is always a
// keyword at this level, even where the grammar will end up treating it as a
// plain name.
package token
