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

// Package ast defines the syntax tree produced by the parser for protobuf
// source files.
//
// The tree is inert data. Every container keeps its entries in exactly the
// order they appeared in the source, and comments are entries in their own
// right rather than annotations on a neighbouring node. Each container has
// its own closed entry type (for example [MessageEntry] or [EnumEntry]) so
// that what may appear inside an enum versus inside a message is enforced by
// the type system.
//
// Strings in a freshly parsed tree are slices of the source buffer wherever
// possible, so the tree keeps that buffer reachable. Call [Root.Clone] to get
// an equivalent tree that shares no memory with it.
//
// No semantic checks are implied by a tree: field numbers, enum values,
// reserved ranges and type names are reported as written.
package ast
