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

// Package protoast provides the entry point for parsing batches of protobuf
// source files into syntax trees. "Compile" in this case just means resolving
// and parsing: no linking or semantic validation is done. The trees are
// described by package ast and produced by package parser, which can also be
// used directly to parse a single file.
//
// # Resolvers
//
// A Resolver is how the compiler locates the files it parses. It can supply
// any of the following in response to a query for a path.
//   - Source code: the compiler parses it.
//   - AST: the parsing step is skipped and the tree is used as-is.
//   - Descriptor: the file is recorded as already compiled. Its imports are
//     not followed. See [WithStandardImports].
//
// # Compiler
//
// A Compiler accepts a list of paths and produces the list of parsed files.
// Only the Resolver field is required. A minimal Compiler, that resolves
// files by loading them from the file system based on the current working
// directory, can be had with the following simple snippet:
//
//	compiler := protoast.Compiler{
//	    Resolver: &protoast.SourceResolver{},
//	}
//
// This minimal Compiler uses default parallelism, equal to the number of CPU
// cores detected; it does not parse imported files; and it fails fast at the
// first syntax error. All of these aspects can be customized by setting other
// fields.
package protoast
