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

package protoast

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoast/ast"
	"github.com/bufbuild/protoast/parser"
	"github.com/bufbuild/protoast/reporter"
	"github.com/bufbuild/protoast/source"
	"github.com/bufbuild/protoast/walk"
)

// Compiler parses batches of protobuf source files, in parallel.
//
// Each file is parsed on its own: a syntax error in one file does not stop
// the others from being parsed, unless the Reporter decides otherwise. The
// parser itself never checks the context, so cancellation takes effect
// between files.
type Compiler struct {
	// Resolves paths into source code or already parsed trees. This is how
	// the compiler loads the files it parses, as well as their imports when
	// FollowImports is set. This field is the only required field.
	Resolver Resolver
	// The maximum number of files parsed at once. If unspecified or set to a
	// non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// is used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the batch after encountering any
	// errors and ignores all warnings.
	Reporter reporter.Reporter

	// If true, the files imported by each parsed file are resolved and
	// parsed too, transitively, and included in the results.
	FollowImports bool
	// If true, the returned trees are cloned so that they do not retain the
	// text they were parsed from.
	Detach bool
}

// Compile parses the given paths. The results hold the requested files in
// the order given, with duplicates removed. When FollowImports is set, they
// are followed by the imported files, in depth-first order of first
// appearance.
//
// If the reporter swallows every error it is given, Compile returns
// [reporter.ErrInvalidSource] after all files have been processed.
func (c *Compiler) Compile(ctx context.Context, paths ...string) (Files, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	grp, ctx := errgroup.WithContext(ctx)
	e := &executor{
		c:       c,
		h:       reporter.NewHandler(c.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		grp:     grp,
		results: map[string]*File{},
	}
	for _, path := range paths {
		e.compile(ctx, path)
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if err := e.h.Error(); err != nil {
		return nil, err
	}

	var files Files
	seen := map[string]bool{}
	var visit func(path string, follow bool)
	visit = func(path string, follow bool) {
		f := e.results[path]
		if f == nil || seen[path] {
			return
		}
		seen[path] = true
		files = append(files, f)
		if follow {
			for _, imp := range f.followedImports() {
				visit(imp, true)
			}
		}
	}
	for _, path := range paths {
		visit(path, false)
	}
	if c.FollowImports {
		for _, path := range paths {
			for _, imp := range e.results[path].followedImports() {
				visit(imp, true)
			}
		}
	}
	return files, nil
}

// followedImports returns the imports the compiler resolves for f. A
// descriptor already carries its dependencies, so its imports are not
// followed.
func (f *File) followedImports() []string {
	if f == nil || f.desc != nil {
		return nil
	}
	return f.Imports()
}

type executor struct {
	c   *Compiler
	h   *reporter.Handler
	s   *semaphore.Weighted
	grp *errgroup.Group

	mu      sync.Mutex
	results map[string]*File
}

// compile schedules the given path, unless it has already been scheduled.
func (e *executor) compile(ctx context.Context, path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.results[path]; ok {
		return
	}
	f := &File{path: path}
	e.results[path] = f
	e.grp.Go(func() error {
		return e.doCompile(ctx, f)
	})
}

func (e *executor) doCompile(ctx context.Context, f *File) error {
	// Acquire may succeed on a done context.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.s.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.s.Release(1)

	sr, err := e.c.Resolver.FindFileByPath(f.path)
	if err != nil {
		return e.h.HandleError(fmt.Errorf("could not resolve path %q: %w", f.path, err))
	}
	if closer, ok := sr.Source.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	switch {
	case sr.Desc != nil:
		if sr.Desc.Path() != f.path {
			return e.h.HandleError(fmt.Errorf("search result for %q returned descriptor for %q", f.path, sr.Desc.Path()))
		}
		f.desc = sr.Desc
		return nil
	case sr.AST != nil:
		f.ast = sr.AST
	case sr.Source != nil:
		data, err := io.ReadAll(sr.Source)
		if err != nil {
			return e.h.HandleError(fmt.Errorf("could not read %q: %w", f.path, err))
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		file := source.NewFile(f.path, string(data))
		root, err := parser.ParseFile(file)
		if err != nil {
			// The reporter decides whether this ends the batch.
			return e.h.HandleError(err)
		}
		if !hasSyntax(root) {
			e.h.HandleWarning(file.Pos(0), parser.ErrNoSyntax)
		}
		f.ast = root
	default:
		return e.h.HandleError(fmt.Errorf("search result for %q is empty", f.path))
	}

	if e.c.Detach {
		f.ast = f.ast.Clone()
	}
	f.defs = map[string]ast.Node{}
	_ = walk.Definitions(f.ast, func(name string, n ast.Node) error {
		if _, ok := f.defs[name]; !ok {
			f.defs[name] = n
		}
		return nil
	})

	if e.c.FollowImports {
		for _, imp := range f.followedImports() {
			e.compile(ctx, imp)
		}
	}
	return nil
}

func hasSyntax(root ast.Root) bool {
	for _, e := range root {
		switch e.(type) {
		case *ast.Syntax, *ast.Edition:
			return true
		}
	}
	return false
}

// File is the result of compiling a single path. It holds either a syntax
// tree or, when the resolver supplied one, a compiled descriptor.
type File struct {
	path string
	ast  ast.Root
	desc protoreflect.FileDescriptor
	defs map[string]ast.Node
}

// Path returns the path the file was resolved from.
func (f *File) Path() string {
	return f.path
}

// AST returns the file's syntax tree, or nil if the resolver supplied a
// descriptor instead.
func (f *File) AST() ast.Root {
	return f.ast
}

// Descriptor returns the descriptor the resolver supplied for the file, if
// any.
func (f *File) Descriptor() protoreflect.FileDescriptor {
	return f.desc
}

// Imports returns the paths imported by the file, in source order.
func (f *File) Imports() []string {
	if f.desc != nil {
		imps := f.desc.Imports()
		paths := make([]string, imps.Len())
		for i := range paths {
			paths[i] = imps.Get(i).Path()
		}
		return paths
	}
	var paths []string
	for _, e := range f.ast {
		if imp, ok := e.(*ast.Import); ok {
			paths = append(paths, imp.Path)
		}
	}
	return paths
}

// Lookup returns the definition with the given fully-qualified name, without
// a leading dot, or nil if the file's tree does not define it. If a name is
// defined more than once, the first definition is returned.
func (f *File) Lookup(name string) ast.Node {
	return f.defs[name]
}

// Files is the result of a [Compiler.Compile] call.
type Files []*File

// FindFileByPath returns the file with the given path, or nil.
func (f Files) FindFileByPath(path string) *File {
	for _, file := range f {
		if file.path == path {
			return file
		}
	}
	return nil
}
