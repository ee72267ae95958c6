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
	"errors"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/bufbuild/protoast/ast"
	"github.com/bufbuild/protoast/parser"
	"github.com/bufbuild/protoast/reporter"
)

func paths(files Files) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Path()
	}
	return names
}

func TestCompile(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"a.proto": `syntax = "proto3"; package foo; message A { string name = 1; }`,
			"b.proto": `syntax = "proto3"; import "a.proto"; message B { foo.A a = 1; }`,
		})},
	}
	files, err := compiler.Compile(context.Background(), "b.proto", "a.proto", "b.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.proto", "a.proto"}, paths(files))

	a := files.FindFileByPath("a.proto")
	require.NotNil(t, a)
	assert.Nil(t, a.Descriptor())
	msg, ok := a.Lookup("foo.A").(*ast.Message)
	require.True(t, ok)
	assert.Equal(t, "A", msg.Name)
	field, ok := a.Lookup("foo.A.name").(*ast.Field)
	require.True(t, ok)
	assert.Equal(t, "string", field.Type)
	assert.Nil(t, a.Lookup("A"))

	assert.Equal(t, []string{"a.proto"}, files.FindFileByPath("b.proto").Imports())
	assert.Nil(t, files.FindFileByPath("c.proto"))
}

func TestCompileNoPaths(t *testing.T) {
	t.Parallel()
	compiler := Compiler{Resolver: &SourceResolver{}}
	files, err := compiler.Compile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCompileFollowImports(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: WithStandardImports(&SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"a.proto": `syntax = "proto3";
import "b.proto";
import public "google/protobuf/timestamp.proto";`,
			"b.proto": `syntax = "proto3"; import weak "c.proto";`,
			"c.proto": `syntax = "proto3"; import "a.proto";`,
			"d.proto": `syntax = "proto3"; import "c.proto";`,
		})}),
		FollowImports:  true,
		MaxParallelism: 1,
	}
	files, err := compiler.Compile(context.Background(), "a.proto", "d.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.proto",
		"d.proto",
		"b.proto",
		"c.proto",
		"google/protobuf/timestamp.proto",
	}, paths(files))

	ts := files.FindFileByPath("google/protobuf/timestamp.proto")
	require.NotNil(t, ts)
	assert.Nil(t, ts.AST())
	require.NotNil(t, ts.Descriptor())
	assert.Equal(t, "google.protobuf", string(ts.Descriptor().Package()))
	assert.Empty(t, ts.Imports())
}

func TestCompileFollowImportsStopsAtDescriptors(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: WithStandardImports(&SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"a.proto": `syntax = "proto3";
import "google/protobuf/api.proto";
import "b.proto";`,
			"b.proto": `syntax = "proto3"; import "c.proto";`,
			"c.proto": `syntax = "proto3"; import "google/protobuf/type.proto";`,
		})}),
		FollowImports: true,
	}
	files, err := compiler.Compile(context.Background(), "a.proto")
	require.NoError(t, err)
	for _, f := range files {
		require.NotNil(t, f)
	}
	assert.Equal(t, []string{
		"a.proto",
		"google/protobuf/api.proto",
		"b.proto",
		"c.proto",
		"google/protobuf/type.proto",
	}, paths(files))

	// The descriptor's own imports are reported, but not compiled.
	api := files.FindFileByPath("google/protobuf/api.proto")
	require.NotNil(t, api)
	assert.Contains(t, api.Imports(), "google/protobuf/source_context.proto")
	assert.Nil(t, files.FindFileByPath("google/protobuf/source_context.proto"))
	assert.Nil(t, files.FindFileByPath("google/protobuf/any.proto"))

	files, err = compiler.Compile(context.Background(), "google/protobuf/type.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"google/protobuf/type.proto"}, paths(files))
}

func TestCompileWithoutFollowingImports(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: ResolverFunc(func(path string) (SearchResult, error) {
			if path != "a.proto" {
				t.Errorf("resolver was called for unexpected path %q", path)
				return SearchResult{}, protoregistry.NotFound
			}
			return SearchResult{Source: strings.NewReader(`syntax = "proto2"; import "missing.proto";`)}, nil
		}),
	}
	files, err := compiler.Compile(context.Background(), "a.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.proto"}, paths(files))
}

func TestCompileMissingFile(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"a.proto": `syntax = "proto3"; import "missing.proto";`,
		})},
		FollowImports: true,
	}
	_, err := compiler.Compile(context.Background(), "a.proto")
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), `"missing.proto"`)

	compiler = Compiler{Resolver: CompositeResolver{}}
	_, err = compiler.Compile(context.Background(), "a.proto")
	assert.ErrorIs(t, err, protoregistry.NotFound)
}

func TestCompileImportPaths(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var tried []string
	accessor := SourceAccessorFromMap(map[string]string{
		"second/a.proto": `syntax = "proto3";`,
	})
	compiler := Compiler{
		Resolver: &SourceResolver{
			ImportPaths: []string{"first", "second"},
			Accessor: func(path string) (io.ReadCloser, error) {
				mu.Lock()
				tried = append(tried, path)
				mu.Unlock()
				return accessor(path)
			},
		},
	}
	files, err := compiler.Compile(context.Background(), "a.proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.proto"}, paths(files))
	assert.Equal(t, []string{"first/a.proto", "second/a.proto"}, tried)
}

func TestCompileASTResult(t *testing.T) {
	t.Parallel()
	root, err := parser.Parse("a.proto", `syntax = "proto3"; message A {}`)
	require.NoError(t, err)
	resolver := ResolverFunc(func(string) (SearchResult, error) {
		return SearchResult{AST: root}, nil
	})

	compiler := Compiler{Resolver: resolver}
	files, err := compiler.Compile(context.Background(), "a.proto")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Same(t, root[0], files[0].AST()[0])

	compiler.Detach = true
	files, err = compiler.Compile(context.Background(), "a.proto")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.NotSame(t, root[0], files[0].AST()[0])
	assert.Equal(t, root, files[0].AST())
}

func TestCompileErrorReporting(t *testing.T) {
	t.Parallel()
	accessor := SourceAccessorFromMap(map[string]string{
		"good.proto": `syntax = "proto3";`,
		"bad1.proto": `syntax = "proto3"; message {}`,
		"bad2.proto": `syntax = "proto3"; enum E { A }`,
	})
	inputs := []string{"good.proto", "bad1.proto", "bad2.proto"}

	t.Run("default", func(t *testing.T) {
		t.Parallel()
		compiler := Compiler{Resolver: &SourceResolver{Accessor: accessor}}
		_, err := compiler.Compile(context.Background(), inputs...)
		var parseErr *parser.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.ErrorIs(t, err, parser.ErrUnexpectedToken)
	})
	t.Run("collect", func(t *testing.T) {
		t.Parallel()
		var mu sync.Mutex
		var errs []string
		compiler := Compiler{
			Resolver: &SourceResolver{Accessor: accessor},
			Reporter: reporter.NewReporter(func(err reporter.ErrorWithPos) error {
				mu.Lock()
				defer mu.Unlock()
				errs = append(errs, err.GetPosition().String())
				return nil
			}, nil),
		}
		_, err := compiler.Compile(context.Background(), inputs...)
		assert.ErrorIs(t, err, reporter.ErrInvalidSource)
		assert.ElementsMatch(t, []string{"bad1.proto:1:28", "bad2.proto:1:31"}, errs)
	})
	t.Run("abort", func(t *testing.T) {
		t.Parallel()
		fail := errors.New("failure!")
		compiler := Compiler{
			Resolver: &SourceResolver{Accessor: accessor},
			Reporter: reporter.NewReporter(func(reporter.ErrorWithPos) error {
				return fail
			}, nil),
		}
		_, err := compiler.Compile(context.Background(), inputs...)
		assert.ErrorIs(t, err, fail)
	})
}

func TestCompileNoSyntaxWarning(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var warnings []reporter.ErrorWithPos
	compiler := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"a.proto": `message A {}`,
			"b.proto": `edition = "2023"; message B {}`,
		})},
		Reporter: reporter.NewReporter(nil, func(w reporter.ErrorWithPos) {
			mu.Lock()
			defer mu.Unlock()
			warnings = append(warnings, w)
		}),
	}
	_, err := compiler.Compile(context.Background(), "a.proto", "b.proto")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], parser.ErrNoSyntax)
	assert.Equal(t, "a.proto:1:1", warnings[0].GetPosition().String())
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	compiler := Compiler{
		Resolver: ResolverFunc(func(path string) (SearchResult, error) {
			t.Errorf("resolver was called for %q after cancellation", path)
			return SearchResult{}, protoregistry.NotFound
		}),
	}
	_, err := compiler.Compile(ctx, "a.proto")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileDescriptorPathMismatch(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: ResolverFunc(func(string) (SearchResult, error) {
			return SearchResult{Desc: standardImports["google/protobuf/any.proto"]}, nil
		}),
	}
	_, err := compiler.Compile(context.Background(), "any.proto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `returned descriptor for "google/protobuf/any.proto"`)
}
