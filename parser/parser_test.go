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

package parser

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"

	"github.com/bufbuild/protoast/ast"
	"github.com/bufbuild/protoast/internal/astx"
	"github.com/bufbuild/protoast/internal/corpora"
	"github.com/bufbuild/protoast/token"
)

func TestParseCorpus(t *testing.T) {
	t.Parallel()
	corpora.Corpus{
		Root:      "testdata/parser",
		Refresh:   "PROTOAST_REFRESH",
		Extension: "proto",
		Outputs: []corpora.Output{
			{Extension: "yaml", Compare: corpora.YAMLCompare},
		},
		Test: func(t *testing.T, path, text string) []string {
			root, err := Parse(path, text)
			require.NoError(t, err)
			return []string{astx.ToYAML(root)}
		},
	}.Run(t)
}

func TestEmptyParse(t *testing.T) {
	t.Parallel()
	for _, text := range []string{"", "\n\t \n", "\uFEFF", ";;"} {
		root, err := Parse("foo.proto", text)
		require.NoError(t, err)
		assert.NotNil(t, root)
		assert.Empty(t, root)
	}

	root, err := Parse("foo.proto", "// only a comment\n")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(ast.Root{ast.NewComment("// only a comment")}, root))
}

func TestJunkParse(t *testing.T) {
	t.Parallel()
	inputs := map[string]string{
		"case-34232": `'';`,
		"case-34238": `.`,
		"open-brace": `message M {`,
		"open-paren": `option (foo`,
		"open-map":   `option foo = { a: {`,
		"open-list":  `message M { int32 x = 1 [`,
		"open-rpc":   `service S { rpc X(stream`,
		"stray-eq":   `message M { = }`,
	}
	for name, input := range inputs {
		protoName := fmt.Sprintf("%s.proto", name)
		root, err := Parse(protoName, input)
		// We expect this to error, but not to panic.
		assert.Error(t, err, "junk input should have returned error")
		assert.Nil(t, root, "no partial tree should be returned")
		t.Logf("error from parse: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	archive, err := txtar.ParseFile(filepath.Join("testdata", "errors.txtar"))
	require.NoError(t, err)

	want := make(map[string]string)
	for _, f := range archive.Files {
		if name, ok := strings.CutSuffix(f.Name, ".err"); ok {
			want[name] = strings.TrimSpace(string(f.Data))
		}
	}
	var count int
	for _, f := range archive.Files {
		name, ok := strings.CutSuffix(f.Name, ".proto")
		if !ok {
			continue
		}
		count++
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			root, err := Parse(f.Name, string(f.Data))
			require.Error(t, err)
			assert.Nil(t, root)
			assert.Equal(t, want[name], err.Error())

			var parseErr *ParseError
			var lexErr *LexicalError
			assert.True(t, errors.As(err, &parseErr) || errors.As(err, &lexErr), "unexpected error type %T", err)
		})
	}
	assert.Equal(t, len(want), count, "every .err file needs a .proto file")
}

func TestParseErrorCauses(t *testing.T) {
	t.Parallel()

	_, err := Parse("", "message M {\n")
	require.ErrorIs(t, err, ErrUnexpectedEOF)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, token.EOF, parseErr.Found.Kind)
	assert.Equal(t, "message body", parseErr.Context)
	assert.Equal(t, 2, parseErr.GetPosition().Line)

	_, err = Parse("", "message M { bool x 1; }")
	require.ErrorIs(t, err, ErrUnexpectedToken)
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, token.Int, parseErr.Found.Kind)
	assert.Equal(t, []string{`"="`}, parseErr.Expected)
	assert.Equal(t, 19, parseErr.Pos.Offset)

	_, err = Parse("", `syntax = "proto3`)
	require.ErrorIs(t, err, ErrUnterminatedString)
	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 9, lexErr.Pos.Offset)
}

func TestParseReservedRanges(t *testing.T) {
	t.Parallel()
	root, err := Parse("", `message M { reserved 2 to 3, 6 to max, 9, 10 to 9223372036854775807; }`)
	require.NoError(t, err)
	want := ast.Root{&ast.Message{Name: "M", Entries: []ast.MessageEntry{
		&ast.ReservedIndices{Ranges: []ast.Range{
			ast.Bounded(2, 4),
			ast.OpenEnded(6),
			ast.Bounded(9, 10),
			ast.OpenEnded(10),
		}},
	}}}
	assert.Empty(t, cmp.Diff(want, root))

	indices := root[0].(*ast.Message).Entries[0].(*ast.ReservedIndices)
	assert.True(t, indices.Ranges[0].Contains(3))
	assert.False(t, indices.Ranges[0].Contains(4))

	maxWord, err := Parse("", `message M { extensions 10 to max; }`)
	require.NoError(t, err)
	maxInt, err := Parse("", `message M { extensions 10 to 9223372036854775807; }`)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(maxWord, maxInt))
	assert.True(t, maxInt[0].(*ast.Message).Entries[0].(*ast.Extensions).Ranges[0].Contains(math.MaxInt64))
}

func TestParseKeywordsAsNames(t *testing.T) {
	t.Parallel()
	const template = `message %[1]s {
		message %[1]s {}
		bool %[1]s = 1;
		.%[1]s.%[1]s x = 2;
		optional %[1]s y = 3;
	}`
	names := []string{"ident"}
	for _, w := range token.Words() {
		names = append(names, w.String())
	}
	for _, name := range names {
		root, err := Parse("", fmt.Sprintf(template, name))
		if !assert.NoError(t, err, "keyword %q", name) {
			continue
		}
		want := ast.Root{&ast.Message{Name: name, Entries: []ast.MessageEntry{
			&ast.Message{Name: name},
			&ast.Field{Type: "bool", Name: name, Number: 1},
			&ast.Field{Type: "." + name + "." + name, Name: "x", Number: 2},
			&ast.Field{Modifier: ast.Optional, Type: name, Name: "y", Number: 3},
		}}}
		assert.Empty(t, cmp.Diff(want, root), "keyword %q", name)
	}
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()
	var g errgroup.Group
	trees := make([]ast.Root, 8)
	const text = `syntax = "proto3";
	// leading
	message M {
		option (x).y = { a: 1 [c.d]: "e" };
		map<string, M> m = 1 [json_name = "mm"];
		oneof o { int32 i = 2; }
	}
	service S { rpc R(stream M) returns (M); }`
	for i := range trees {
		g.Go(func() error {
			root, err := Parse("det.proto", text)
			trees[i] = root
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, tree := range trees[1:] {
		assert.Empty(t, cmp.Diff(trees[0], tree))
	}
}

func TestParseStringViews(t *testing.T) {
	t.Parallel()
	text := `package foo.bar; option (a.b).c = "plain"; message M { foo . Bar x = 1; }`
	root, err := Parse("", text)
	require.NoError(t, err)

	within := func(s string) bool {
		start := uintptr(unsafe.Pointer(unsafe.StringData(text)))
		p := uintptr(unsafe.Pointer(unsafe.StringData(s)))
		return p >= start && p < start+uintptr(len(text))
	}

	pkg := root[0].(*ast.Package)
	assert.Equal(t, "foo.bar", pkg.Name)
	assert.True(t, within(pkg.Name))

	opt := root[1].(*ast.Option)
	assert.Equal(t, "(a.b).c", opt.Key)
	assert.True(t, within(opt.Key))
	assert.True(t, within(string(opt.Value.(ast.String))))

	// Names interrupted by whitespace are rebuilt without it.
	field := root[2].(*ast.Message).Entries[0].(*ast.Field)
	assert.Equal(t, "foo.Bar", field.Type)
	assert.False(t, within(field.Type))

	clone := root.Clone()
	assert.Empty(t, cmp.Diff(root, clone))
	assert.False(t, within(clone[0].(*ast.Package).Name))
	assert.False(t, within(clone[1].(*ast.Option).Key))
}

func TestParseStreamModes(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		sig  string
		want ast.StreamMode
	}{
		{sig: "(A) returns (B)", want: ast.Unary},
		{sig: "(stream A) returns (B)", want: ast.ClientStreaming},
		{sig: "(A) returns (stream B)", want: ast.ServerStreaming},
		{sig: "(stream A) returns (stream B)", want: ast.BidiStreaming},
		{sig: "(stream) returns (stream)", want: ast.Unary},
		{sig: "(stream .A) returns (stream.B)", want: ast.ClientStreaming},
	} {
		root, err := Parse("", "service S { rpc R"+tc.sig+"; }")
		require.NoError(t, err, tc.sig)
		rpc := root[0].(*ast.Service).Entries[0].(*ast.RPC)
		assert.Equal(t, tc.want, rpc.Stream, tc.sig)
	}
}
