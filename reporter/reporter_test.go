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


package reporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/protoast/source"
)

func TestErrorWithPos(t *testing.T) {
	t.Parallel()
	cause := errors.New("bad thing")
	pos := source.Pos{Filename: "a.proto", Line: 2, Col: 7}
	err := Error(pos, cause)
	assert.Equal(t, "a.proto:2:7: bad thing", err.Error())
	assert.Equal(t, pos, err.GetPosition())
	assert.ErrorIs(t, err, cause)

	err = Errorf(pos, "value %d: %w", 3, cause)
	assert.Equal(t, "a.proto:2:7: value 3: bad thing", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestHandlerDefault(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil)
	assert.NoError(t, h.Error())
	h.HandleWarning(source.Pos{}, errors.New("ignored"))

	first := h.HandleErrorf(source.Pos{Filename: "a.proto", Line: 1, Col: 1}, "first")
	assert.EqualError(t, first, "a.proto:1:1: first")
	second := h.HandleErrorf(source.Pos{Filename: "b.proto", Line: 1, Col: 1}, "second")
	assert.Equal(t, first, second)
	assert.Equal(t, first, h.Error())
	assert.Equal(t, first, h.ReporterError())
}

func TestHandlerSwallowed(t *testing.T) {
	t.Parallel()
	var errs, warnings []string
	h := NewHandler(NewReporter(
		func(err ErrorWithPos) error {
			errs = append(errs, err.Error())
			return nil
		},
		func(err ErrorWithPos) {
			warnings = append(warnings, err.Error())
		},
	))
	assert.NoError(t, h.HandleErrorf(source.Pos{Filename: "a.proto", Line: 1, Col: 2}, "one"))
	assert.NoError(t, h.HandleErrorf(source.Pos{Filename: "a.proto", Line: 3, Col: 4}, "two"))
	h.HandleWarning(source.Pos{Filename: "b.proto", Line: 1, Col: 1}, errors.New("careful"))

	assert.Equal(t, []string{"a.proto:1:2: one", "a.proto:3:4: two"}, errs)
	assert.Equal(t, []string{"b.proto:1:1: careful"}, warnings)
	assert.ErrorIs(t, h.Error(), ErrInvalidSource)
	assert.NoError(t, h.ReporterError())
}

func TestHandlerPositionless(t *testing.T) {
	t.Parallel()
	var called bool
	h := NewHandler(NewReporter(func(ErrorWithPos) error {
		called = true
		return nil
	}, nil))
	cause := errors.New("no position")
	assert.Same(t, cause, h.HandleError(cause))
	assert.False(t, called)
	assert.Same(t, cause, h.Error())
}
