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


// Package fuzztesting bounds the running time of fuzz targets.
package fuzztesting

import (
	"context"
	"testing"
	"time"
)

// RunWithFuzzerTimeout runs fn a few times under a deadline, failing the test
// if the deadline passes. The fuzzing engine complains if 100 iterations take
// longer than 60 seconds, so inputs that approach that are reported early.
func RunWithFuzzerTimeout(t *testing.T, fn func(ctx context.Context)) {
	t.Helper()
	allowedDuration := 2 * time.Second
	if IsRace {
		// The race detector has been observed to make it take ~8x as long.
		allowedDuration = 20 * time.Second
		t.Logf("allowing %v since race detector is enabled", allowedDuration)
	}
	ctx, cancel := context.WithTimeout(context.Background(), allowedDuration)
	defer func() {
		if ctx.Err() != nil {
			t.Errorf("test took too long to execute (> %v)", allowedDuration)
		}
		cancel()
	}()
	for range 3 {
		if ctx.Err() != nil {
			break
		}
		fn(ctx)
	}
}
