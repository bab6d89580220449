// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"sync/atomic"

	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// asyncWorkers bounds concurrent file processing in async mode.
const asyncWorkers = 4

// 🏃 forEachFile runs fn over every file, sequentially or concurrently,
// updating the status manager's progress either way.
func forEachFile(ctx context.Context, files []string, async bool, mgr *status.Manager, fn func(context.Context, string) error) error {
	if !async {
		for i, file := range files {
			if err := fn(ctx, file); err != nil {
				return errors.Errorf("processing file %s: %w", file, err)
			}
			mgr.UpdateProgress(ctx, i+1)
		}
		return nil
	}

	var processed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(asyncWorkers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := fn(gctx, file); err != nil {
				return errors.Errorf("processing file %s: %w", file, err)
			}
			mgr.UpdateProgress(gctx, int(processed.Add(1)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Errorf("running async: %w", err)
	}
	return nil
}
