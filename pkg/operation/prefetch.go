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
	"runtime"

	"github.com/walteh/repo2file/pkg/bundle"
	"github.com/walteh/repo2file/pkg/walker"
	"golang.org/x/sync/errgroup"
)

// ⚡ runAsync reads file contents on a bounded worker pool while a single
// writer drains results in walk order. The per-file result channels are
// queued as the walk discovers files, so the artifact is byte-identical to
// a synchronous run.
func (op *combineOperation) runAsync(ctx context.Context, root string, wopts walker.Options, w *bundle.Writer, errLog *bundle.ErrorLog) error {
	workers := op.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	queue := make(chan chan fileResult, workers*2)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)

		// The pool is a bounded wait group: readers report failures through
		// their result, never through the pool.
		var pool errgroup.Group
		pool.SetLimit(workers)

		err := walker.Walk(gctx, root, wopts, func(path string) error {
			ch := make(chan fileResult, 1)
			select {
			case queue <- ch:
			case <-gctx.Done():
				return gctx.Err()
			}

			display := op.displayPath(path)
			if !op.rules.Decide(display).Included() {
				ch <- fileResult{display: display, excluded: true}
				return nil
			}

			pool.Go(func() error {
				data, err := op.readSource(path)
				ch <- fileResult{display: display, data: data, err: err}
				return nil
			})
			return nil
		})

		// Every queued channel has a writer once the pool drains, so the
		// consumer below can never block on an abandoned slot.
		_ = pool.Wait()
		return err
	})

	g.Go(func() error {
		for ch := range queue {
			var r fileResult
			select {
			case r = <-ch:
			case <-gctx.Done():
				return gctx.Err()
			}
			if err := op.emit(gctx, r, w, errLog); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}
