package mixed

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny columns on a single worker.
const minChunk = 1024

// SplitParallel is Split with rows partitioned into contiguous ranges across
// workers. Each worker writes only its own range, so the output is identical
// to Split. workers <= 0 uses GOMAXPROCS. Cancelling ctx abandons the scan
// and returns ctx's error.
func SplitParallel(ctx context.Context, s Strategy, col Column, workers int) (SplitResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(col)
	chunks := (n + minChunk - 1) / minChunk
	if chunks < workers {
		workers = chunks
	}
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return SplitResult{}, err
		}
		return Split(s, col)
	}

	res := newResult(n)
	size := (n + workers - 1) / workers
	perRange := make([][]*MalformedCellError, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * size
		hi := min(lo+size, n)
		if lo >= hi {
			continue
		}
		w := w
		g.Go(func() error {
			for start := lo; start < hi; start += minChunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				perRange[w] = append(perRange[w], splitRange(s, col, res, start, min(start+minChunk, hi))...)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SplitResult{}, err
	}

	var errs []*MalformedCellError
	for _, e := range perRange {
		errs = append(errs, e...)
	}
	return finish(res, errs)
}
