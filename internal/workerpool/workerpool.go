// Package workerpool runs a slice of jobs on a fixed number of goroutines and
// returns their results in input order.
package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool executes Work for each item. Recover converts a panic in Work into that
// item's result. When Recover is nil, the first panic is raised again from Run
// on the caller's goroutine once every other item has finished. Skip produces the result for items that were never started
// because the context was cancelled; when nil, Work is still called and is
// expected to observe the cancelled context.
type Pool[T, R any] struct {
	Work    func(ctx context.Context, item T) R
	Recover func(item T, panicErr error) R
	Skip    func(item T, err error) R
}

// Run processes items on exactly min(workers, len(items)) goroutines. Each
// goroutine finishes one item before taking the next. results[i] always
// belongs to items[i] regardless of completion order.
func (p Pool[T, R]) Run(ctx context.Context, items []T, workers int) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	workers = max(1, min(workers, len(items)))

	var (
		crashOnce sync.Once
		crash     error
	)
	run := func(idx int) {
		result, err := p.runOne(ctx, items[idx])
		results[idx] = result
		if err != nil {
			crashOnce.Do(func() { crash = err })
		}
	}

	jobs := make(chan int)
	var group errgroup.Group
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for idx := range jobs {
				run(idx)
			}
			return nil
		})
	}

	dispatched := 0
dispatch:
	for dispatched < len(items) {
		select {
		case jobs <- dispatched:
			dispatched++
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	_ = group.Wait()

	for idx := dispatched; idx < len(items); idx++ {
		if p.Skip != nil {
			results[idx] = p.Skip(items[idx], ctx.Err())
		} else {
			run(idx)
		}
	}
	if crash != nil {
		panic(crash)
	}
	return results
}

// runOne returns a non-nil error only for a panic that Recover did not handle.
func (p Pool[T, R]) runOne(ctx context.Context, item T) (result R, crash error) {
	defer func() {
		if rec := recover(); rec != nil {
			crash = fmt.Errorf("job panicked: %v\n%s", rec, debug.Stack())
			if p.Recover != nil {
				result = p.Recover(item, crash)
				crash = nil
			}
		}
	}()
	return p.Work(ctx, item), nil
}
