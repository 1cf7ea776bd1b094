// Package workerpool provides a bounded pool for per-page and per-image
// tasks. Tasks are independent and failure-isolated: an error, timeout
// or panic in one task becomes that task's result and never aborts
// siblings.
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultWorkers is the default worker count.
const DefaultWorkers = 4

// DefaultTaskTimeout is the default per-task timeout.
const DefaultTaskTimeout = 30 * time.Second

// Pool is a long-lived bounded worker pool. The zero value is not
// usable; construct with New.
type Pool struct {
	sem     chan struct{}
	timeout time.Duration
}

// New creates a pool with the given worker count and per-task timeout.
// Non-positive arguments fall back to the defaults.
func New(workers int, timeout time.Duration) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultTaskTimeout
	}
	return &Pool{
		sem:     make(chan struct{}, workers),
		timeout: timeout,
	}
}

// Workers returns the pool's concurrency bound.
func (p *Pool) Workers() int {
	return cap(p.sem)
}

// Run executes n indexed tasks across the pool and blocks until all
// have finished. The returned slice holds one error per task index;
// nil entries are successes. Each task runs under a context bounded by
// the pool's per-task timeout, and a panic inside a task is captured
// into its error slot.
func (p *Pool) Run(ctx context.Context, n int, task func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
		case <-ctx.Done():
			for j := i; j < n; j++ {
				errs[j] = ctx.Err()
			}
			wg.Wait()
			return errs
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-p.sem }()

			taskCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			errs[i] = p.runOne(taskCtx, i, task)
		}(i)
	}

	wg.Wait()
	return errs
}

// runOne executes a single task, converting panics to errors.
func (p *Pool) runOne(ctx context.Context, i int, task func(ctx context.Context, i int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %d panicked: %v", i, r)
		}
	}()
	return task(ctx, i)
}
