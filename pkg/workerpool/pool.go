// Package workerpool provides a small bounded worker pool for running
// independent tasks concurrently. Workers recover panics so one bad task
// cannot take down a run.
package workerpool

import (
	"context"
	"runtime"
	"sync"

	"github.com/seolens/seolens/pkg/defaults"
)

// Pool runs submitted tasks on at most size goroutines.
type Pool struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

// New returns a pool of the given size. Non-positive sizes fall back to
// a sensible default.
func New(size int) *Pool {
	if size <= 0 {
		size = defaultSize()
	}
	return &Pool{sem: make(chan struct{}, size)}
}

func defaultSize() int {
	n := runtime.GOMAXPROCS(0)
	if n > defaults.ConcurrencyMax {
		n = defaults.ConcurrencyMax
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Submit schedules fn, blocking while the pool is saturated.
func (p *Pool) Submit(fn func()) {
	p.wg.Add(1)
	p.sem <- struct{}{}
	go func() {
		defer func() {
			recover()
			<-p.sem
			p.wg.Done()
		}()
		fn()
	}()
}

// Wait blocks until every submitted task has finished.
func (p *Pool) Wait() { p.wg.Wait() }

// ParallelFor runs fn(i) for i in [0, n) on at most workers goroutines
// and waits for completion. The context is checked before dispatching
// each task; once canceled, remaining tasks are skipped.
func ParallelFor(ctx context.Context, n, workers int, fn func(i int)) {
	p := New(workers)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		p.Submit(func() { fn(i) })
	}
	p.Wait()
}
