package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEverything(t *testing.T) {
	p := New(3)
	var count atomic.Int64
	for i := 0; i < 50; i++ {
		p.Submit(func() { count.Add(1) })
	}
	p.Wait()
	if got := count.Load(); got != 50 {
		t.Errorf("ran %d tasks, want 50", got)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 2
	p := New(workers)

	var mu sync.Mutex
	active, peak := 0, 0
	started := make(chan struct{}, 10)
	gate := make(chan struct{})

	// Submit blocks once the pool saturates, so submit from a separate
	// goroutine and open the gate after the first workers are running.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			p.Submit(func() {
				mu.Lock()
				active++
				if active > peak {
					peak = active
				}
				mu.Unlock()
				started <- struct{}{}
				<-gate
				mu.Lock()
				active--
				mu.Unlock()
			})
		}
	}()

	for i := 0; i < workers; i++ {
		<-started
	}
	close(gate)
	<-done
	p.Wait()

	if peak > workers {
		t.Errorf("peak concurrency = %d, want <= %d", peak, workers)
	}
}

func TestPoolSurvivesPanic(t *testing.T) {
	p := New(1)
	var ran atomic.Bool
	p.Submit(func() { panic("task blew up") })
	p.Submit(func() { ran.Store(true) })
	p.Wait()
	if !ran.Load() {
		t.Error("pool stopped after a panicking task")
	}
}

func TestParallelFor(t *testing.T) {
	seen := make([]atomic.Bool, 20)
	ParallelFor(context.Background(), len(seen), 4, func(i int) {
		seen[i].Store(true)
	})
	for i := range seen {
		if !seen[i].Load() {
			t.Errorf("index %d never ran", i)
		}
	}
}

func TestParallelForCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count atomic.Int64
	ParallelFor(ctx, 100, 4, func(i int) { count.Add(1) })
	if got := count.Load(); got != 0 {
		t.Errorf("canceled context still dispatched %d tasks", got)
	}
}
