package nbody

import (
	"runtime"
	"sync"
)

// Pool runs data-parallel loops over a fixed number of workers. Each call to
// ParallelFor splits [0, n) into contiguous, disjoint ranges, one per worker,
// and returns only after every range is done.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given number of workers. A non-positive
// count uses runtime.GOMAXPROCS(0).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// ParallelFor calls fn(start, end) for disjoint ranges covering [0, n). Small
// loops and single-worker pools run inline on the caller's goroutine.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.workers, n)
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
