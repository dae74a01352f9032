// Package parallel runs data-parallel vertex work across CPU workers.
//
// The execution model mirrors a GPU dispatch: one logical invocation per
// element, no ordering guarantee between invocations, no communication
// channel between them. Callers must only share read-only state across
// invocations and must write results to per-index output slots.
package parallel

import (
	"runtime"
	"sync"
)

// minGrain is the smallest chunk of invocations handed to one worker.
// Below this, goroutine startup dominates the per-vertex arithmetic.
const minGrain = 256

// For splits [0, n) into contiguous chunks and runs fn(start, end) for
// each chunk across up to GOMAXPROCS workers. It returns when all chunks
// have completed. Chunks execute in no particular order.
//
// Small n runs inline on the calling goroutine.
func For(n int, fn func(start, end int)) {
	ForWorkers(n, 0, fn)
}

// ForWorkers is For with an explicit worker count. If workers is 0 or
// negative, GOMAXPROCS is used.
func ForWorkers(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n <= minGrain || workers == 1 {
		fn(0, n)
		return
	}

	grain := (n + workers - 1) / workers
	if grain < minGrain {
		grain = minGrain
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += grain {
		end := start + grain
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
