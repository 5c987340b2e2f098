// Package parallel provides the bounded fan-out used by the engines.
//
// For runs n independent tasks on at most `workers` goroutines and returns
// only after every task has finished. The return is the barrier: callers
// mutate shared state only after For returns, and tasks must treat shared
// inputs as read-only.
//
// A panic in any task is re-raised in the caller after all tasks complete
// (conc/pool semantics).
package parallel

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Workers resolves a configured worker count: w ≤ 0 ⇒ GOMAXPROCS.
func Workers(w int) int {
	if w <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return w
}

// For calls fn(i) for every i in [0, n) using at most Workers(workers)
// goroutines, and blocks until all calls have returned.
//
// With one worker (or a single task) the calls run inline on the caller's
// goroutine, in index order.
func For(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	w := Workers(workers)
	if w > n {
		w = n
	}

	var i int
	if w == 1 {
		for i = 0; i < n; i++ {
			fn(i)
		}
		return
	}

	p := pool.New().WithMaxGoroutines(w)
	for i = 0; i < n; i++ {
		idx := i
		p.Go(func() { fn(idx) })
	}
	p.Wait()
}
