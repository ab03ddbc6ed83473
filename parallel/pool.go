package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start launches numWorkers goroutines, GOMAXPROCS when numWorkers < 1.
// A single worker pool runs every job inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for {
					f, ok := <-workChan
					if !ok {
						return
					}
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Range splits [0, n) into contiguous chunks, one per worker, and blocks
// until fn has run on all of them. The pool is closed afterwards.
func (p *Pool) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		p.Wait(true)
		return
	}

	chunks := min(p.workers, n)
	size := (n + chunks - 1) / chunks
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		p.Do(func() {
			fn(start, end)
		})
	}
	p.Wait(true)
}

// Range runs fn over [0, n) on a pool of numWorkers workers.
func Range(n, numWorkers int, fn func(start, end int)) {
	Start(numWorkers).Range(n, fn)
}
