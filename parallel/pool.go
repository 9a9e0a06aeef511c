// Package parallel runs batch work on a fixed number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted functions on its workers. A pool with a single worker
// runs them inline, in submission order.
type Pool struct {
	work    chan func()
	workers sync.WaitGroup
	pending sync.WaitGroup
	stop    func()
	size    int
}

// Start launches numWorkers workers, or GOMAXPROCS workers when numWorkers
// is below 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{size: numWorkers, stop: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan func(), numWorkers)
	for range numWorkers {
		p.workers.Go(func() {
			for f := range p.work {
				f()
				p.pending.Done()
			}
		})
	}
	p.stop = sync.OnceFunc(func() { close(p.work) })

	return p
}

func (p *Pool) Size() int { return p.size }

// Do queues f, blocking while every worker is busy. Do must not be called
// after Close.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.pending.Add(1)
	p.work <- f
}

// Wait blocks until every function queued so far has returned. The pool
// stays usable afterwards.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Close waits for queued work and stops the workers. It is safe to call more
// than once.
func (p *Pool) Close() {
	p.pending.Wait()
	p.stop()
	p.workers.Wait()
}
