// Package parallel runs independent cases on a fixed set of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs jobs on a fixed number of workers. Every worker owns a queue
// and steals from the others once its own queue is empty, so a few slow
// cases do not leave workers idle.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers. Zero or a
// negative count selects GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), max(workers*4, 8))
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		}
	}
}

func (p *Pool) drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.queues {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Map calls fn(i) for i in [0, n) on the workers and waits for all calls
// to return. Indices not yet started when ctx is canceled are skipped.
// Map returns ctx.Err() if any index was skipped, and nil on a closed pool
// without calling fn.
func (p *Pool) Map(ctx context.Context, n int, fn func(i int)) error {
	if n <= 0 || !p.running.Load() {
		return nil
	}
	var (
		wg      sync.WaitGroup
		skipped atomic.Bool
	)
	wg.Add(n)
	for i := range n {
		job := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				skipped.Store(true)
				return
			}
			fn(i)
		}
		select {
		case p.queues[i%p.workers] <- job:
		case <-p.done:
			skipped.Store(true)
			wg.Done()
		}
	}
	wg.Wait()
	if skipped.Load() {
		return ctx.Err()
	}
	return nil
}

// Close waits for queued jobs and stops the workers. Close is safe to call
// more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }
