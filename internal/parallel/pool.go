// Package parallel runs the independent per-face work of one subdivision
// pass on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines pulling work from a shared queue.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	once    sync.Once
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case work := <-p.queue:
			work()
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// ExecuteAll runs every work item and waits for all of them.
// A panic in a work item is re-raised on the calling goroutine once the
// remaining items have finished. On a closed pool the items run inline.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var (
		wg       sync.WaitGroup
		panicked atomic.Pointer[any]
	)
	wg.Add(len(work))

	for _, fn := range work {
		p.queue <- func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicked.CompareAndSwap(nil, &r)
				}
			}()
			fn()
		}
	}

	wg.Wait()
	if r := panicked.Load(); r != nil {
		panic(*r)
	}
}

// Close stops the workers. Safe to call more than once.
func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.running.Store(false)
		close(p.done)
		p.wg.Wait()
	})
}

// ForEach calls fn over contiguous chunks covering [0, n). With a nil pool or
// a single worker the whole range runs inline on the caller.
func ForEach(p *WorkerPool, n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p == nil || p.Workers() <= 1 || n == 1 {
		fn(0, n)
		return
	}

	chunks := min(p.Workers()*4, n)
	size := (n + chunks - 1) / chunks
	work := make([]func(), 0, chunks)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		work = append(work, func() { fn(start, end) })
	}
	p.ExecuteAll(work)
}
