package parallel

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// WorkerPool runs the sub-chunk tasks of one tile on a fixed set of
// goroutines.
//
// Each worker has its own queue and steals from the others when it runs
// dry, which keeps workers busy when chunk costs differ (NaN-heavy chunks
// short-circuit, clipped edge chunks are smaller).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds per-worker work queues.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// 4x workers of buffering hides submit latency for ~100-chunk tiles.
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing anywhere: block on own queue.
			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

// drain executes all remaining work in a queue.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin across workers and blocks until
// every item has finished. This is the per-tile barrier.
//
// A panicking item does not take down its worker: the panic is recovered
// and the first one is returned as a *TaskPanic once every other item has
// finished. If the pool has been closed, the work runs on the calling
// goroutine, so ExecuteAll always completes every item.
func (p *WorkerPool) ExecuteAll(work []func()) error {
	if len(work) == 0 {
		return nil
	}

	var (
		wg    sync.WaitGroup
		first atomic.Pointer[TaskPanic]
	)
	wg.Add(len(work))

	wrap := func(i int, fn func()) func() {
		return func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					first.CompareAndSwap(nil, &TaskPanic{Task: i, Value: v, Stack: debug.Stack()})
				}
			}()
			fn()
		}
	}

	if !p.running.Load() {
		for i, fn := range work {
			wrap(i, fn)()
		}
	} else {
		for i, fn := range work {
			wrapped := wrap(i, fn)
			select {
			case p.queues[i%p.workers] <- wrapped:
			case <-p.done:
				// Closed mid-submit: run it here.
				wrapped()
			}
		}
	}

	wg.Wait()
	if tp := first.Load(); tp != nil {
		return tp
	}
	return nil
}

// Close stops the workers after draining queued work.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// TaskPanic is returned by ExecuteAll when a work item panicked.
type TaskPanic struct {
	// Task is the index of the item in the slice passed to ExecuteAll.
	Task  int
	Value any
	Stack []byte
}

func (e *TaskPanic) Error() string {
	return fmt.Sprintf("parallel: task %d panicked: %v", e.Task, e.Value)
}

// Is matches ErrTaskPanicked.
func (e *TaskPanic) Is(target error) bool {
	return target == ErrTaskPanicked
}
