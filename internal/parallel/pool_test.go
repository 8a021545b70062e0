package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateNonPositiveWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		expected := runtime.GOMAXPROCS(0)
		if pool.Workers() != expected {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d (GOMAXPROCS)", n, pool.Workers(), expected)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_EveryIndexOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	hits := make([]atomic.Int32, 37)
	work := make([]func(), len(hits))
	for i := range work {
		work[i] = func() { hits[i].Add(1) }
	}

	pool.ExecuteAll(work)

	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Errorf("task %d ran %d times, want 1", i, got)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_IsBarrier(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var finished atomic.Int64
	work := make([]func(), 12)
	for i := range work {
		work[i] = func() {
			time.Sleep(time.Millisecond)
			finished.Add(1)
		}
	}

	pool.ExecuteAll(work)

	// Nothing may still be running once ExecuteAll returns.
	if finished.Load() != 12 {
		t.Errorf("finished = %d after ExecuteAll returned, want 12", finished.Load())
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	// Multiple closes should not panic
	pool.Close()
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_ExecuteAllAfterCloseRunsInline(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var counter atomic.Int64
	work := make([]func(), 10)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	if err := pool.ExecuteAll(work); err != nil {
		t.Fatalf("ExecuteAll() = %v", err)
	}

	if counter.Load() != 10 {
		t.Errorf("counter = %d, want 10 (closed pool must still complete work)", counter.Load())
	}
}

func TestWorkerPool_ExecuteAllRecoversPanic(t *testing.T) {
	for _, closed := range []bool{false, true} {
		pool := NewWorkerPool(3)
		if closed {
			pool.Close()
		}

		var counter atomic.Int64
		work := make([]func(), 9)
		for i := range work {
			work[i] = func() {
				if i == 4 {
					panic("reducer exploded")
				}
				counter.Add(1)
			}
		}

		err := pool.ExecuteAll(work)
		if !errors.Is(err, ErrTaskPanicked) {
			t.Fatalf("closed=%v: ExecuteAll() = %v, want ErrTaskPanicked", closed, err)
		}
		var tp *TaskPanic
		if !errors.As(err, &tp) || tp.Task != 4 || tp.Value != "reducer exploded" || len(tp.Stack) == 0 {
			t.Errorf("closed=%v: TaskPanic = %+v", closed, tp)
		}
		if counter.Load() != 8 {
			t.Errorf("closed=%v: counter = %d, want 8 (other tasks must still run)", closed, counter.Load())
		}

		// The pool keeps working after a panic.
		if err := pool.ExecuteAll([]func(){func() { counter.Add(1) }}); err != nil {
			t.Errorf("closed=%v: ExecuteAll after panic = %v", closed, err)
		}
		if counter.Load() != 9 {
			t.Errorf("closed=%v: counter = %d, want 9", closed, counter.Load())
		}
		pool.Close()
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numGoroutines := 10
	numTasksPerGoroutine := 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()

			work := make([]func(), numTasksPerGoroutine)
			for i := range work {
				work[i] = func() {
					counter.Add(1)
				}
			}

			pool.ExecuteAll(work)
		}()
	}

	wg.Wait()

	expected := int64(numGoroutines * numTasksPerGoroutine)
	if counter.Load() != expected {
		t.Errorf("counter = %d, want %d", counter.Load(), expected)
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Uneven work: every tenth task is slow.
	var fastCount, slowCount atomic.Int64

	work := make([]func(), 100)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(10 * time.Millisecond)
				slowCount.Add(1)
			}
		} else {
			work[i] = func() {
				fastCount.Add(1)
			}
		}
	}

	start := time.Now()
	pool.ExecuteAll(work)
	elapsed := time.Since(start)

	if slowCount.Load() != 10 {
		t.Errorf("slowCount = %d, want 10", slowCount.Load())
	}
	if fastCount.Load() != 90 {
		t.Errorf("fastCount = %d, want 90", fastCount.Load())
	}
	t.Logf("Elapsed time: %v (work stealing should help)", elapsed)
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)

		work := make([]func(), 100)
		for j := range work {
			work[j] = func() {}
		}
		pool.ExecuteAll(work)

		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	final := runtime.NumGoroutine()

	// Allow for some variance (test framework goroutines, etc.)
	if final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

func TestWorkerPool_SingleWorker(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	var counter atomic.Int64

	work := make([]func(), 50)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != 50 {
		t.Errorf("counter = %d, want 50", counter.Load())
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	work := make([]func(), DefaultChunkTarget)
	for i := range work {
		work[i] = func() {}
	}

	b.ResetTimer()
	for b.Loop() {
		pool.ExecuteAll(work)
	}
}
