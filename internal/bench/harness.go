package bench

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// WorkFunc is one unit of work in a ParallelForStable run. id is the
// claimed index in [start, end); workerID identifies which worker
// goroutine is executing it, for per-worker bookkeeping such as a
// dedicated random source.
type WorkFunc func(id, workerID int) error

// ParallelForStable runs fn over every index in [start, end) using
// numWorkers goroutines, all released at the same instant so the
// returned duration measures actual work, not staggered goroutine
// startup — the same guarantee the original benchmark driver's
// ParallelForStable gives via a condition variable. numWorkers <= 0
// uses runtime.NumCPU(). The first error any worker returns is
// reported back and stops remaining work from starting; in-flight work
// already claimed still finishes.
func ParallelForStable(start, end, numWorkers int, fn WorkFunc) (time.Duration, error) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers == 1 || end-start <= 1 {
		begin := time.Now()
		for i := start; i < end; i++ {
			if err := fn(i, 0); err != nil {
				return time.Since(begin), errors.Wrap(err, "bench: work failed")
			}
		}
		return time.Since(begin), nil
	}

	var readyCount atomic.Int32
	startLine := make(chan struct{})
	current := atomic.Int64{}
	current.Store(int64(start))

	var firstErr error
	var errOnce sync.Once
	var failed atomic.Bool
	recordErr := func(err error) {
		errOnce.Do(func() { firstErr = err })
		failed.Store(true)
	}

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(workerID int) {
			defer wg.Done()
			readyCount.Add(1)
			<-startLine

			for {
				if failed.Load() {
					return
				}
				id := int(current.Add(1)) - 1
				if id >= end {
					return
				}
				if err := fn(id, workerID); err != nil {
					recordErr(err)
					return
				}
			}
		}(w)
	}

	for int(readyCount.Load()) < numWorkers {
		runtime.Gosched()
	}

	begin := time.Now()
	close(startLine)
	wg.Wait()
	elapsed := time.Since(begin)

	if firstErr != nil {
		return elapsed, errors.Wrap(firstErr, "bench: work failed")
	}
	return elapsed, nil
}
