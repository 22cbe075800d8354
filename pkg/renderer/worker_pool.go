package renderer

import (
	"runtime"
	"sync"
)

// minChunkSize keeps tiny stages from paying the scheduling overhead
const minChunkSize = 256

// chunkTask is one contiguous slice of a stage for a worker to process
type chunkTask struct {
	lo, hi int
	fn     func(lo, hi int)
	done   *sync.WaitGroup
}

// WorkerPool runs data-parallel stages on a fixed set of goroutines.
// Each Run is a barrier: it returns only after every chunk of the stage is finished.
type WorkerPool struct {
	taskQueue  chan chunkTask
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// NewWorkerPool creates and starts a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:  make(chan chunkTask, numWorkers*4),
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}

	return wp
}

// Run splits [0, n) into chunks, hands them to the workers and waits for all of them.
// Run must not be called after Stop.
func (wp *WorkerPool) Run(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if n <= minChunkSize || wp.numWorkers == 1 {
		fn(0, n)
		return
	}

	// Several chunks per worker so uneven lanes (long mesh scans, early misses) balance out
	chunkSize := max(minChunkSize, (n+wp.numWorkers*4-1)/(wp.numWorkers*4))

	var done sync.WaitGroup
	for lo := 0; lo < n; lo += chunkSize {
		done.Add(1)
		wp.taskQueue <- chunkTask{lo: lo, hi: min(lo+chunkSize, n), fn: fn, done: &done}
	}
	done.Wait()
}

// Stop shuts down all workers; safe to call more than once
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue) // No more tasks
		wp.wg.Wait()        // Wait for workers to finish
	})
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		task.fn(task.lo, task.hi)
		task.done.Done()
	}
}
