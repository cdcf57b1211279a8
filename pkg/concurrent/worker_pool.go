package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

type indexed[T any] struct {
	index int
	value T
}

// WorkerPool. fixed number of workers consuming a buffered job queue. jobs are added by a single producer,
// results are returned in the order the jobs were added.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan indexed[T]
	results    chan indexed[G]
	wg         sync.WaitGroup
	numJobs    int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan indexed[T], jobQueueSize),
		results:    make(chan indexed[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- indexed[G]{index: job.index, value: jobFunc(ctx, job.value)}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// AddJob. blocks while the job queue is full.
func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- indexed[T]{index: wp.numJobs, value: job}
	wp.numJobs++
}

// Close. no more jobs will be added.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Wait for every worker to finish, then close the results.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// CollectResults. results in job order. only call after Wait.
// the results channel must have room for every job (jobQueueSize >= number of jobs).
func (wp *WorkerPool[T, G]) CollectResults() []G {
	out := make([]G, wp.numJobs)
	for res := range wp.results {
		out[res.index] = res.value
	}
	return out
}
