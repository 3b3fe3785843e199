package utils

import (
	"context"
	"runtime"
	"sync"
)

const (
	MaxWorkers       = 32
	WorkerBufferSize = 4
)

// WorkerPool runs handler over submitted tasks on a fixed number of goroutines.
// Once ctx is cancelled, Submit drops tasks and workers exit.
type WorkerPool[T any] struct {
	workers   int
	ctx       context.Context
	wg        sync.WaitGroup
	taskQueue chan T
	handler   func(T)
}

func NewWorkerPool[T any](ctx context.Context, workers int, handler func(T)) *WorkerPool[T] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return &WorkerPool[T]{
		workers:   workers,
		ctx:       ctx,
		taskQueue: make(chan T, workers*WorkerBufferSize),
		handler:   handler,
	}
}

func (p *WorkerPool[T]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool[T]) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			p.handler(task)
		}
	}
}

// Submit queues task, blocking while the queue is full. It reports false if
// the pool's context was cancelled first.
func (p *WorkerPool[T]) Submit(task T) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.taskQueue <- task:
		return true
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (p *WorkerPool[T]) Stop() {
	close(p.taskQueue)
	p.wg.Wait()
}

// ParallelMap applies fn to every item on a pool of workers and returns the
// results in input order. Items skipped because ctx was cancelled keep the
// zero value; the caller checks ctx.Err().
func ParallelMap[T, R any](ctx context.Context, workers int, items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	type job struct {
		i    int
		item T
	}
	pool := NewWorkerPool(ctx, workers, func(j job) {
		results[j.i] = fn(j.item)
	})
	pool.Start()
	for i, item := range items {
		if !pool.Submit(job{i: i, item: item}) {
			break
		}
	}
	pool.Stop()
	return results
}
