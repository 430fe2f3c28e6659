package pipeline

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned when work is submitted after Close.
var ErrQueueClosed = errors.New("pipeline: queue closed")

// queue serializes image operations onto a single worker goroutine, so at
// most one operation executes at a time regardless of how many callers
// submit concurrently.
type queue struct {
	jobs      chan func()
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func newQueue(depth int) *queue {
	if depth < 0 {
		depth = 0
	}
	q := &queue{
		jobs: make(chan func(), depth),
		done: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *queue) run() {
	defer q.wg.Done()
	for {
		select {
		case job := <-q.jobs:
			job()
		case <-q.done:
			// Drain jobs accepted before close.
			for {
				select {
				case job := <-q.jobs:
					job()
				default:
					return
				}
			}
		}
	}
}

// submit runs fn on the worker goroutine and waits for it to finish. It
// returns early with the context error if ctx is canceled while waiting;
// an accepted job still runs to completion on the worker.
func (q *queue) submit(ctx context.Context, fn func()) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}

	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case q.jobs <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return ErrQueueClosed
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting jobs and waits for accepted work to drain.
func (q *queue) close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
	q.wg.Wait()
}
