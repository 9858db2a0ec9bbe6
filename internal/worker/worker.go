// Package worker runs a fixed number of goroutines that drain a bounded
// queue of typed jobs.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

type HandlerFunc[T any] func(ctx context.Context, job T) error

// Stats counts jobs handled since the pool was created.
type Stats struct {
	Processed int64
	Failed    int64
}

type Pool[T any] struct {
	name    string
	size    int
	queue   chan T
	handler HandlerFunc[T]
	wg      sync.WaitGroup

	processed atomic.Int64
	failed    atomic.Int64
}

// New returns a pool of size workers (at least one) reading from a queue of
// capacity queueSize. name labels the pool's log lines.
func New[T any](name string, size, queueSize int, handler HandlerFunc[T]) *Pool[T] {
	return &Pool[T]{
		name:    name,
		size:    max(size, 1),
		queue:   make(chan T, max(queueSize, 0)),
		handler: handler,
	}
}

func (p *Pool[T]) Start(ctx context.Context) {
	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go p.run(ctx, i+1)
	}
}

func (p *Pool[T]) run(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			p.processed.Add(1)
			if err := p.handler(ctx, job); err != nil {
				p.failed.Add(1)
				slog.Debug("job failed", "pool", p.name, "worker", id, "error", err)
			}
		}
	}
}

// Submit enqueues job, blocking while the queue is full. It returns false if
// ctx is done first.
func (p *Pool[T]) Submit(ctx context.Context, job T) bool {
	select {
	case p.queue <- job:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *Pool[T]) Stats() Stats {
	return Stats{Processed: p.processed.Load(), Failed: p.failed.Load()}
}

// Stop closes the queue and waits for workers to exit. No Submit may be
// called after Stop.
func (p *Pool[T]) Stop() {
	close(p.queue)
	p.wg.Wait()
}
