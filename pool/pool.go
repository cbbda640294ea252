// Package pool provides the fixed-size worker pool behind the engine's
// non-blocking operations.
//
// A Pool runs CPU-bound tasks (signing, verification) on a bounded set of
// goroutines so that callers suspend only around the submission boundary.
// Pools are caller-owned: construct one with [New], share it across any
// number of engines, and release it with [Close]. An engine built without
// an explicit pool creates and owns a private one.
package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned by [Pool.Submit] after [Pool.Close].
var ErrClosed = errors.New("worker pool closed")

// Pool is a fixed-size worker pool. The zero value is not usable; construct
// with [New]. All methods are safe for concurrent use.
type Pool struct {
	tasks     chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a pool running size workers. A size of zero or less defaults
// to runtime.GOMAXPROCS(0).
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		tasks: make(chan func()),
		done:  make(chan struct{}),
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.run()
	}

	return p
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.done:
			// drain tasks already handed off before returning
			for {
				select {
				case task := <-p.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Submit hands task to a worker. It blocks until a worker accepts the task,
// the context is cancelled, or the pool is closed. A nil task is ignored.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if p == nil {
		return ErrClosed
	}
	if task == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return ErrClosed
	}
}

// Close stops the workers after the tasks they already accepted finish.
// Close is idempotent; Submit calls racing with Close may still succeed.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}
