// Package workerpool provides a bounded goroutine pool with backpressure.
//
// The HTTP service uses one to send welcome mail off the request path:
//
//	pool := workerpool.New("mail", 4)
//	defer pool.Shutdown()
//
//	if err := pool.Submit(func() { _ = sender.Send(msg) }); errors.Is(err, workerpool.ErrPoolFull) {
//	    log.Warn("mail queue full, dropping welcome mail")
//	}
package workerpool

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
)

// ErrPoolFull is returned by Submit when the task queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	name   string
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New starts size workers. The name labels metrics and log lines.
func New(name string, size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		name:  name,
		tasks: make(chan func(), size*2),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		metrics.WorkerJobs.WithLabelValues(p.name, "rejected").Inc()
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is queued.
func (p *Pool) SubmitWait(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- task
	return nil
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
// Safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run executes task, recovering from a panic so the worker survives.
func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			metrics.WorkerJobs.WithLabelValues(p.name, "panic").Inc()
			logger.Error("workerpool: task panicked",
				"pool", p.name,
				"error", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	task()
	metrics.WorkerJobs.WithLabelValues(p.name, "done").Inc()
}
