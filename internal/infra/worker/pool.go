package worker

import (
	"context"
	"errors"
	"log"
	"runtime"
	"sync"
)

// Task is one unit of background work, typically a single broadcast send.
type Task func(ctx context.Context) error

var ErrQueueFull = errors.New("worker queue full")

// Pool fans tasks out to a fixed set of goroutines. Submit never blocks; a
// saturated queue is reported to the caller rather than applying back-pressure
// to the producer loop.
type Pool struct {
	tasks chan Task
	stop  chan struct{}
	wg    sync.WaitGroup
	size  int
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{
		tasks: make(chan Task, size*4),
		stop:  make(chan struct{}),
		size:  size,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case task := <-p.tasks:
			if task == nil {
				continue
			}
			if err := task(ctx); err != nil {
				log.Printf("worker %d task error: %v", id, err)
			}
		}
	}
}

// Stop halts the workers without draining queued tasks.
func (p *Pool) Stop() {
	close(p.stop)
	p.wg.Wait()
}

func (p *Pool) Submit(task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}
