package worker

import (
	"context"
	"log"
	"sync"
)

// Task is one unit of blocking work, e.g. an interactive capture session.
type Task func(ctx context.Context)

// Pool is a fixed-size worker pool with a 1-slot input queue (strict
// back-pressure). Interactive sessions use a single worker so only one
// overlay or dialog flow runs at a time.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
	once sync.Once
}

type job struct {
	ctx  context.Context
	name string
	run  Task
}

// New creates a worker pool. Size defaults to 1 when size<=0. Queue is 1 slot.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				p.runJob(j)
			}
		}()
	}
}

func (p *Pool) runJob(j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Worker: PANIC in %s: %v", j.name, r)
		}
	}()
	if err := j.ctx.Err(); err != nil {
		log.Printf("Worker: skipping %s: %v", j.name, err)
		return
	}
	log.Printf("Worker: starting %s", j.name)
	j.run(j.ctx)
	log.Printf("Worker: %s finished", j.name)
}

// Submit enqueues a task if the single-slot queue is free. Returns false if
// dropped.
func (p *Pool) Submit(ctx context.Context, name string, run Task) bool {
	select {
	case p.jobs <- job{ctx: ctx, name: name, run: run}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.jobs) })
	p.wg.Wait()
}
