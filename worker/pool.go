// Package worker runs indexed tasks with a bounded number of goroutines
package worker

import (
	"sync"
)

// Pool runs tasks on at most workers goroutines.
// A pool with one worker runs everything on the calling goroutine.
type Pool struct {
	workers int
	sem     chan struct{}
	wg      sync.WaitGroup
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		sem:     make(chan struct{}, workers),
	}
}

// Workers returns the concurrency limit
func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) Submit(task func()) {
	p.wg.Add(1)
	go func() {
		p.sem <- struct{}{}
		defer func() {
			<-p.sem
			p.wg.Done()
		}()
		task()
	}()
}

func (p *Pool) Wait() {
	p.wg.Wait()
}

// Map calls fn for every index in [0, count) and returns the error of the
// lowest failing index, so the result does not depend on scheduling.
// With one worker, indexes run in order and Map stops at the first error.
func (p *Pool) Map(count int, fn func(i int) error) error {
	if p.workers == 1 {
		for i := 0; i < count; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, count)
	for i := 0; i < count; i++ {
		idx := i
		p.Submit(func() {
			errs[idx] = fn(idx)
		})
	}
	p.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
