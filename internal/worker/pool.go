package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of goroutines
type Pool struct {
	workers int
}

// NewPool creates a pool with the given number of workers (minimum 1)
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the pool size
func (p *Pool) Workers() int {
	return p.workers
}

type indexedJob struct {
	index int
	job   Job
}

// Run executes every job and returns results in submission order.
// Jobs not started before ctx is cancelled get a cancelledResult.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	queue := make(chan indexedJob)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ij := range queue {
				if err := ctx.Err(); err != nil {
					results[ij.index] = cancelledResult{err: err}
					continue
				}
				results[ij.index] = ij.job.Execute(ctx)
			}
		}()
	}

	for i, job := range jobs {
		queue <- indexedJob{index: i, job: job}
	}
	close(queue)
	wg.Wait()

	return results
}

type cancelledResult struct {
	err error
}

func (r cancelledResult) GetError() error {
	return r.err
}
