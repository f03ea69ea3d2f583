package spawn

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
)

//Queue runs jobs with at most Concurrency of them at the same time
type Queue struct {
	Concurrency int //Maximum number of running jobs, the number of CPUs when < 1

	mu   sync.Mutex
	jobs []*Job
}

//Submit adds a job to the queue. Jobs submitted while Run is busy wait for the
//next Run.
func (q *Queue) Submit(j *Job) {
	q.mu.Lock()
	q.jobs = append(q.jobs, j)
	q.mu.Unlock()
}

//Len returns the number of queued jobs
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

//Run starts the queued jobs in submission order, waits for all of them and
//empties the queue. It returns how many jobs succeeded out of how many were
//queued; err holds every failure. Jobs not started when ctx is done count as
//failed.
func (q *Queue) Run(ctx context.Context) (succeeded, total int, err error) {
	q.mu.Lock()
	jobs := q.jobs
	q.jobs = nil
	q.mu.Unlock()

	n := q.Concurrency
	if n < 1 {
		n = runtime.NumCPU()
	}
	sem := make(chan struct{}, n)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		mulErr *multierror.Error
	)
	fail := func(err error) {
		mu.Lock()
		mulErr = multierror.Append(mulErr, err)
		mu.Unlock()
	}

	notStarted := func(i int) (int, int, error) {
		fail(fmt.Errorf("%d jobs not started: %w", len(jobs)-i, ctx.Err()))
		wg.Wait()
		return succeeded, len(jobs), mulErr.ErrorOrNil()
	}
	for i, j := range jobs {
		if ctx.Err() != nil {
			return notStarted(i)
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return notStarted(i)
		}
		if err := j.Start(ctx); err != nil {
			<-sem
			fail(err)
			continue
		}
		wg.Add(1)
		go func(j *Job) {
			defer wg.Done()
			err := j.Wait()
			<-sem
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}(j)
	}
	wg.Wait()
	return succeeded, len(jobs), mulErr.ErrorOrNil()
}
