package worker

import (
	"context"
	"sync"

	"github.com/mr1hm/go-hazard-tools/internal/models"
)

type ProcessFunc func(ctx context.Context, h *models.Hazard) error

// Pool runs hazard-record jobs on a fixed set of goroutines behind a bounded
// queue. The bulk importer feeds it; processing order is not guaranteed.
type Pool struct {
	numWorkers int
	jobs       chan *models.Hazard
	processor  ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, processor ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan *models.Hazard, bufferSize),
		processor:  processor,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case h, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, h)
		}
	}
}

func (p *Pool) Submit(h *models.Hazard) {
	p.jobs <- h
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
