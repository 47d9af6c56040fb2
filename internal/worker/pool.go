package worker

import (
	"sync"

	"github.com/elcoders/payment-portal/internal/metrics"
)

type task func()

// Pool is a fixed set of goroutines draining a buffered job channel. The
// offline queue uses it so replays never block an HTTP handler.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
