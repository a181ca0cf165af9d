package parallel_limiter

import (
	"context"
	"slices"
	"sync"
)

// ParallelLimiter admits at most maxCount concurrent jobs and hands freed
// slots to waiters in arrival order.
type ParallelLimiter struct {
	maxCount int

	mu             sync.Mutex
	currentRunning int

	waiting []chan struct{}
}

func New(count int) *ParallelLimiter {
	return &ParallelLimiter{
		maxCount: max(1, count),
		waiting:  []chan struct{}{},
	}
}

// Start returns a channel that receives once a slot is held. Every
// successful Start must be paired with Finished.
func (p *ParallelLimiter) Start() chan struct{} {
	ch := make(chan struct{}, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentRunning+1 > p.maxCount {
		p.waiting = append(p.waiting, ch)
		return ch
	}
	p.currentRunning++
	ch <- struct{}{}
	return ch
}

// Acquire blocks until a slot is held or ctx is done.
func (p *ParallelLimiter) Acquire(ctx context.Context) error {
	ch := p.Start()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
	}

	p.mu.Lock()
	if i := slices.Index(p.waiting, ch); i >= 0 {
		p.waiting = slices.Delete(p.waiting, i, i+1)
		p.mu.Unlock()
		return ctx.Err()
	}
	p.mu.Unlock()
	// the slot was granted while ctx expired
	p.Finished()
	return ctx.Err()
}

// Finished releases a slot, passing it straight to the oldest waiter if any.
func (p *ParallelLimiter) Finished() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.waiting) > 0 {
		first := p.waiting[0]
		p.waiting = p.waiting[1:]
		first <- struct{}{}
		return
	}
	p.currentRunning--
}

// Stats reports the running and queued job counts.
func (p *ParallelLimiter) Stats() (running, waiting int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentRunning, len(p.waiting)
}

// Capacity is the maximum number of concurrent jobs.
func (p *ParallelLimiter) Capacity() int { return p.maxCount }
