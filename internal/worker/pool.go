// Package worker provides a worker pool for decoding FEN lines in parallel.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessindex/internal/position"
)

// WorkItem is one input line to decode.
type WorkItem struct {
	FEN   string
	Index int // Line number in the input, 0-based
}

// ProcessResult is the outcome of decoding one line.
type ProcessResult struct {
	FEN       string
	Index     int
	Position  *position.Position // nil when Error is set
	Duplicate bool               // Position was seen on an earlier line
	Error     error
}

// ProcessFunc decodes a single work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a fixed number of decoding goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	work        chan WorkItem
	results     chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. processFunc is required; by default the pool
// has one worker and a buffer of 10 items.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.work = make(chan WorkItem, p.bufferSize)
	p.results = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for item := range p.work {
		if p.IsStopped() {
			continue // drain without decoding
		}
		p.results <- p.processFunc(item)
	}
}

// Submit queues an item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// Stop tells workers to skip the items still queued. Items already
// being decoded still produce results.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel, waits for the workers and then closes
// the result channel.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	close(p.results)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
