// Package worker replays independent move logs in parallel.
//
// Each work item carries its own starting position and move log, and
// each worker builds its own GameState from them. Workers share only
// the channels; duplicate final positions are marked afterwards, in
// item order.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-rules-go/internal/engine"
)

var errPoolStopped = errors.New("worker pool stopped")

// WorkItem represents a move log to be replayed.
type WorkItem struct {
	ID       string
	StartFEN string // empty means the standard starting position
	Moves    []engine.MoveRecord
	Index    int // Original index for tracking
}

// ProcessResult represents the result of replaying a move log.
type ProcessResult struct {
	ID        string
	Index     int
	State     engine.GameState // Last position reached
	Moves     []engine.MoveRecord
	Applied   int  // Moves applied before any error
	Duplicate bool // Final position already reached by an earlier item; see MarkDuplicates
	Error     error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel replay.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool // Early termination
	processed   atomic.Int64
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

// NewPool creates a pool using functional options. processFunc is
// required; the defaults are 1 worker and a buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker replays items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.replay(item)
		p.processed.Add(1)
	}
}

// replay runs processFunc on item. A panic fails that item only.
func (p *Pool) replay(item WorkItem) (result ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ProcessResult{
				ID:    item.ID,
				Index: item.Index,
				Moves: item.Moves,
				Error: fmt.Errorf("game %s: replay panicked: %v", item.ID, r),
			}
		}
	}()
	return p.processFunc(item)
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// SubmitContext submits item unless ctx is done or the pool is stopped
// first. It blocks while the work channel is full.
func (p *Pool) SubmitContext(ctx context.Context, item WorkItem) error {
	if p.IsStopped() {
		return errPoolStopped
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.workChan <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// Processed returns how many items workers have replayed so far.
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
