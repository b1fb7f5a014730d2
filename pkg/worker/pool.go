// Package worker provides an asynchronous worker pool that attributes visits
// to bookmarks through a usage recorder and announces credited visits on the
// event stream.
//
// The pool decouples counter updates from the visit sources so that a slow
// store never stalls the HTTP API or a Kafka consumer.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/papercomputeco/marksort/pkg/eventstream"
	"github.com/papercomputeco/marksort/pkg/visit"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// Recorder credits a visited URL to matching bookmarks.
type Recorder interface {
	Record(ctx context.Context, visited string) []string
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Recorder attributes each visit and updates the usage table.
	Recorder Recorder

	// Publisher is the optional event stream for visit.recorded events.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger is the provided slog logger
	Logger *slog.Logger
}

// Pool processes visits asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan visit.Visit
	wg     sync.WaitGroup
	logger *slog.Logger

	// mu guards closed and every send on queue.
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Recorder == nil {
		return nil, errors.New("recorder is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	wp := &Pool{
		config: c,
		queue:  make(chan visit.Visit, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a visit for processing by the worker pool.
// Returns true if enqueued, false if the queue is full or the pool is closed,
// resulting in the visit being dropped
func (p *Pool) Enqueue(v visit.Visit) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warn("visit not queued, pool closed, visit dropped", "url", v.URL, "source", v.Source)
		return false
	}

	select {
	case p.queue <- v:
		p.logger.Debug("visit queued", "url", v.URL, "source", v.Source)
		return true
	default:
		p.logger.Error("visit not queued, queue full, visit dropped", "url", v.URL, "source", v.Source)
		return false
	}
}

// Close signals workers to stop and waits for in-flight visits to drain.
// Call this during graceful shutdown after every visit source has stopped.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

// worker is the inner worker thread that continuously pulls visits off the queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", "worker_id", id)

	for v := range p.queue {
		p.processVisit(v)
	}

	p.logger.Debug("visit worker stopped", "worker_id", id)
}

// processVisit credits a visit and publishes an event when it matched.
func (p *Pool) processVisit(v visit.Visit) {
	ctx := context.Background()

	matched := p.config.Recorder.Record(ctx, v.URL)
	if len(matched) == 0 {
		return
	}

	if p.config.Publisher == nil {
		return
	}

	event := eventstream.NewVisitRecordedEvent(v.URL, v.Source, v.VisitedAt, matched)
	if err := p.config.Publisher.PublishVisit(ctx, event); err != nil {
		p.logger.Warn("failed to publish visit event",
			"url", v.URL,
			"event_id", event.EventID,
			"error", err,
		)
	}
}
