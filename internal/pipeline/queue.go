package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/couchcryptid/storm-incident-reports/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrQueueClosed is returned by ExtractBatch once the queue is closed and drained.
var ErrQueueClosed = errors.New("publish queue closed")

// Queue is a bounded hand-off between request handlers and the publisher.
// Enqueue never blocks: when the buffer is full or the queue is closed the
// report is dropped. It implements BatchExtractor.
type Queue struct {
	ch            chan domain.Report
	flushInterval time.Duration
	clock         clockwork.Clock
	logger        *slog.Logger
	metrics       *observability.Metrics

	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue buffering up to size reports. A partial batch is
// released flushInterval after its first report arrives.
func NewQueue(size int, flushInterval time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Queue {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Queue{
		ch:            make(chan domain.Report, size),
		flushInterval: flushInterval,
		clock:         clock,
		logger:        logger,
		metrics:       metrics,
	}
}

// Enqueue offers a committed report for publication and reports whether it was accepted.
func (q *Queue) Enqueue(r domain.Report) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.drop(r, "closed")
		return false
	}
	select {
	case q.ch <- r:
		q.metrics.PublishQueued.Inc()
		return true
	default:
		q.drop(r, "full")
		return false
	}
}

func (q *Queue) drop(r domain.Report, reason string) {
	q.metrics.PublishDropped.Inc()
	q.logger.Warn("publish queue rejected report", "report_id", r.ID, "reason", reason)
}

// Close stops accepting reports. Reports already queued remain extractable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}

// Len reports how many reports are waiting.
func (q *Queue) Len() int {
	return len(q.ch)
}

// ExtractBatch blocks until at least one report is available, then collects
// up to batchSize reports or whatever arrived within the flush interval.
// It returns ErrQueueClosed when the queue is closed and empty.
func (q *Queue) ExtractBatch(ctx context.Context, batchSize int) ([]domain.Report, error) {
	var first domain.Report
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r, ok := <-q.ch:
		if !ok {
			return nil, ErrQueueClosed
		}
		first = r
	}

	batch := make([]domain.Report, 0, batchSize)
	batch = append(batch, first)
	if len(batch) >= batchSize {
		return batch, nil
	}

	timer := q.clock.NewTimer(q.flushInterval)
	defer timer.Stop()

	for len(batch) < batchSize {
		select {
		case <-ctx.Done():
			return batch, nil
		case <-timer.Chan():
			return batch, nil
		case r, ok := <-q.ch:
			if !ok {
				return batch, nil
			}
			batch = append(batch, r)
		}
	}
	return batch, nil
}
