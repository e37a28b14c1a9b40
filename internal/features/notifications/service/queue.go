package service

import (
	"context"
	"errors"
	"time"

	"ecodeli/internal/core/metrics"
	"ecodeli/internal/features/notifications/domain"
)

// ErrQueueFull is returned when the queue stays full for the whole emit timeout.
var ErrQueueFull = errors.New("notification queue full")

// DefaultEmitTimeout bounds how long Notify waits for room in the queue.
const DefaultEmitTimeout = 100 * time.Millisecond

// Queue is the in-process buffer between request handlers and the dispatcher.
type Queue struct {
	ch          chan domain.Event
	emitTimeout time.Duration
	metrics     metrics.Sink
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithEmitTimeout overrides DefaultEmitTimeout.
func WithEmitTimeout(d time.Duration) QueueOption {
	return func(q *Queue) { q.emitTimeout = d }
}

// WithQueueMetrics attaches a metrics sink.
func WithQueueMetrics(sink metrics.Sink) QueueOption {
	return func(q *Queue) { q.metrics = sink }
}

// NewQueue creates a queue holding up to size events.
func NewQueue(size int, opts ...QueueOption) *Queue {
	q := &Queue{
		ch:          make(chan domain.Event, size),
		emitTimeout: DefaultEmitTimeout,
		metrics:     metrics.NewNoopSink(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Notify enqueues event. It waits at most the emit timeout and never for delivery itself.
func (q *Queue) Notify(ctx context.Context, event domain.Event) error {
	select {
	case q.ch <- event:
		q.enqueued()
		return nil
	default:
	}

	timer := time.NewTimer(q.emitTimeout)
	defer timer.Stop()

	select {
	case q.ch <- event:
		q.enqueued()
		return nil
	case <-ctx.Done():
		q.metrics.NotificationDropped()
		return ctx.Err()
	case <-timer.C:
		q.metrics.NotificationDropped()
		return ErrQueueFull
	}
}

// Events is the channel consumed by the dispatcher.
func (q *Queue) Events() <-chan domain.Event {
	return q.ch
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.ch)
}

func (q *Queue) enqueued() {
	q.metrics.NotificationEnqueued()
	q.metrics.NotificationQueueDepth(len(q.ch))
}
