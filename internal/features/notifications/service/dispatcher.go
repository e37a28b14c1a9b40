package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ecodeli/internal/core/cache"
	"ecodeli/internal/core/logger"
	"ecodeli/internal/core/metrics"
	"ecodeli/internal/features/notifications/domain"
	"ecodeli/internal/features/notifications/ports"

	"go.uber.org/zap"
)

var defaultBackoff = []time.Duration{
	0,
	500 * time.Millisecond,
	2 * time.Second,
	10 * time.Second,
}

// DrainTimeout is the maximum time to wait for buffered events during shutdown.
const DrainTimeout = 30 * time.Second

const dedupeKeyPrefix = "ecodeli:notification:"

// Dispatcher fans queued events out to every configured sender.
// Each event id is claimed in the dedupe cache so redelivered events are sent once.
type Dispatcher struct {
	senders      []ports.Sender
	dedupe       cache.Cache // optional, nil = disabled
	dedupeTTL    time.Duration
	backoff      []time.Duration
	drainTimeout time.Duration
	metrics      metrics.Sink
	log          *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDedupe enables at-most-once delivery per event id using c.
func WithDedupe(c cache.Cache, ttl time.Duration) Option {
	return func(d *Dispatcher) {
		d.dedupe = c
		d.dedupeTTL = ttl
	}
}

// WithBackoff replaces the retry schedule. Its length is the attempt count per sender.
func WithBackoff(backoff []time.Duration) Option {
	return func(d *Dispatcher) {
		if len(backoff) > 0 {
			d.backoff = backoff
		}
	}
}

// WithDrainTimeout overrides DrainTimeout.
func WithDrainTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.drainTimeout = timeout }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(sink metrics.Sink) Option {
	return func(d *Dispatcher) { d.metrics = sink }
}

// NewDispatcher creates a dispatcher for the given senders.
func NewDispatcher(senders []ports.Sender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		senders:      senders,
		backoff:      defaultBackoff,
		drainTimeout: DrainTimeout,
		metrics:      metrics.NewNoopSink(),
		log:          logger.Named("dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run starts workers goroutines consuming ch and blocks until all of them return.
// After ctx is cancelled the remaining buffered events are drained.
func (d *Dispatcher) Run(ctx context.Context, ch <-chan domain.Event, workers int) {
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.work(ctx, ch)
		}()
	}
	wg.Wait()
}

func (d *Dispatcher) work(ctx context.Context, ch <-chan domain.Event) {
	for {
		select {
		case <-ctx.Done():
			d.drain(ch)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.metrics.NotificationQueueDepth(len(ch))
			if err := d.Dispatch(ctx, event); err != nil {
				d.log.Error("dispatch failed",
					zap.String("event_id", event.ID.String()),
					zap.String("type", string(event.Type)),
					zap.Error(err),
				)
			}
		}
	}
}

// drain processes events still buffered after shutdown with a fresh context.
func (d *Dispatcher) drain(ch <-chan domain.Event) {
	drainCtx, cancel := context.WithTimeout(context.Background(), d.drainTimeout)
	defer cancel()

	count := 0
	defer func() {
		if count > 0 {
			d.log.Info("drain complete", zap.Int("processed", count))
		}
	}()

	for {
		select {
		case <-drainCtx.Done():
			d.log.Warn("drain timeout", zap.Int("processed", count), zap.Int("remaining", len(ch)))
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.Dispatch(drainCtx, event); err != nil {
				d.log.Error("drain dispatch failed", zap.String("event_id", event.ID.String()), zap.Error(err))
			}
			count++
		default:
			return
		}
	}
}

// Dispatch sends one event through every sender.
// A duplicate event id is skipped. When every sender fails the dedupe claim is
// released so a later redelivery can try again.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.Event) error {
	claimed, err := d.claim(ctx, event)
	if err != nil {
		return err
	}
	if !claimed {
		d.log.Debug("duplicate notification skipped", zap.String("event_id", event.ID.String()))
		d.metrics.NotificationSent("dedupe", metrics.NotificationDuplicate, 0)
		return nil
	}

	var errs []error
	for _, sender := range d.senders {
		if err := d.sendWithRetry(ctx, sender, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sender.Name(), err))
		}
	}

	if len(errs) > 0 && len(errs) == len(d.senders) {
		d.release(event)
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) claim(ctx context.Context, event domain.Event) (bool, error) {
	if d.dedupe == nil {
		return true, nil
	}
	created, err := d.dedupe.SetNX(ctx, dedupeKeyPrefix+event.ID.String(), []byte(event.Type), d.dedupeTTL)
	if err != nil {
		// Sending twice beats not sending at all.
		d.log.Warn("dedupe unavailable, sending anyway", zap.String("event_id", event.ID.String()), zap.Error(err))
		return true, nil
	}
	return created, nil
}

func (d *Dispatcher) release(event domain.Event) {
	if d.dedupe == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.dedupe.Delete(ctx, dedupeKeyPrefix+event.ID.String()); err != nil {
		d.log.Warn("failed to release dedupe claim", zap.String("event_id", event.ID.String()), zap.Error(err))
	}
}

func (d *Dispatcher) sendWithRetry(ctx context.Context, sender ports.Sender, event domain.Event) error {
	var lastErr error

	for attempt, wait := range d.backoff {
		if attempt > 0 {
			d.metrics.NotificationSent(sender.Name(), metrics.NotificationRetried, 0)
		}
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		start := time.Now()
		lastErr = sender.Send(ctx, event)
		if lastErr == nil {
			d.metrics.NotificationSent(sender.Name(), metrics.NotificationDelivered, time.Since(start))
			return nil
		}

		d.log.Warn("notification attempt failed",
			zap.String("sender", sender.Name()),
			zap.String("event_id", event.ID.String()),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)

		if errors.Is(lastErr, ports.ErrPermanent) {
			break
		}
	}

	d.metrics.NotificationSent(sender.Name(), metrics.NotificationFailed, 0)
	return lastErr
}
