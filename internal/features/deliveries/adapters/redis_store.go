package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecodeli/internal/core/logger"
	"ecodeli/internal/core/metrics"
	"ecodeli/internal/features/deliveries/domain"
	"ecodeli/internal/features/deliveries/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	announcementKeyPrefix = "ecodeli:announcement:"
	deliveryKeyPrefix     = "ecodeli:delivery:"
	paymentKeyPrefix      = "ecodeli:payment:delivery:"

	defaultMaxTxRetries = 10
)

// ErrTooManyConflicts is returned when an optimistic transaction keeps losing to concurrent writers.
var ErrTooManyConflicts = errors.New("store: too many transaction conflicts")

// ErrReadOnly is returned by writes attempted inside View.
var ErrReadOnly = errors.New("store: write in read-only transaction")

func announcementKey(id string) string { return announcementKeyPrefix + id }

func announcementDeliveryKey(announcementID string) string {
	return announcementKeyPrefix + announcementID + ":delivery"
}

func deliveryKey(id string) string { return deliveryKeyPrefix + id }

func paymentKey(deliveryID string) string { return paymentKeyPrefix + deliveryID }

// deliveryRecord is the stored form of a delivery. Unlike the API form it keeps the code.
type deliveryRecord struct {
	domain.Delivery
	ValidationCode string     `json:"validationCode,omitempty"`
	CodeIssuedAt   *time.Time `json:"codeIssuedAt,omitempty"`
}

// RedisStore implements ports.Store on Redis with WATCH/MULTI/EXEC optimistic transactions.
// Every key read inside WithTransaction is watched; writes are buffered and applied atomically.
// When EXEC aborts because a watched key changed, the whole function runs again.
type RedisStore struct {
	client     *redis.Client
	maxRetries int
	metrics    metrics.Sink
	log        *zap.Logger
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithMaxRetries bounds how many times a conflicting transaction is retried.
func WithMaxRetries(n int) RedisStoreOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithStoreMetrics attaches a metrics sink for conflict counts.
func WithStoreMetrics(sink metrics.Sink) RedisStoreOption {
	return func(s *RedisStore) { s.metrics = sink }
}

// NewRedisStore creates a store on client. Close closes the client.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:     client,
		maxRetries: defaultMaxTxRetries,
		metrics:    metrics.NewNoopSink(),
		log:        logger.Named("redis_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTransaction implements ports.Store.
func (s *RedisStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			tx := newRedisTx(rtx, true)
			if err := fn(ctx, tx); err != nil {
				return err
			}
			return tx.commit(ctx, rtx)
		})
		if errors.Is(err, redis.TxFailedErr) {
			s.metrics.TransactionConflict("redis")
			s.log.Debug("transaction conflict, retrying", zap.Int("attempt", attempt))
			continue
		}
		return err
	}
	return ErrTooManyConflicts
}

// View implements ports.Store. Reads are not watched and writes fail with ErrReadOnly.
func (s *RedisStore) View(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	return fn(ctx, newRedisTx(s.client, false))
}

// Ping implements ports.Store.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close implements ports.Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// getter is the read side shared by *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisTx implements ports.Tx. It reads through cmd and keeps writes in memory until commit.
type redisTx struct {
	cmd      getter
	watcher  *redis.Tx
	writable bool
	keys     []string
	writes   map[string][]byte
}

func newRedisTx(cmd getter, writable bool) *redisTx {
	tx := &redisTx{cmd: cmd, writable: writable, writes: make(map[string][]byte)}
	if rtx, ok := cmd.(*redis.Tx); ok {
		tx.watcher = rtx
	}
	return tx
}

func (t *redisTx) get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return v, nil
	}
	if t.watcher != nil {
		if err := t.watcher.Watch(ctx, key).Err(); err != nil {
			return nil, fmt.Errorf("watch %s: %w", key, err)
		}
	}
	data, err := t.cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

func (t *redisTx) set(key string, value []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	if _, ok := t.writes[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.writes[key] = value
	return nil
}

func (t *redisTx) commit(ctx context.Context, rtx *redis.Tx) error {
	if len(t.keys) == 0 {
		return nil
	}
	_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range t.keys {
			pipe.Set(ctx, key, t.writes[key], 0)
		}
		return nil
	})
	return err
}

func (t *redisTx) GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error) {
	data, err := t.get(ctx, announcementKey(id))
	if err != nil {
		return nil, err
	}
	var a domain.Announcement
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal announcement %s: %w", id, err)
	}
	return &a, nil
}

func (t *redisTx) SaveAnnouncement(_ context.Context, a *domain.Announcement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}
	return t.set(announcementKey(a.ID), data)
}

func (t *redisTx) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	data, err := t.get(ctx, deliveryKey(id))
	if err != nil {
		return nil, err
	}
	var rec deliveryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery %s: %w", id, err)
	}
	d := rec.Delivery
	d.ValidationCode = rec.ValidationCode
	d.CodeIssuedAt = rec.CodeIssuedAt
	return &d, nil
}

func (t *redisTx) GetDeliveryByAnnouncement(ctx context.Context, announcementID string) (*domain.Delivery, error) {
	id, err := t.get(ctx, announcementDeliveryKey(announcementID))
	if err != nil {
		return nil, err
	}
	return t.GetDelivery(ctx, string(id))
}

func (t *redisTx) SaveDelivery(_ context.Context, d *domain.Delivery) error {
	data, err := json.Marshal(deliveryRecord{
		Delivery:       *d,
		ValidationCode: d.ValidationCode,
		CodeIssuedAt:   d.CodeIssuedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}
	if err := t.set(deliveryKey(d.ID), data); err != nil {
		return err
	}
	return t.set(announcementDeliveryKey(d.AnnouncementID), []byte(d.ID))
}

func (t *redisTx) GetPaymentByDelivery(ctx context.Context, deliveryID string) (*domain.Payment, error) {
	data, err := t.get(ctx, paymentKey(deliveryID))
	if err != nil {
		return nil, err
	}
	var p domain.Payment
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment for delivery %s: %w", deliveryID, err)
	}
	return &p, nil
}

func (t *redisTx) SavePayment(_ context.Context, p *domain.Payment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}
	return t.set(paymentKey(p.DeliveryID), data)
}
