package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"ecodeli/internal/features/deliveries/adapters"
	"ecodeli/internal/features/deliveries/domain"
	"ecodeli/internal/features/deliveries/ports"
	notifications "ecodeli/internal/features/notifications/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCode = "042137"

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event notifications.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Events returns the events passed to Notify, in call order.
func (m *MockNotifier) Events() []notifications.Event {
	var out []notifications.Event
	for _, c := range m.Calls {
		if c.Method == "Notify" {
			out = append(out, c.Arguments.Get(1).(notifications.Event))
		}
	}
	return out
}

// MockStore is a mock implementation of ports.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockStore) View(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	store      *adapters.RedisStore
	notifier   *MockNotifier
	clock      *fakeClock
	validation *ValidationServiceImpl
	lifecycle  *LifecycleServiceImpl
}

func newTestEnv(t *testing.T, codeTTL time.Duration) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	store := adapters.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = store.Close() })

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	opts := Options{
		TxTimeout:      2 * time.Second,
		CodeTTL:        codeTTL,
		CommissionRate: decimal.RequireFromString("0.15"),
		PublicBaseURL:  "https://app.ecodeli.test/",
		Now:            clock.Now,
		GenerateCode:   func() string { return testCode },
	}

	return &testEnv{
		store:      store,
		notifier:   notifier,
		clock:      clock,
		validation: NewValidationService(store, notifier, opts),
		lifecycle:  NewLifecycleService(store, notifier, opts),
	}
}

var testDeliverer = domain.Deliverer{ID: "deliverer-1", Name: "Sam"}

// announce creates an open announcement by client-1.
func (e *testEnv) announce(t *testing.T) *domain.Announcement {
	t.Helper()
	a, err := e.lifecycle.CreateAnnouncement(context.Background(), "client-1", domain.AnnouncementDraft{
		Title:           "Box of books",
		PickupAddress:   "1 rue de Paris",
		DeliveryAddress: "2 avenue de Lyon",
		Price:           decimal.RequireFromString("20.00"),
	})
	require.NoError(t, err)
	return a
}

// advanceTo drives a fresh announcement's delivery up to status.
func (e *testEnv) advanceTo(t *testing.T, status domain.DeliveryStatus) (*domain.Announcement, *domain.Delivery) {
	t.Helper()
	ctx := context.Background()
	a := e.announce(t)

	d, err := e.lifecycle.Accept(ctx, a.ID, testDeliverer)
	require.NoError(t, err)

	steps := []struct {
		event domain.DeliveryEvent
		until domain.DeliveryStatus
	}{
		{domain.EventPickUp, domain.StatusAccepted},
		{domain.EventStartTransit, domain.StatusPickedUp},
		{domain.EventOutForDelivery, domain.StatusInTransit},
	}
	for _, step := range steps {
		if d.Status == status || step.until != d.Status {
			break
		}
		d, err = e.lifecycle.Advance(ctx, d.ID, testDeliverer.ID, step.event)
		require.NoError(t, err)
	}
	require.Equal(t, status, d.Status)
	return a, d
}

// load reads the persisted announcement, delivery and payment.
func (e *testEnv) load(t *testing.T, announcementID string) (*domain.Announcement, *domain.Delivery, *domain.Payment) {
	t.Helper()
	var (
		a *domain.Announcement
		d *domain.Delivery
		p *domain.Payment
	)
	err := e.store.View(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		var err error
		if a, err = tx.GetAnnouncement(ctx, announcementID); err != nil {
			return err
		}
		if d, err = tx.GetDeliveryByAnnouncement(ctx, announcementID); err != nil {
			return err
		}
		p, err = tx.GetPaymentByDelivery(ctx, d.ID)
		return err
	})
	require.NoError(t, err)
	return a, d, p
}

// forceStatus overwrites the persisted delivery status, bypassing the status graph.
func (e *testEnv) forceStatus(t *testing.T, d *domain.Delivery, status domain.DeliveryStatus) {
	t.Helper()
	err := e.store.WithTransaction(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		stored, err := tx.GetDelivery(ctx, d.ID)
		if err != nil {
			return err
		}
		stored.Status = status
		return tx.SaveDelivery(ctx, stored)
	})
	require.NoError(t, err)
}
