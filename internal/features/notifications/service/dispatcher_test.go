package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ecodeli/internal/core/cache"
	"ecodeli/internal/features/notifications/domain"
	"ecodeli/internal/features/notifications/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of ports.Sender
type MockSender struct {
	mock.Mock
	name string
}

func (m *MockSender) Name() string { return m.name }

func (m *MockSender) Send(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var noWait = []time.Duration{0, 0, 0}

func newDedupeCache(t *testing.T) (*miniredis.Miniredis, cache.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisAdapterFromClient(client)
}

func testEvent() domain.Event {
	return domain.NewEvent(domain.EventPaymentReleased, "deliverer-1", "", map[string]any{"amount": "17.00"}, time.Now())
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("FansOutToAllSenders", func(t *testing.T) {
		a := &MockSender{name: "a"}
		b := &MockSender{name: "b"}
		event := testEvent()
		a.On("Send", mock.Anything, event).Return(nil).Once()
		b.On("Send", mock.Anything, event).Return(nil).Once()

		d := NewDispatcher([]ports.Sender{a, b}, WithBackoff(noWait))
		require.NoError(t, d.Dispatch(ctx, event))

		a.AssertExpectations(t)
		b.AssertExpectations(t)
	})

	t.Run("RetriesTransientFailure", func(t *testing.T) {
		s := &MockSender{name: "flaky"}
		event := testEvent()
		s.On("Send", mock.Anything, event).Return(errors.New("connection reset")).Twice()
		s.On("Send", mock.Anything, event).Return(nil).Once()

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait))
		require.NoError(t, d.Dispatch(ctx, event))

		s.AssertNumberOfCalls(t, "Send", 3)
	})

	t.Run("GivesUpAfterLastAttempt", func(t *testing.T) {
		s := &MockSender{name: "down"}
		event := testEvent()
		s.On("Send", mock.Anything, event).Return(errors.New("unavailable"))

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait))
		err := d.Dispatch(ctx, event)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "down")
		s.AssertNumberOfCalls(t, "Send", len(noWait))
	})

	t.Run("StopsOnPermanentFailure", func(t *testing.T) {
		s := &MockSender{name: "webhook"}
		event := testEvent()
		s.On("Send", mock.Anything, event).Return(fmt.Errorf("%w: status 400", ports.ErrPermanent)).Once()

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait))
		err := d.Dispatch(ctx, event)

		assert.ErrorIs(t, err, ports.ErrPermanent)
		s.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("OneSenderFailingDoesNotBlockOthers", func(t *testing.T) {
		bad := &MockSender{name: "bad"}
		good := &MockSender{name: "good"}
		event := testEvent()
		bad.On("Send", mock.Anything, event).Return(fmt.Errorf("%w: gone", ports.ErrPermanent))
		good.On("Send", mock.Anything, event).Return(nil).Once()

		d := NewDispatcher([]ports.Sender{bad, good}, WithBackoff(noWait))
		err := d.Dispatch(ctx, event)

		assert.Error(t, err)
		good.AssertExpectations(t)
	})
}

func TestDispatcher_Dedupe(t *testing.T) {
	ctx := context.Background()

	t.Run("SkipsDuplicateEvent", func(t *testing.T) {
		_, c := newDedupeCache(t)
		s := &MockSender{name: "log"}
		event := testEvent()
		s.On("Send", mock.Anything, event).Return(nil).Once()

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait), WithDedupe(c, time.Hour))
		require.NoError(t, d.Dispatch(ctx, event))
		require.NoError(t, d.Dispatch(ctx, event))

		s.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("SkipsSameChangeEmittedTwice", func(t *testing.T) {
		_, c := newDedupeCache(t)
		s := &MockSender{name: "log"}
		s.On("Send", mock.Anything, mock.Anything).Return(nil)

		key := domain.Key("delivery-1", "IN_TRANSIT")
		first := domain.NewEvent(domain.EventStatusChanged, "client-1", key, map[string]any{"status": "IN_TRANSIT"}, time.Now())
		again := domain.NewEvent(domain.EventStatusChanged, "client-1", key, map[string]any{"status": "IN_TRANSIT"}, time.Now().Add(time.Second))
		other := domain.NewEvent(domain.EventStatusChanged, "deliverer-1", key, map[string]any{"status": "IN_TRANSIT"}, time.Now())
		require.Equal(t, first.ID, again.ID)

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait), WithDedupe(c, time.Hour))
		require.NoError(t, d.Dispatch(ctx, first))
		require.NoError(t, d.Dispatch(ctx, again))
		require.NoError(t, d.Dispatch(ctx, other))

		s.AssertNumberOfCalls(t, "Send", 2)
		s.AssertCalled(t, "Send", mock.Anything, first)
		s.AssertCalled(t, "Send", mock.Anything, other)
		s.AssertNotCalled(t, "Send", mock.Anything, again)
	})

	t.Run("ClaimExpires", func(t *testing.T) {
		mr, c := newDedupeCache(t)
		s := &MockSender{name: "log"}
		event := testEvent()
		s.On("Send", mock.Anything, event).Return(nil)

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait), WithDedupe(c, time.Minute))
		require.NoError(t, d.Dispatch(ctx, event))
		mr.FastForward(2 * time.Minute)
		require.NoError(t, d.Dispatch(ctx, event))

		s.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("ReleasesClaimWhenAllSendersFail", func(t *testing.T) {
		mr, c := newDedupeCache(t)
		s := &MockSender{name: "webhook"}
		event := testEvent()
		s.On("Send", mock.Anything, event).Return(fmt.Errorf("%w: 404", ports.ErrPermanent)).Once()
		s.On("Send", mock.Anything, event).Return(nil).Once()

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait), WithDedupe(c, time.Hour))
		require.Error(t, d.Dispatch(ctx, event))
		assert.False(t, mr.Exists(dedupeKeyPrefix+event.ID.String()))

		require.NoError(t, d.Dispatch(ctx, event))
		assert.True(t, mr.Exists(dedupeKeyPrefix+event.ID.String()))
		s.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("SendsWhenCacheUnavailable", func(t *testing.T) {
		mr, c := newDedupeCache(t)
		mr.Close()
		s := &MockSender{name: "log"}
		event := testEvent()
		s.On("Send", mock.Anything, event).Return(nil).Once()

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait), WithDedupe(c, time.Hour))
		require.NoError(t, d.Dispatch(ctx, event))

		s.AssertExpectations(t)
	})
}

func TestDispatcher_Run(t *testing.T) {
	t.Run("ProcessesUntilCancelled", func(t *testing.T) {
		var sent atomic.Int32
		s := &MockSender{name: "log"}
		s.On("Send", mock.Anything, mock.Anything).Run(func(mock.Arguments) { sent.Add(1) }).Return(nil)

		q := NewQueue(10)
		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			d.Run(ctx, q.Events(), 2)
			close(done)
		}()

		for i := 0; i < 5; i++ {
			require.NoError(t, q.Notify(context.Background(), testEvent()))
		}
		require.Eventually(t, func() bool {
			return sent.Load() == 5 && q.Len() == 0
		}, time.Second, 5*time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})

	t.Run("DrainsBufferedEventsOnShutdown", func(t *testing.T) {
		s := &MockSender{name: "log"}
		s.On("Send", mock.Anything, mock.Anything).Return(nil)

		q := NewQueue(10)
		for i := 0; i < 3; i++ {
			require.NoError(t, q.Notify(context.Background(), testEvent()))
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d := NewDispatcher([]ports.Sender{s}, WithBackoff(noWait))
		d.Run(ctx, q.Events(), 1)

		s.AssertNumberOfCalls(t, "Send", 3)
		assert.Equal(t, 0, q.Len())
	})
}
