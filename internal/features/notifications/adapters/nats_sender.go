package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecodeli/internal/features/notifications/domain"
	"ecodeli/internal/features/notifications/ports"

	"github.com/nats-io/nats.go"
)

const defaultFlushTimeout = 5 * time.Second

// NATSSender publishes events on "<prefix>.<event type>".
type NATSSender struct {
	conn   *nats.Conn
	prefix string
	owned  bool
}

// NewNATSSender connects to url and owns the connection.
func NewNATSSender(url, prefix string) (*NATSSender, error) {
	conn, err := nats.Connect(url, nats.Name("ecodeli-notifier"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	s := NewNATSSenderFromConn(conn, prefix)
	s.owned = true
	return s, nil
}

// NewNATSSenderFromConn publishes on an existing connection. Close leaves it open.
func NewNATSSenderFromConn(conn *nats.Conn, prefix string) *NATSSender {
	return &NATSSender{conn: conn, prefix: prefix}
}

// Name implements ports.Sender.
func (s *NATSSender) Name() string { return "nats" }

// Subject returns the subject an event type is published on.
func (s *NATSSender) Subject(eventType domain.EventType) string {
	if s.prefix == "" {
		return string(eventType)
	}
	return s.prefix + "." + string(eventType)
}

// Send implements ports.Sender. It flushes so a nil error means the server has the message.
func (s *NATSSender) Send(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ports.ErrPermanent, err)
	}

	msg := nats.NewMsg(s.Subject(event.Type))
	msg.Data = data
	msg.Header.Set("Nats-Msg-Id", event.ID.String())

	if err := s.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	// FlushWithContext rejects contexts without a deadline.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultFlushTimeout)
		defer cancel()
	}
	if err := s.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Close drains the connection if this sender opened it.
func (s *NATSSender) Close() error {
	if !s.owned {
		return nil
	}
	return s.conn.Drain()
}
