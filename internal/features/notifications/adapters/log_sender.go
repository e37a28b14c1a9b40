package adapters

import (
	"context"

	"ecodeli/internal/core/logger"
	"ecodeli/internal/features/notifications/domain"

	"go.uber.org/zap"
)

// LogSender writes notifications to the structured log. It is always enabled.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender creates a LogSender on the global logger.
func NewLogSender() *LogSender {
	return &LogSender{log: logger.Named("notifications")}
}

// Name implements ports.Sender.
func (s *LogSender) Name() string { return "log" }

// Send implements ports.Sender.
func (s *LogSender) Send(_ context.Context, event domain.Event) error {
	s.log.Info("notification",
		zap.String("event_id", event.ID.String()),
		zap.String("type", string(event.Type)),
		zap.String("user_id", event.UserID),
		zap.Any("payload", event.Payload),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
