package ports

import (
	"context"

	"ecodeli/internal/features/notifications/domain"
)

// Notifier hands events to the notification dispatcher.
// Notify is fire-and-forget: it must not block on delivery and reports only enqueue failures.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}
