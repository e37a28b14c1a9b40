package ports

import (
	"context"
	"errors"

	"ecodeli/internal/features/notifications/domain"
)

// ErrPermanent marks a send failure that retrying cannot fix (e.g. a 4xx from a webhook).
var ErrPermanent = errors.New("permanent notification failure")

// Sender delivers an event over one channel (log, webhook, NATS, ...).
// Implementations must be safe for concurrent use.
type Sender interface {
	// Name identifies the channel in logs and metrics.
	Name() string
	// Send delivers the event. Wrap ErrPermanent to stop retries.
	Send(ctx context.Context, event domain.Event) error
}
