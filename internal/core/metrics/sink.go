package metrics

import "time"

// Sink records service metrics.
// All methods are fire-and-forget: implementations MUST NOT block or propagate errors.
type Sink interface {
	// Validation gate
	ValidationAttempt(outcome string)
	TransactionCompleted(operation string, duration time.Duration, err error)
	TransactionConflict(store string)

	// Lifecycle
	DeliveryTransition(from, to string)

	// Notifications
	NotificationEnqueued()
	NotificationDropped()
	NotificationSent(sender, outcome string, duration time.Duration)
	NotificationQueueDepth(depth int)
}

// Outcome labels for ValidationAttempt.
const (
	ValidationSuccess       = "success"
	ValidationInvalidFormat = "invalid_format"
	ValidationIncorrectCode = "incorrect_code"
	ValidationExpiredCode   = "expired_code"
	ValidationPrecondition  = "precondition"
	ValidationForbidden     = "forbidden"
	ValidationError         = "error"
)

// Outcome labels for NotificationSent.
const (
	NotificationDelivered = "delivered"
	NotificationRetried   = "retried"
	NotificationFailed    = "failed"
	NotificationDuplicate = "duplicate"
)
