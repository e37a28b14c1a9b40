package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType names what happened.
type EventType string

const (
	// EventDeliveryValidated is sent to both parties when the client confirms receipt.
	EventDeliveryValidated EventType = "delivery.validated"
	// EventValidationFailed is sent to the deliverer when a wrong code was submitted.
	EventValidationFailed EventType = "delivery.validation_failed"
	// EventPaymentReleased is sent to the deliverer when the payment is completed.
	EventPaymentReleased EventType = "payment.released"
	// EventStatusChanged is sent on every other delivery status change.
	EventStatusChanged EventType = "delivery.status_changed"
	// EventCodeRegenerated is sent to the client when a new validation code is issued.
	EventCodeRegenerated EventType = "delivery.code_regenerated"
)

// Event is a notification addressed to one user.
type Event struct {
	// ID identifies the event across retries and senders.
	ID uuid.UUID `json:"id"`
	// Type is the kind of event.
	Type EventType `json:"type"`
	// UserID is the recipient.
	UserID string `json:"userId"`
	// Payload carries event-specific fields. It must never hold a validation code.
	Payload map[string]any `json:"payload,omitempty"`
	// OccurredAt is when the underlying change was committed.
	OccurredAt time.Time `json:"occurredAt"`
}

// eventNamespace scopes the name-based event ids.
var eventNamespace = uuid.MustParse("6f1c2a8e-3d5b-4f0a-9c71-2b8e4d6a0f13")

// NewEvent builds an event addressed to userID.
// The id is derived from the type, the recipient and key, so re-emitting the same change
// yields the same id and is dropped by the dispatcher. An empty key gets a random id.
func NewEvent(eventType EventType, userID, key string, payload map[string]any, occurredAt time.Time) Event {
	return Event{
		ID:         EventID(eventType, userID, key),
		Type:       eventType,
		UserID:     userID,
		Payload:    payload,
		OccurredAt: occurredAt.UTC(),
	}
}

// EventID returns the id NewEvent assigns.
func EventID(eventType EventType, userID, key string) uuid.UUID {
	if key == "" {
		return uuid.New()
	}
	name := strings.Join([]string{string(eventType), userID, key}, "|")
	return uuid.NewSHA1(eventNamespace, []byte(name))
}

// Key joins the parts identifying one logical change.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}
