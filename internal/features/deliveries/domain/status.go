package domain

import "fmt"

// DeliveryStatus is the lifecycle status of a delivery.
type DeliveryStatus string

const (
	// StatusPending indicates a delivery row exists but the deliverer has not confirmed it.
	StatusPending DeliveryStatus = "PENDING"
	// StatusAccepted indicates the deliverer committed to the delivery.
	StatusAccepted DeliveryStatus = "ACCEPTED"
	// StatusPickedUp indicates the goods were collected at the pickup address.
	StatusPickedUp DeliveryStatus = "PICKED_UP"
	// StatusInTransit indicates the goods are on their way.
	StatusInTransit DeliveryStatus = "IN_TRANSIT"
	// StatusOutForDelivery indicates the deliverer is on the last leg.
	StatusOutForDelivery DeliveryStatus = "OUT_FOR_DELIVERY"
	// StatusDelivered is the successful terminal status, reached only through code validation.
	StatusDelivered DeliveryStatus = "DELIVERED"
	// StatusCancelled is the failed terminal status.
	StatusCancelled DeliveryStatus = "CANCELLED"
)

// DeliveryEvent is an input to the status graph.
type DeliveryEvent string

const (
	EventAccept          DeliveryEvent = "ACCEPT"
	EventPickUp          DeliveryEvent = "PICK_UP"
	EventStartTransit    DeliveryEvent = "START_TRANSIT"
	EventOutForDelivery  DeliveryEvent = "OUT_FOR_DELIVERY"
	EventConfirmDelivery DeliveryEvent = "CONFIRM_DELIVERY"
	EventCancel          DeliveryEvent = "CANCEL"
)

// transitions is the adjacency table of the delivery status graph.
// CANCEL is handled separately: it is legal from every non-terminal status.
var transitions = map[DeliveryStatus]map[DeliveryEvent]DeliveryStatus{
	StatusPending:        {EventAccept: StatusAccepted},
	StatusAccepted:       {EventPickUp: StatusPickedUp},
	StatusPickedUp:       {EventStartTransit: StatusInTransit},
	StatusInTransit:      {EventOutForDelivery: StatusOutForDelivery, EventConfirmDelivery: StatusDelivered},
	StatusOutForDelivery: {EventConfirmDelivery: StatusDelivered},
}

// IsValid reports whether s is one of the known statuses.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsValidatable reports whether a delivery in status s may be confirmed with its code.
func (s DeliveryStatus) IsValidatable() bool {
	return s == StatusInTransit || s == StatusOutForDelivery
}

// TransitionError reports an event that is not allowed from the current status.
type TransitionError struct {
	From  DeliveryStatus
	Event DeliveryEvent
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal delivery transition: %s from %s", e.Event, e.From)
}

// Unwrap lets callers match with errors.Is(err, ErrIllegalTransition).
func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// NextState returns the status reached by applying event to current.
// It has no side effects.
func NextState(current DeliveryStatus, event DeliveryEvent) (DeliveryStatus, error) {
	if !current.IsValid() {
		return current, &TransitionError{From: current, Event: event}
	}
	if event == EventCancel {
		if current.IsTerminal() {
			return current, &TransitionError{From: current, Event: event}
		}
		return StatusCancelled, nil
	}
	next, ok := transitions[current][event]
	if !ok {
		return current, &TransitionError{From: current, Event: event}
	}
	return next, nil
}
