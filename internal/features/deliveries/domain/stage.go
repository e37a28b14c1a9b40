package domain

import "time"

// Stage is a delivery lifecycle stage carrying only the fields valid in it.
// Build one with StageOf; switch on the concrete type to handle each stage.
type Stage interface {
	Eligibility() Eligibility
	stage()
}

// NoDeliveryStage means no deliverer has accepted the announcement.
type NoDeliveryStage struct{}

// PendingStage is a delivery waiting for the deliverer's confirmation.
type PendingStage struct {
	DeliveryID string
}

// AcceptedStage is a delivery accepted but not yet picked up.
type AcceptedStage struct {
	DeliveryID string
	Deliverer  Deliverer
	AssignedAt time.Time
}

// PickedUpStage is a delivery whose goods were collected but is not on its way yet.
type PickedUpStage struct {
	DeliveryID string
	Deliverer  Deliverer
	PickedUpAt time.Time
}

// ReadyStage is the only stage that accepts a validation code.
type ReadyStage struct {
	DeliveryID   string
	Deliverer    Deliverer
	Status       DeliveryStatus
	Code         string
	CodeIssuedAt time.Time
}

// DeliveredStage is a validated delivery.
type DeliveredStage struct {
	DeliveryID  string
	CompletedAt time.Time
}

// CancelledStage is a cancelled delivery.
type CancelledStage struct {
	DeliveryID  string
	CancelledAt time.Time
}

// UnknownStage covers rows whose status or code is inconsistent.
type UnknownStage struct {
	DeliveryID string
	Status     DeliveryStatus
}

func (NoDeliveryStage) Eligibility() Eligibility { return EligibilityNoDelivery }
func (PendingStage) Eligibility() Eligibility    { return EligibilityPendingAcceptance }
func (AcceptedStage) Eligibility() Eligibility   { return EligibilityAcceptedNotPickedUp }
func (PickedUpStage) Eligibility() Eligibility   { return EligibilityPickedUpNotInTransit }
func (ReadyStage) Eligibility() Eligibility      { return EligibilityReadyForValidation }
func (DeliveredStage) Eligibility() Eligibility  { return EligibilityAlreadyValidated }
func (CancelledStage) Eligibility() Eligibility  { return EligibilityCancelled }
func (UnknownStage) Eligibility() Eligibility    { return EligibilityUnknownStatus }

func (NoDeliveryStage) stage() {}
func (PendingStage) stage()    {}
func (AcceptedStage) stage()   {}
func (PickedUpStage) stage()   {}
func (ReadyStage) stage()      {}
func (DeliveredStage) stage()  {}
func (CancelledStage) stage()  {}
func (UnknownStage) stage()    {}

// StageOf classifies d. A nil delivery is NoDeliveryStage.
func StageOf(d *Delivery) Stage {
	if d == nil {
		return NoDeliveryStage{}
	}

	switch d.Status {
	case StatusPending:
		return PendingStage{DeliveryID: d.ID}
	case StatusAccepted:
		return AcceptedStage{DeliveryID: d.ID, Deliverer: d.Deliverer, AssignedAt: deref(d.AssignedAt)}
	case StatusPickedUp:
		return PickedUpStage{DeliveryID: d.ID, Deliverer: d.Deliverer, PickedUpAt: deref(d.PickedUpAt)}
	case StatusInTransit, StatusOutForDelivery:
		if !CanValidate(d) {
			return UnknownStage{DeliveryID: d.ID, Status: d.Status}
		}
		return ReadyStage{
			DeliveryID:   d.ID,
			Deliverer:    d.Deliverer,
			Status:       d.Status,
			Code:         d.ValidationCode,
			CodeIssuedAt: deref(d.CodeIssuedAt),
		}
	case StatusDelivered:
		return DeliveredStage{DeliveryID: d.ID, CompletedAt: deref(d.CompletedAt)}
	case StatusCancelled:
		return CancelledStage{DeliveryID: d.ID, CancelledAt: deref(d.CancelledAt)}
	default:
		return UnknownStage{DeliveryID: d.ID, Status: d.Status}
	}
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
