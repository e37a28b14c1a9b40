package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deliverer identifies the person carrying the goods.
type Deliverer struct {
	// ID is the deliverer's user id.
	ID string `json:"id"`
	// Name is the deliverer's public display name.
	Name string `json:"name"`
}

// Location is where the goods were handed over.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// ValidationProof is the evidence recorded when the client confirms receipt.
type ValidationProof struct {
	Location    *Location `json:"location,omitempty"`
	Signature   string    `json:"signature,omitempty"`
	ProofPhoto  string    `json:"proofPhoto,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	ValidatedAt time.Time `json:"validatedAt"`
	ValidatedBy string    `json:"validatedBy"`
}

// Delivery is the fulfillment record of one announcement.
type Delivery struct {
	// ID is the unique identifier of the delivery.
	ID string `json:"id"`
	// AnnouncementID is the announcement this delivery fulfills (1:1).
	AnnouncementID string `json:"announcementId"`
	// Deliverer is the assigned deliverer.
	Deliverer Deliverer `json:"deliverer"`
	// Status is the current lifecycle status.
	Status DeliveryStatus `json:"status"`
	// ValidationCode is the client's shared secret. Never serialized to API responses.
	ValidationCode string `json:"-"`
	// CodeIssuedAt is when ValidationCode was generated.
	CodeIssuedAt *time.Time `json:"-"`
	// PickupAddress is copied from the announcement.
	PickupAddress string `json:"pickupAddress"`
	// DeliveryAddress is copied from the announcement.
	DeliveryAddress string `json:"deliveryAddress"`
	// ScheduledAt is the planned delivery time.
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	// AssignedAt is when the deliverer accepted.
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
	// PickedUpAt is when the goods were collected.
	PickedUpAt *time.Time `json:"pickedUpAt,omitempty"`
	// CompletedAt is when the client validated the delivery.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	// CancelledAt is when the delivery was cancelled.
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	// Price is the amount paid by the client.
	Price decimal.Decimal `json:"price"`
	// Commission is the platform's cut of Price.
	Commission decimal.Decimal `json:"commission"`
	// Proof is set once the delivery is validated.
	Proof *ValidationProof `json:"proof,omitempty"`
	// CreatedAt is when the delivery row was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the last modification time.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDelivery creates the delivery for an announcement accepted by deliverer.
// The returned delivery is already ACCEPTED.
func NewDelivery(a *Announcement, deliverer Deliverer, commissionRate decimal.Decimal, now time.Time) (*Delivery, error) {
	d := &Delivery{
		ID:              uuid.NewString(),
		AnnouncementID:  a.ID,
		Deliverer:       deliverer,
		Status:          StatusPending,
		PickupAddress:   a.PickupAddress,
		DeliveryAddress: a.DeliveryAddress,
		ScheduledAt:     a.ScheduledAt,
		Price:           a.Price,
		Commission:      a.Price.Mul(commissionRate).Round(2),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := d.Apply(EventAccept, now, nil); err != nil {
		return nil, err
	}
	return d, nil
}

// Apply moves the delivery along the status graph and records the timestamps of the step.
// The first START_TRANSIT issues the validation code using gen.
// Terminal transitions clear the code.
func (d *Delivery) Apply(event DeliveryEvent, now time.Time, gen CodeGenerator) error {
	next, err := NextState(d.Status, event)
	if err != nil {
		return err
	}

	switch next {
	case StatusAccepted:
		d.AssignedAt = &now
	case StatusPickedUp:
		d.PickedUpAt = &now
	case StatusInTransit:
		if d.ValidationCode == "" {
			if gen == nil {
				gen = GenerateCode
			}
			d.issueCode(gen, now)
		}
	case StatusDelivered:
		d.CompletedAt = &now
		d.clearCode()
	case StatusCancelled:
		d.CancelledAt = &now
		d.clearCode()
	}

	d.Status = next
	d.UpdatedAt = now
	return nil
}

// RegenerateCode replaces the validation code. Only allowed while the delivery is validatable.
func (d *Delivery) RegenerateCode(now time.Time, gen CodeGenerator) error {
	if !CanValidate(d) {
		return &PreconditionError{Eligibility: StageOf(d).Eligibility()}
	}
	if gen == nil {
		gen = GenerateCode
	}
	d.issueCode(gen, now)
	d.UpdatedAt = now
	return nil
}

// CodeExpired reports whether the code is older than ttl. A zero ttl never expires.
func (d *Delivery) CodeExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || d.CodeIssuedAt == nil {
		return false
	}
	return now.Sub(*d.CodeIssuedAt) > ttl
}

// Earnings is what the deliverer receives once the payment is released.
func (d *Delivery) Earnings() decimal.Decimal {
	return d.Price.Sub(d.Commission)
}

func (d *Delivery) issueCode(gen CodeGenerator, now time.Time) {
	d.ValidationCode = gen()
	d.CodeIssuedAt = &now
}

func (d *Delivery) clearCode() {
	d.ValidationCode = ""
	d.CodeIssuedAt = nil
}

// CanValidate reports whether d is in transit (or out for delivery) with an issued code.
func CanValidate(d *Delivery) bool {
	return d != nil && d.Status.IsValidatable() && d.ValidationCode != ""
}
