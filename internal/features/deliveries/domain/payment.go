package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement status of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Payment is the monetary settlement tied to a delivery.
type Payment struct {
	// ID is the unique identifier of the payment.
	ID string `json:"id"`
	// DeliveryID links the payment to its delivery.
	DeliveryID string `json:"deliveryId"`
	// Amount is the full price paid by the client.
	Amount decimal.Decimal `json:"amount"`
	// Currency is the ISO 4217 code of Amount.
	Currency string `json:"currency"`
	// Status is PENDING until the delivery is validated or cancelled.
	Status PaymentStatus `json:"status"`
	// CreatedAt is when the payment was opened.
	CreatedAt time.Time `json:"createdAt"`
	// ReleasedAt is when the payment was completed or failed.
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
}

// NewPayment opens a PENDING payment for a delivery.
func NewPayment(d *Delivery, currency string, now time.Time) *Payment {
	return &Payment{
		ID:         uuid.NewString(),
		DeliveryID: d.ID,
		Amount:     d.Price,
		Currency:   currency,
		Status:     PaymentPending,
		CreatedAt:  now,
	}
}

// Release marks the payment COMPLETED. Only the validation gate calls it.
func (p *Payment) Release(now time.Time) error {
	if p.Status != PaymentPending {
		return ErrPaymentNotPending
	}
	p.Status = PaymentCompleted
	p.ReleasedAt = &now
	return nil
}

// Fail marks a pending payment FAILED, e.g. after a cancellation.
func (p *Payment) Fail(now time.Time) error {
	if p.Status != PaymentPending {
		return ErrPaymentNotPending
	}
	p.Status = PaymentFailed
	p.ReleasedAt = &now
	return nil
}
