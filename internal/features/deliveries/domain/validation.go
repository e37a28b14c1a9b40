package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the marketplace role of an authenticated user.
type Role string

const (
	RoleClient    Role = "CLIENT"
	RoleDeliverer Role = "DELIVERER"
	RoleMerchant  Role = "MERCHANT"
	RoleProvider  Role = "PROVIDER"
	RoleAdmin     Role = "ADMIN"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

// ValidateInput is a client's code submission.
type ValidateInput struct {
	AnnouncementID string
	ClientID       string
	Code           string
	Location       *Location
	Signature      string
	ProofPhoto     string
	Notes          string
}

// ValidationStatus answers "can this announcement's delivery be validated now".
// It never carries the validation code.
type ValidationStatus struct {
	AnnouncementID string      `json:"announcementId"`
	Eligibility    Eligibility `json:"eligibility"`
	CanValidate    bool        `json:"canValidate"`
	Reason         string      `json:"reason"`
	NextStep       string      `json:"nextStep"`
	Instructions   []string    `json:"instructions"`
	// CodeExpiresAt is set when a code is issued and a TTL is configured.
	CodeExpiresAt *time.Time       `json:"codeExpiresAt,omitempty"`
	Delivery      *DeliverySummary `json:"delivery,omitempty"`
	Deliverer     *Deliverer       `json:"deliverer,omitempty"`
}

// DeliverySummary is the public view of a delivery.
type DeliverySummary struct {
	ID              string          `json:"id"`
	Status          DeliveryStatus  `json:"status"`
	PickupAddress   string          `json:"pickupAddress"`
	DeliveryAddress string          `json:"deliveryAddress"`
	ScheduledAt     *time.Time      `json:"scheduledAt,omitempty"`
	AssignedAt      *time.Time      `json:"assignedAt,omitempty"`
	PickedUpAt      *time.Time      `json:"pickedUpAt,omitempty"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	Price           decimal.Decimal `json:"price"`
}

// Summary returns the public view of d.
func (d *Delivery) Summary() *DeliverySummary {
	if d == nil {
		return nil
	}
	return &DeliverySummary{
		ID:              d.ID,
		Status:          d.Status,
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		ScheduledAt:     d.ScheduledAt,
		AssignedAt:      d.AssignedAt,
		PickedUpAt:      d.PickedUpAt,
		CompletedAt:     d.CompletedAt,
		Price:           d.Price,
	}
}

// ValidationResult is returned when a delivery has been validated.
type ValidationResult struct {
	Validation   ValidationSummary `json:"validation"`
	Announcement *Announcement     `json:"announcement"`
	Delivery     *Delivery         `json:"delivery"`
	Payment      *Payment          `json:"payment,omitempty"`
	NextSteps    []string          `json:"nextSteps"`
	Actions      FollowUpActions   `json:"actions"`
}

// ValidationSummary holds the settlement figures of a validation.
type ValidationSummary struct {
	ValidatedAt       time.Time       `json:"validatedAt"`
	FinalPrice        decimal.Decimal `json:"finalPrice"`
	Commission        decimal.Decimal `json:"commission"`
	DelivererEarnings decimal.Decimal `json:"delivererEarnings"`
	Currency          string          `json:"currency"`
}

// FollowUpActions links to the collaborators that take over after validation.
type FollowUpActions struct {
	RateDeliverer   string `json:"rateDeliverer"`
	DownloadInvoice string `json:"downloadInvoice"`
}

// CodeView is the client-facing display of the validation code.
type CodeView struct {
	AnnouncementID string     `json:"announcementId"`
	DeliveryID     string     `json:"deliveryId"`
	Code           string     `json:"validationCode"`
	IssuedAt       time.Time  `json:"issuedAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}
