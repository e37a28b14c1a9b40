package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnnouncementStatus is the status of a client's delivery request.
type AnnouncementStatus string

const (
	AnnouncementOpen      AnnouncementStatus = "OPEN"
	AnnouncementAssigned  AnnouncementStatus = "ASSIGNED"
	AnnouncementCompleted AnnouncementStatus = "COMPLETED"
	AnnouncementCancelled AnnouncementStatus = "CANCELLED"
)

// Announcement is a client-posted request for a delivery.
type Announcement struct {
	// ID is the unique identifier of the announcement.
	ID string `json:"id"`
	// AuthorID is the client who posted the announcement.
	AuthorID string `json:"authorId"`
	// Title is a short description of the goods.
	Title string `json:"title"`
	// Description carries optional details for deliverers.
	Description string `json:"description,omitempty"`
	// PickupAddress is where the goods are collected.
	PickupAddress string `json:"pickupAddress"`
	// DeliveryAddress is where the goods are handed over.
	DeliveryAddress string `json:"deliveryAddress"`
	// ScheduledAt is the requested delivery time, if any.
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	// Price is what the client pays for the delivery.
	Price decimal.Decimal `json:"price"`
	// Currency is the ISO 4217 code of Price.
	Currency string `json:"currency"`
	// Status is the announcement status.
	Status AnnouncementStatus `json:"status"`
	// CreatedAt is when the announcement was posted.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the last modification time.
	UpdatedAt time.Time `json:"updatedAt"`
}

// AnnouncementDraft is the client input for a new announcement.
type AnnouncementDraft struct {
	Title           string
	Description     string
	PickupAddress   string
	DeliveryAddress string
	ScheduledAt     *time.Time
	Price           decimal.Decimal
	Currency        string
}

// NewAnnouncement validates the draft and returns an OPEN announcement.
func NewAnnouncement(authorID string, draft AnnouncementDraft, now time.Time) (*Announcement, error) {
	switch {
	case authorID == "":
		return nil, fmt.Errorf("%w: author is required", ErrInvalidAnnouncement)
	case strings.TrimSpace(draft.Title) == "":
		return nil, fmt.Errorf("%w: title is required", ErrInvalidAnnouncement)
	case strings.TrimSpace(draft.PickupAddress) == "" || strings.TrimSpace(draft.DeliveryAddress) == "":
		return nil, fmt.Errorf("%w: pickup and delivery addresses are required", ErrInvalidAnnouncement)
	case !draft.Price.IsPositive():
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidAnnouncement)
	}

	currency := strings.ToUpper(strings.TrimSpace(draft.Currency))
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidAnnouncement)
	}

	return &Announcement{
		ID:              uuid.NewString(),
		AuthorID:        authorID,
		Title:           strings.TrimSpace(draft.Title),
		Description:     draft.Description,
		PickupAddress:   draft.PickupAddress,
		DeliveryAddress: draft.DeliveryAddress,
		ScheduledAt:     draft.ScheduledAt,
		Price:           draft.Price.Round(2),
		Currency:        currency,
		Status:          AnnouncementOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// OwnedBy reports whether clientID authored the announcement.
func (a *Announcement) OwnedBy(clientID string) bool {
	return a != nil && clientID != "" && a.AuthorID == clientID
}

// SetStatus moves the announcement to status and bumps UpdatedAt.
func (a *Announcement) SetStatus(status AnnouncementStatus, now time.Time) {
	a.Status = status
	a.UpdatedAt = now
}
