package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an announcement, delivery or payment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("not authorized")
	// ErrInvalidCodeFormat is returned for codes that are not exactly 6 ASCII digits.
	ErrInvalidCodeFormat = errors.New("validation code must be exactly 6 digits")
	// ErrIncorrectCode is returned when the submitted code does not match.
	ErrIncorrectCode = errors.New("incorrect validation code")
	// ErrExpiredCode is returned when the code is older than the configured TTL.
	ErrExpiredCode = errors.New("validation code expired")
	// ErrIllegalTransition is wrapped by TransitionError.
	ErrIllegalTransition = errors.New("illegal delivery status transition")
	// ErrAlreadyAssigned is returned when accepting an announcement that already has a delivery.
	ErrAlreadyAssigned = errors.New("announcement already has a delivery")
	// ErrAnnouncementClosed is returned when accepting an announcement that is no longer open.
	ErrAnnouncementClosed = errors.New("announcement is not open")
	// ErrInvalidAnnouncement is returned for announcement drafts that fail validation.
	ErrInvalidAnnouncement = errors.New("invalid announcement")
	// ErrPaymentNotPending is returned when releasing or failing a settled payment.
	ErrPaymentNotPending = errors.New("payment is not pending")
)

// PreconditionError is returned when a delivery is not in a validatable stage.
type PreconditionError struct {
	Eligibility Eligibility
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("delivery not ready for validation: %s", e.Eligibility)
}
