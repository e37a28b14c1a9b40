package service

import (
	"errors"
	"fmt"
	"time"

	"ecodeli/internal/core/metrics"
	"ecodeli/internal/features/deliveries/domain"

	"github.com/shopspring/decimal"
)

// Options holds the settings shared by the delivery services.
// Zero values fall back to safe defaults in withDefaults.
type Options struct {
	// TxTimeout bounds each store transaction.
	TxTimeout time.Duration
	// CodeTTL is the validation code lifetime. Zero disables expiry.
	CodeTTL time.Duration
	// CommissionRate is applied to the price when a delivery is created.
	CommissionRate decimal.Decimal
	// PublicBaseURL prefixes follow-up action links.
	PublicBaseURL string
	// Now is the clock. Defaults to time.Now in UTC.
	Now func() time.Time
	// GenerateCode issues validation codes. Defaults to domain.GenerateCode.
	GenerateCode domain.CodeGenerator
	// Metrics receives outcome counters. Defaults to a no-op sink.
	Metrics metrics.Sink
}

const defaultTxTimeout = 5 * time.Second

func (o Options) withDefaults() Options {
	if o.TxTimeout <= 0 {
		o.TxTimeout = defaultTxTimeout
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.GenerateCode == nil {
		o.GenerateCode = domain.GenerateCode
	}
	if o.Metrics == nil {
		o.Metrics = metrics.NewNoopSink()
	}
	return o
}

// isDomainError reports whether err is a business outcome rather than an infrastructure failure.
func isDomainError(err error) bool {
	var precondition *domain.PreconditionError
	var transition *domain.TransitionError
	switch {
	case errors.As(err, &precondition), errors.As(err, &transition):
		return true
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidCodeFormat),
		errors.Is(err, domain.ErrIncorrectCode),
		errors.Is(err, domain.ErrExpiredCode),
		errors.Is(err, domain.ErrAlreadyAssigned),
		errors.Is(err, domain.ErrAnnouncementClosed),
		errors.Is(err, domain.ErrInvalidAnnouncement):
		return true
	}
	return false
}

// wrap leaves business errors untouched and wraps everything else with the failed operation.
func wrap(op string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return fmt.Errorf("service: failed to %s: %w", op, err)
}
