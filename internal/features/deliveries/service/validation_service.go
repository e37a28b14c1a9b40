package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ecodeli/internal/core/logger"
	"ecodeli/internal/core/metrics"
	"ecodeli/internal/features/deliveries/domain"
	"ecodeli/internal/features/deliveries/ports"
	notifications "ecodeli/internal/features/notifications/domain"

	"go.uber.org/zap"
)

// ValidationServiceImpl implements ports.ValidationService.
type ValidationServiceImpl struct {
	store    ports.Store
	notifier ports.Notifier
	opts     Options
	log      *zap.Logger
}

// NewValidationService creates a new ValidationServiceImpl.
func NewValidationService(store ports.Store, notifier ports.Notifier, opts Options) *ValidationServiceImpl {
	return &ValidationServiceImpl{
		store:    store,
		notifier: notifier,
		opts:     opts.withDefaults(),
		log:      logger.Named("validation"),
	}
}

// Status reports whether the client can validate the announcement's delivery right now.
func (s *ValidationServiceImpl) Status(ctx context.Context, announcementID, clientID string) (*domain.ValidationStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var status *domain.ValidationStatus
	err := s.store.View(ctx, func(ctx context.Context, tx ports.Tx) error {
		a, d, err := loadOwned(ctx, tx, announcementID, clientID)
		if err != nil {
			return err
		}

		stage := domain.StageOf(d)
		eligibility := stage.Eligibility()
		g := eligibility.Guidance()

		status = &domain.ValidationStatus{
			AnnouncementID: a.ID,
			Eligibility:    eligibility,
			CanValidate:    eligibility.CanValidate(),
			Reason:         g.Reason,
			NextStep:       g.NextStep,
			Instructions:   g.Instructions,
			Delivery:       d.Summary(),
		}
		if d != nil {
			deliverer := d.Deliverer
			status.Deliverer = &deliverer
		}
		if ready, ok := stage.(domain.ReadyStage); ok {
			status.CodeExpiresAt = s.expiresAt(ready.CodeIssuedAt)
		}
		return nil
	})
	if err != nil {
		return nil, wrap("get validation status", err)
	}
	return status, nil
}

// Validate checks the submitted code and, on a match, delivers the delivery, completes the
// announcement and releases the payment in one transaction.
func (s *ValidationServiceImpl) Validate(ctx context.Context, in domain.ValidateInput) (*domain.ValidationResult, error) {
	if !domain.ValidCodeFormat(in.Code) {
		s.opts.Metrics.ValidationAttempt(metrics.ValidationInvalidFormat)
		return nil, domain.ErrInvalidCodeFormat
	}

	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var (
		result   *domain.ValidationResult
		rejected *domain.Delivery
	)
	start := time.Now()
	err := s.store.WithTransaction(txCtx, func(ctx context.Context, tx ports.Tx) error {
		result, rejected = nil, nil

		a, d, err := loadOwned(ctx, tx, in.AnnouncementID, in.ClientID)
		if err != nil {
			return err
		}

		stage := domain.StageOf(d)
		ready, ok := stage.(domain.ReadyStage)
		if !ok {
			return &domain.PreconditionError{Eligibility: stage.Eligibility()}
		}

		if subtle.ConstantTimeCompare([]byte(ready.Code), []byte(in.Code)) != 1 {
			rejected = d
			return domain.ErrIncorrectCode
		}

		now := s.opts.Now()
		if d.CodeExpired(now, s.opts.CodeTTL) {
			return domain.ErrExpiredCode
		}

		if err := d.Apply(domain.EventConfirmDelivery, now, nil); err != nil {
			return err
		}
		d.Proof = &domain.ValidationProof{
			Location:    in.Location,
			Signature:   in.Signature,
			ProofPhoto:  in.ProofPhoto,
			Notes:       in.Notes,
			ValidatedAt: now,
			ValidatedBy: in.ClientID,
		}
		a.SetStatus(domain.AnnouncementCompleted, now)

		payment, err := tx.GetPaymentByDelivery(ctx, d.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			payment = nil
		case err != nil:
			return err
		default:
			if err := payment.Release(now); err != nil {
				return fmt.Errorf("release payment %s: %w", payment.ID, err)
			}
			if err := tx.SavePayment(ctx, payment); err != nil {
				return err
			}
		}

		if err := tx.SaveDelivery(ctx, d); err != nil {
			return err
		}
		if err := tx.SaveAnnouncement(ctx, a); err != nil {
			return err
		}

		result = s.buildResult(a, d, payment, now)
		return nil
	})
	s.recordTransaction("validate", start, err)
	s.recordAttempt(err)

	if err != nil {
		if errors.Is(err, domain.ErrIncorrectCode) && rejected != nil {
			s.notify(ctx, notifications.EventValidationFailed, rejected.Deliverer.ID, codeKey(rejected.ID, rejected.CodeIssuedAt), map[string]any{
				"announcementId": rejected.AnnouncementID,
				"deliveryId":     rejected.ID,
			})
		}
		return nil, wrap("validate delivery", err)
	}

	s.log.Info("delivery validated",
		zap.String("announcement_id", result.Announcement.ID),
		zap.String("delivery_id", result.Delivery.ID),
	)
	s.emitValidated(ctx, result)
	return result, nil
}

// RevealCode returns the current validation code to the announcement's author.
func (s *ValidationServiceImpl) RevealCode(ctx context.Context, announcementID, clientID string) (*domain.CodeView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var view *domain.CodeView
	err := s.store.View(ctx, func(ctx context.Context, tx ports.Tx) error {
		a, d, err := loadOwned(ctx, tx, announcementID, clientID)
		if err != nil {
			return err
		}
		stage := domain.StageOf(d)
		ready, ok := stage.(domain.ReadyStage)
		if !ok {
			return &domain.PreconditionError{Eligibility: stage.Eligibility()}
		}
		view = s.codeView(a.ID, ready.DeliveryID, ready.Code, ready.CodeIssuedAt)
		return nil
	})
	if err != nil {
		return nil, wrap("reveal validation code", err)
	}
	return view, nil
}

// RegenerateCode replaces the validation code of a delivery that is ready for validation.
func (s *ValidationServiceImpl) RegenerateCode(ctx context.Context, announcementID, clientID string) (*domain.CodeView, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var view *domain.CodeView
	start := time.Now()
	err := s.store.WithTransaction(txCtx, func(ctx context.Context, tx ports.Tx) error {
		a, d, err := loadOwned(ctx, tx, announcementID, clientID)
		if err != nil {
			return err
		}
		now := s.opts.Now()
		if err := d.RegenerateCode(now, s.opts.GenerateCode); err != nil {
			return err
		}
		if err := tx.SaveDelivery(ctx, d); err != nil {
			return err
		}
		view = s.codeView(a.ID, d.ID, d.ValidationCode, now)
		return nil
	})
	s.recordTransaction("regenerate_code", start, err)
	if err != nil {
		return nil, wrap("regenerate validation code", err)
	}

	s.notify(ctx, notifications.EventCodeRegenerated, clientID, codeKey(view.DeliveryID, &view.IssuedAt), map[string]any{
		"announcementId": view.AnnouncementID,
		"deliveryId":     view.DeliveryID,
	})
	return view, nil
}

// loadOwned loads the announcement, checks that clientID wrote it and loads its delivery.
// The delivery is nil when no deliverer has accepted yet.
func loadOwned(ctx context.Context, repo ports.DeliveryRepository, announcementID, clientID string) (*domain.Announcement, *domain.Delivery, error) {
	a, err := repo.GetAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, nil, err
	}
	if !a.OwnedBy(clientID) {
		return nil, nil, domain.ErrForbidden
	}

	d, err := repo.GetDeliveryByAnnouncement(ctx, a.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return a, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return a, d, nil
}

func (s *ValidationServiceImpl) buildResult(a *domain.Announcement, d *domain.Delivery, p *domain.Payment, now time.Time) *domain.ValidationResult {
	base := strings.TrimRight(s.opts.PublicBaseURL, "/")
	return &domain.ValidationResult{
		Validation: domain.ValidationSummary{
			ValidatedAt:       now,
			FinalPrice:        d.Price,
			Commission:        d.Commission,
			DelivererEarnings: d.Earnings(),
			Currency:          a.Currency,
		},
		Announcement: a,
		Delivery:     d,
		Payment:      p,
		NextSteps: []string{
			"Rate your deliverer to help other clients.",
			"Download your invoice for your records.",
		},
		Actions: domain.FollowUpActions{
			RateDeliverer:   fmt.Sprintf("%s/deliveries/%s/rating", base, d.ID),
			DownloadInvoice: fmt.Sprintf("%s/announcements/%s/invoice", base, a.ID),
		},
	}
}

func (s *ValidationServiceImpl) codeView(announcementID, deliveryID, code string, issuedAt time.Time) *domain.CodeView {
	return &domain.CodeView{
		AnnouncementID: announcementID,
		DeliveryID:     deliveryID,
		Code:           code,
		IssuedAt:       issuedAt,
		ExpiresAt:      s.expiresAt(issuedAt),
	}
}

func (s *ValidationServiceImpl) expiresAt(issuedAt time.Time) *time.Time {
	if s.opts.CodeTTL <= 0 || issuedAt.IsZero() {
		return nil
	}
	t := issuedAt.Add(s.opts.CodeTTL)
	return &t
}

func (s *ValidationServiceImpl) emitValidated(ctx context.Context, r *domain.ValidationResult) {
	payload := map[string]any{
		"announcementId": r.Announcement.ID,
		"deliveryId":     r.Delivery.ID,
		"validatedAt":    r.Validation.ValidatedAt,
	}
	s.notify(ctx, notifications.EventDeliveryValidated, r.Announcement.AuthorID, r.Delivery.ID, payload)
	s.notify(ctx, notifications.EventDeliveryValidated, r.Delivery.Deliverer.ID, r.Delivery.ID, payload)

	if r.Payment != nil {
		s.notify(ctx, notifications.EventPaymentReleased, r.Delivery.Deliverer.ID, r.Payment.ID, map[string]any{
			"deliveryId": r.Delivery.ID,
			"paymentId":  r.Payment.ID,
			"earnings":   r.Validation.DelivererEarnings.StringFixed(2),
			"currency":   r.Validation.Currency,
		})
	}
}

// notify enqueues an event. Failures are logged and never reach the caller.
// key identifies the change so repeated emissions share one event id.
func (s *ValidationServiceImpl) notify(ctx context.Context, eventType notifications.EventType, userID, key string, payload map[string]any) {
	emit(ctx, s.notifier, s.log, notifications.NewEvent(eventType, userID, key, payload, s.opts.Now()))
}

func (s *ValidationServiceImpl) recordTransaction(op string, start time.Time, err error) {
	if isDomainError(err) {
		err = nil
	}
	s.opts.Metrics.TransactionCompleted(op, time.Since(start), err)
}

func (s *ValidationServiceImpl) recordAttempt(err error) {
	var precondition *domain.PreconditionError
	outcome := metrics.ValidationSuccess
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrIncorrectCode):
		outcome = metrics.ValidationIncorrectCode
	case errors.Is(err, domain.ErrExpiredCode):
		outcome = metrics.ValidationExpiredCode
	case errors.As(err, &precondition):
		outcome = metrics.ValidationPrecondition
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotFound):
		outcome = metrics.ValidationForbidden
	default:
		outcome = metrics.ValidationError
	}
	s.opts.Metrics.ValidationAttempt(outcome)
}

func emit(ctx context.Context, n ports.Notifier, log *zap.Logger, event notifications.Event) {
	if n == nil || event.UserID == "" {
		return
	}
	if err := n.Notify(context.WithoutCancel(ctx), event); err != nil {
		log.Warn("failed to enqueue notification",
			zap.String("event_id", event.ID.String()),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}

// codeKey identifies one issued validation code of a delivery.
func codeKey(deliveryID string, issuedAt *time.Time) string {
	if issuedAt == nil {
		return notifications.Key(deliveryID)
	}
	return notifications.Key(deliveryID, strconv.FormatInt(issuedAt.UnixNano(), 10))
}
