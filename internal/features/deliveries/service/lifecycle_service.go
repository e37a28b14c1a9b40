package service

import (
	"context"
	"errors"
	"time"

	"ecodeli/internal/core/logger"
	"ecodeli/internal/features/deliveries/domain"
	"ecodeli/internal/features/deliveries/ports"
	notifications "ecodeli/internal/features/notifications/domain"

	"go.uber.org/zap"
)

// LifecycleServiceImpl implements ports.LifecycleService.
type LifecycleServiceImpl struct {
	store    ports.Store
	notifier ports.Notifier
	opts     Options
	log      *zap.Logger
}

// NewLifecycleService creates a new LifecycleServiceImpl.
func NewLifecycleService(store ports.Store, notifier ports.Notifier, opts Options) *LifecycleServiceImpl {
	return &LifecycleServiceImpl{
		store:    store,
		notifier: notifier,
		opts:     opts.withDefaults(),
		log:      logger.Named("lifecycle"),
	}
}

// transition is what a committed lifecycle change tells the notifier.
type transition struct {
	delivery *domain.Delivery
	clientID string
	from     domain.DeliveryStatus
}

// CreateAnnouncement publishes a new OPEN announcement.
func (s *LifecycleServiceImpl) CreateAnnouncement(ctx context.Context, clientID string, draft domain.AnnouncementDraft) (*domain.Announcement, error) {
	a, err := domain.NewAnnouncement(clientID, draft, s.opts.Now())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	start := time.Now()
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx ports.Tx) error {
		return tx.SaveAnnouncement(ctx, a)
	})
	s.recordTransaction("create_announcement", start, err)
	if err != nil {
		return nil, wrap("save announcement", err)
	}
	return a, nil
}

// Accept assigns deliverer to an open announcement. It creates the delivery and its pending payment.
func (s *LifecycleServiceImpl) Accept(ctx context.Context, announcementID string, deliverer domain.Deliverer) (*domain.Delivery, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var t transition
	start := time.Now()
	err := s.store.WithTransaction(txCtx, func(ctx context.Context, tx ports.Tx) error {
		a, err := tx.GetAnnouncement(ctx, announcementID)
		if err != nil {
			return err
		}
		if a.AuthorID == deliverer.ID {
			return domain.ErrForbidden
		}

		existing, err := tx.GetDeliveryByAnnouncement(ctx, a.ID)
		switch {
		case err == nil && existing != nil:
			return domain.ErrAlreadyAssigned
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
		if a.Status != domain.AnnouncementOpen {
			return domain.ErrAnnouncementClosed
		}

		now := s.opts.Now()
		d, err := domain.NewDelivery(a, deliverer, s.opts.CommissionRate, now)
		if err != nil {
			return err
		}
		a.SetStatus(domain.AnnouncementAssigned, now)

		if err := tx.SaveDelivery(ctx, d); err != nil {
			return err
		}
		if err := tx.SavePayment(ctx, domain.NewPayment(d, a.Currency, now)); err != nil {
			return err
		}
		if err := tx.SaveAnnouncement(ctx, a); err != nil {
			return err
		}

		t = transition{delivery: d, clientID: a.AuthorID, from: domain.StatusPending}
		return nil
	})
	s.recordTransaction("accept", start, err)
	if err != nil {
		return nil, wrap("accept announcement", err)
	}

	s.committed(ctx, t)
	return t.delivery, nil
}

// Advance applies a deliverer-driven step (PICK_UP, START_TRANSIT, OUT_FOR_DELIVERY).
// CONFIRM_DELIVERY is only reachable through the validation gate.
func (s *LifecycleServiceImpl) Advance(ctx context.Context, deliveryID, delivererID string, event domain.DeliveryEvent) (*domain.Delivery, error) {
	switch event {
	case domain.EventPickUp, domain.EventStartTransit, domain.EventOutForDelivery:
	default:
		return nil, &domain.TransitionError{Event: event}
	}

	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var t transition
	start := time.Now()
	err := s.store.WithTransaction(txCtx, func(ctx context.Context, tx ports.Tx) error {
		d, err := tx.GetDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d.Deliverer.ID != delivererID {
			return domain.ErrForbidden
		}
		a, err := tx.GetAnnouncement(ctx, d.AnnouncementID)
		if err != nil {
			return err
		}

		from := d.Status
		if err := d.Apply(event, s.opts.Now(), s.opts.GenerateCode); err != nil {
			return err
		}
		if err := tx.SaveDelivery(ctx, d); err != nil {
			return err
		}

		t = transition{delivery: d, clientID: a.AuthorID, from: from}
		return nil
	})
	s.recordTransaction("advance", start, err)
	if err != nil {
		return nil, wrap("advance delivery", err)
	}

	s.committed(ctx, t)
	return t.delivery, nil
}

// Cancel stops a non-terminal delivery. The announcement's author, the assigned deliverer and
// admins may cancel. The pending payment fails and the announcement is cancelled.
func (s *LifecycleServiceImpl) Cancel(ctx context.Context, deliveryID string, actor domain.Actor) (*domain.Delivery, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	var t transition
	start := time.Now()
	err := s.store.WithTransaction(txCtx, func(ctx context.Context, tx ports.Tx) error {
		d, err := tx.GetDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		a, err := tx.GetAnnouncement(ctx, d.AnnouncementID)
		if err != nil {
			return err
		}
		if !canCancel(actor, a, d) {
			return domain.ErrForbidden
		}

		now := s.opts.Now()
		from := d.Status
		if err := d.Apply(domain.EventCancel, now, nil); err != nil {
			return err
		}

		p, err := tx.GetPaymentByDelivery(ctx, d.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			return err
		case p.Status == domain.PaymentPending:
			if err := p.Fail(now); err != nil {
				return err
			}
			if err := tx.SavePayment(ctx, p); err != nil {
				return err
			}
		}

		a.SetStatus(domain.AnnouncementCancelled, now)
		if err := tx.SaveDelivery(ctx, d); err != nil {
			return err
		}
		if err := tx.SaveAnnouncement(ctx, a); err != nil {
			return err
		}

		t = transition{delivery: d, clientID: a.AuthorID, from: from}
		return nil
	})
	s.recordTransaction("cancel", start, err)
	if err != nil {
		return nil, wrap("cancel delivery", err)
	}

	s.committed(ctx, t)
	return t.delivery, nil
}

func canCancel(actor domain.Actor, a *domain.Announcement, d *domain.Delivery) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleClient:
		return a.OwnedBy(actor.ID)
	case domain.RoleDeliverer:
		return actor.ID != "" && d.Deliverer.ID == actor.ID
	default:
		return false
	}
}

// committed records and announces a transition once its transaction is durable.
func (s *LifecycleServiceImpl) committed(ctx context.Context, t transition) {
	d := t.delivery
	s.opts.Metrics.DeliveryTransition(string(t.from), string(d.Status))
	s.log.Info("delivery status changed",
		zap.String("delivery_id", d.ID),
		zap.String("from", string(t.from)),
		zap.String("to", string(d.Status)),
	)

	payload := map[string]any{
		"announcementId": d.AnnouncementID,
		"deliveryId":     d.ID,
		"from":           string(t.from),
		"status":         string(d.Status),
	}
	now := s.opts.Now()
	key := notifications.Key(d.ID, string(d.Status))
	emit(ctx, s.notifier, s.log, notifications.NewEvent(notifications.EventStatusChanged, t.clientID, key, payload, now))
	emit(ctx, s.notifier, s.log, notifications.NewEvent(notifications.EventStatusChanged, d.Deliverer.ID, key, payload, now))
}

func (s *LifecycleServiceImpl) recordTransaction(op string, start time.Time, err error) {
	if isDomainError(err) {
		err = nil
	}
	s.opts.Metrics.TransactionCompleted(op, time.Since(start), err)
}
