package ports

import (
	"context"

	"ecodeli/internal/features/deliveries/domain"
)

// ValidationService defines the primary port for the validation gate.
type ValidationService interface {
	Status(ctx context.Context, announcementID, clientID string) (*domain.ValidationStatus, error)
	Validate(ctx context.Context, in domain.ValidateInput) (*domain.ValidationResult, error)
	RevealCode(ctx context.Context, announcementID, clientID string) (*domain.CodeView, error)
	RegenerateCode(ctx context.Context, announcementID, clientID string) (*domain.CodeView, error)
}

// LifecycleService defines the primary port for announcement and delivery transitions.
type LifecycleService interface {
	CreateAnnouncement(ctx context.Context, clientID string, draft domain.AnnouncementDraft) (*domain.Announcement, error)
	Accept(ctx context.Context, announcementID string, deliverer domain.Deliverer) (*domain.Delivery, error)
	Advance(ctx context.Context, deliveryID, delivererID string, event domain.DeliveryEvent) (*domain.Delivery, error)
	Cancel(ctx context.Context, deliveryID string, actor domain.Actor) (*domain.Delivery, error)
}
