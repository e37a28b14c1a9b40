package ports

import (
	"context"

	"ecodeli/internal/features/deliveries/domain"
)

// DeliveryRepository reads and writes announcements and deliveries.
// Getters return domain.ErrNotFound when the row does not exist.
type DeliveryRepository interface {
	GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error)
	SaveAnnouncement(ctx context.Context, a *domain.Announcement) error
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	GetDeliveryByAnnouncement(ctx context.Context, announcementID string) (*domain.Delivery, error)
	SaveDelivery(ctx context.Context, d *domain.Delivery) error
}

// PaymentRepository reads and writes payments.
type PaymentRepository interface {
	GetPaymentByDelivery(ctx context.Context, deliveryID string) (*domain.Payment, error)
	SavePayment(ctx context.Context, p *domain.Payment) error
}

// Tx is a transactional view of the store.
// Inside WithTransaction, every row read is locked (or watched) until commit,
// so decisions taken on what was read still hold when the writes land.
type Tx interface {
	DeliveryRepository
	PaymentRepository
}

// Store is the secondary port for delivery persistence.
// This is a Secondary Port (Driven Port).
type Store interface {
	// WithTransaction runs fn in a read-write transaction. Writes become visible
	// all together when fn returns nil and are discarded otherwise.
	// Stores with optimistic concurrency may run fn more than once.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// Close releases the underlying connections.
	Close() error
}
