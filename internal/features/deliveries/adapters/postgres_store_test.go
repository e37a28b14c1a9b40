package adapters

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"ecodeli/internal/features/deliveries/domain"
	"ecodeli/internal/features/deliveries/ports"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresStore(t *testing.T) (sqlmock.Sqlmock, *PostgresStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, NewPostgresStore(db)
}

var (
	announcementCols = []string{"id", "author_id", "title", "description", "pickup_address", "delivery_address",
		"scheduled_at", "price", "currency", "status", "created_at", "updated_at"}
	deliveryCols = []string{"id", "announcement_id", "deliverer_id", "deliverer_name", "status",
		"validation_code", "code_issued_at", "pickup_address", "delivery_address",
		"scheduled_at", "assigned_at", "picked_up_at", "completed_at", "cancelled_at",
		"price", "commission", "proof", "created_at", "updated_at"}
	paymentCols = []string{"id", "delivery_id", "amount", "currency", "status", "created_at", "released_at"}
)

func TestPostgresStore_WithTransactionLocksRows(t *testing.T) {
	mock, store := newPostgresStore(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM announcements\s+WHERE id = \$1 FOR UPDATE`).
		WithArgs("ann-1").
		WillReturnRows(sqlmock.NewRows(announcementCols).
			AddRow("ann-1", "client-1", "Parcel", "", "A", "B", nil, "20.00", "EUR", "ASSIGNED", now, now))
	mock.ExpectQuery(`FROM deliveries\s+WHERE announcement_id = \$1 FOR UPDATE`).
		WithArgs("ann-1").
		WillReturnRows(sqlmock.NewRows(deliveryCols).
			AddRow("del-1", "ann-1", "deliverer-1", "Sam", "IN_TRANSIT", "042137", now, "A", "B",
				nil, now, now, nil, nil, "20.00", "3.00", nil, now, now))
	mock.ExpectQuery(`FROM payments\s+WHERE delivery_id = \$1 FOR UPDATE`).
		WithArgs("del-1").
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow("pay-1", "del-1", "20.00", "EUR", "PENDING", now, nil))
	mock.ExpectCommit()

	err := store.WithTransaction(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		a, err := tx.GetAnnouncement(ctx, "ann-1")
		require.NoError(t, err)
		assert.Equal(t, domain.AnnouncementAssigned, a.Status)
		assert.Equal(t, "20", a.Price.String())

		d, err := tx.GetDeliveryByAnnouncement(ctx, "ann-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInTransit, d.Status)
		assert.Equal(t, "042137", d.ValidationCode)
		assert.Equal(t, "Sam", d.Deliverer.Name)
		assert.Nil(t, d.Proof)
		assert.Nil(t, d.CompletedAt)

		p, err := tx.GetPaymentByDelivery(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPending, p.Status)
		assert.Nil(t, p.ReleasedAt)
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ViewDoesNotLock(t *testing.T) {
	mock, store := newPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM announcements\s+WHERE id = \$1$`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	err := store.View(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		_, err := tx.GetAnnouncement(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RollbackOnError(t *testing.T) {
	mock, store := newPostgresStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.WithTransaction(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveDelivery(t *testing.T) {
	a, d, p := fixtures(t)

	t.Run("Upserts", func(t *testing.T) {
		mock, store := newPostgresStore(t)
		d.Proof = &domain.ValidationProof{Notes: "left with concierge", ValidatedBy: a.AuthorID}
		defer func() { d.Proof = nil }()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO deliveries")).
			WithArgs(d.ID, a.ID, "deliverer-1", "Sam", "IN_TRANSIT", "042137", sqlmock.AnyArg(),
				d.PickupAddress, d.DeliveryAddress, nil, sqlmock.AnyArg(), sqlmock.AnyArg(), nil, nil,
				"20", "3", sqlmock.AnyArg(), d.CreatedAt, d.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
			WithArgs(p.ID, d.ID, "20", "EUR", "PENDING", p.CreatedAt, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithTransaction(context.Background(), func(ctx context.Context, tx ports.Tx) error {
			if err := tx.SaveDelivery(ctx, d); err != nil {
				return err
			}
			return tx.SavePayment(ctx, p)
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateAnnouncement", func(t *testing.T) {
		mock, store := newPostgresStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO deliveries")).
			WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "deliveries_announcement_key"})
		mock.ExpectRollback()

		err := store.WithTransaction(context.Background(), func(ctx context.Context, tx ports.Tx) error {
			return tx.SaveDelivery(ctx, d)
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_SaveAnnouncement(t *testing.T) {
	mock, store := newPostgresStore(t)
	a, _, _ := fixtures(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO announcements")).
		WithArgs(a.ID, "client-1", "Parcel", "", a.PickupAddress, a.DeliveryAddress, nil,
			"20", "EUR", "OPEN", a.CreatedAt, a.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WithTransaction(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		return tx.SaveAnnouncement(ctx, a)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS announcements")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
