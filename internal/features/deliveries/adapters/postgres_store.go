package adapters

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"ecodeli/internal/features/deliveries/domain"
	"ecodeli/internal/features/deliveries/ports"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const uniqueViolation = pq.ErrorCode("23505")

// OpenPostgres opens a lib/pq connection pool and checks it is reachable.
func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the tables used by PostgresStore. It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// PostgresStore implements ports.Store on PostgreSQL.
// Reads inside WithTransaction use SELECT ... FOR UPDATE, so concurrent writers queue on the row lock.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL store with the given database connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// WithTransaction implements ports.Store.
func (s *PostgresStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &pgTx{tx: tx, lock: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// View implements ports.Store.
func (s *PostgresStore) View(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// Ping implements ports.Store.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements ports.Store.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// pgTx implements ports.Tx on a *sql.Tx.
type pgTx struct {
	tx   *sql.Tx
	lock bool
}

func (t *pgTx) query(q string) string {
	if t.lock {
		return q + lockClause
	}
	return q
}

func (t *pgTx) GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error) {
	var a domain.Announcement
	err := t.tx.QueryRowContext(ctx, t.query(queryGetAnnouncement), id).Scan(
		&a.ID,
		&a.AuthorID,
		&a.Title,
		&a.Description,
		&a.PickupAddress,
		&a.DeliveryAddress,
		&a.ScheduledAt,
		&a.Price,
		&a.Currency,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (t *pgTx) SaveAnnouncement(ctx context.Context, a *domain.Announcement) error {
	_, err := t.tx.ExecContext(ctx, queryUpsertAnnouncement,
		a.ID,
		a.AuthorID,
		a.Title,
		a.Description,
		a.PickupAddress,
		a.DeliveryAddress,
		a.ScheduledAt,
		a.Price,
		a.Currency,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (t *pgTx) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	return t.scanDelivery(t.tx.QueryRowContext(ctx, t.query(queryGetDelivery), id))
}

func (t *pgTx) GetDeliveryByAnnouncement(ctx context.Context, announcementID string) (*domain.Delivery, error) {
	return t.scanDelivery(t.tx.QueryRowContext(ctx, t.query(queryGetDeliveryByAnnouncement), announcementID))
}

func (t *pgTx) scanDelivery(row *sql.Row) (*domain.Delivery, error) {
	var (
		d     domain.Delivery
		code  sql.NullString
		proof []byte
	)
	err := row.Scan(
		&d.ID,
		&d.AnnouncementID,
		&d.Deliverer.ID,
		&d.Deliverer.Name,
		&d.Status,
		&code,
		&d.CodeIssuedAt,
		&d.PickupAddress,
		&d.DeliveryAddress,
		&d.ScheduledAt,
		&d.AssignedAt,
		&d.PickedUpAt,
		&d.CompletedAt,
		&d.CancelledAt,
		&d.Price,
		&d.Commission,
		&proof,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}

	d.ValidationCode = code.String
	if len(proof) > 0 {
		d.Proof = &domain.ValidationProof{}
		if err := json.Unmarshal(proof, d.Proof); err != nil {
			return nil, fmt.Errorf("failed to unmarshal proof of delivery %s: %w", d.ID, err)
		}
	}
	return &d, nil
}

func (t *pgTx) SaveDelivery(ctx context.Context, d *domain.Delivery) error {
	var proof any
	if d.Proof != nil {
		data, err := json.Marshal(d.Proof)
		if err != nil {
			return fmt.Errorf("failed to marshal proof: %w", err)
		}
		proof = data
	}
	code := sql.NullString{String: d.ValidationCode, Valid: d.ValidationCode != ""}

	_, err := t.tx.ExecContext(ctx, queryUpsertDelivery,
		d.ID,
		d.AnnouncementID,
		d.Deliverer.ID,
		d.Deliverer.Name,
		string(d.Status),
		code,
		d.CodeIssuedAt,
		d.PickupAddress,
		d.DeliveryAddress,
		d.ScheduledAt,
		d.AssignedAt,
		d.PickedUpAt,
		d.CompletedAt,
		d.CancelledAt,
		d.Price,
		d.Commission,
		proof,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if isUniqueViolation(err, "deliveries_announcement_key") {
		return domain.ErrAlreadyAssigned
	}
	return err
}

func (t *pgTx) GetPaymentByDelivery(ctx context.Context, deliveryID string) (*domain.Payment, error) {
	var p domain.Payment
	err := t.tx.QueryRowContext(ctx, t.query(queryGetPaymentByDelivery), deliveryID).Scan(
		&p.ID,
		&p.DeliveryID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.CreatedAt,
		&p.ReleasedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (t *pgTx) SavePayment(ctx context.Context, p *domain.Payment) error {
	_, err := t.tx.ExecContext(ctx, queryUpsertPayment,
		p.ID,
		p.DeliveryID,
		p.Amount,
		p.Currency,
		string(p.Status),
		p.CreatedAt,
		p.ReleasedAt,
	)
	return err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a unique violation on constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == constraint
}
