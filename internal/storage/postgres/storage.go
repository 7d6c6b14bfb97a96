package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/repository"
)

// DB abstracts the pgx pool operations used by the storage.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DB
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            total BIGINT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            firstname TEXT NOT NULL DEFAULT '',
            lastname TEXT NOT NULL DEFAULT '',
            telephone TEXT NOT NULL DEFAULT '',
            address1 TEXT NOT NULL DEFAULT '',
            address2 TEXT NOT NULL DEFAULT '',
            zone TEXT NOT NULL DEFAULT '',
            postcode TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL DEFAULT '',
            country_code TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'PENDING',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_history (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            status TEXT NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            order_id BIGINT PRIMARY KEY REFERENCES orders(id),
            invoice_id TEXT UNIQUE NOT NULL,
            environment TEXT NOT NULL,
            fee BIGINT,
            paid_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_order_history_order ON order_history(order_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_created ON payments(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, total, email, firstname, lastname, telephone,
                          address1, address2, zone, postcode, city, country_code,
                          status, created_at, updated_at
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Total, &o.Email, &o.FirstName, &o.LastName, &o.Telephone,
		&o.Address1, &o.Address2, &o.Zone, &o.Postcode, &o.City, &o.CountryCode,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// MarkPaid applies the PENDING->PAID transition as an atomic conditional
// update so that concurrent duplicate deliveries cannot double-process.
func (r *orderRepository) MarkPaid(ctx context.Context, orderID int64, paidAt time.Time, fee int64, comment string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
			model.OrderStatusPaid, orderID, model.OrderStatusPending)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrOrderNotPending
		}

		if _, err := tx.Exec(ctx,
			`UPDATE payments SET paid_at=$1, fee=$2 WHERE order_id=$3`,
			paidAt, fee, orderID); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO order_history (order_id, status, comment) VALUES ($1, $2, $3)`,
			orderID, model.OrderStatusPaid, comment)
		return err
	})
}

// MarkCancelled applies the PENDING->CANCELLED transition under the same
// conditional-update guard as MarkPaid.
func (r *orderRepository) MarkCancelled(ctx context.Context, orderID int64, comment string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
			model.OrderStatusCancelled, orderID, model.OrderStatusPending)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrOrderNotPending
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO order_history (order_id, status, comment) VALUES ($1, $2, $3)`,
			orderID, model.OrderStatusCancelled, comment)
		return err
	})
}

func (r *orderRepository) AppendHistory(ctx context.Context, orderID int64, status model.OrderStatus, comment string) error {
	const query = `INSERT INTO order_history (order_id, status, comment) VALUES ($1, $2, $3)`
	_, err := r.storage.pool.Exec(ctx, query, orderID, status, comment)
	return err
}

func (r *orderRepository) History(ctx context.Context, orderID int64) ([]model.HistoryEntry, error) {
	const query = `SELECT order_id, status, comment, created_at
                   FROM order_history WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.HistoryEntry
	for rows.Next() {
		var h model.HistoryEntry
		if err := rows.Scan(&h.OrderID, &h.Status, &h.Comment, &h.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Record(ctx context.Context, orderID int64, invoiceID, environment string) error {
	const query = `INSERT INTO payments (order_id, invoice_id, environment)
                   VALUES ($1, $2, $3)
                   ON CONFLICT (order_id) DO UPDATE
                   SET invoice_id = EXCLUDED.invoice_id,
                       environment = EXCLUDED.environment,
                       created_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, orderID, invoiceID, environment)
	return err
}

func (r *paymentRepository) StalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	const query = `SELECT p.order_id, p.invoice_id, p.environment, p.fee, p.paid_at, p.created_at
                   FROM payments p
                   JOIN orders o ON o.id = p.order_id
                   WHERE o.status = $1 AND p.created_at < $2
                   ORDER BY p.created_at
                   LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.OrderID, &p.InvoiceID, &p.Environment, &p.Fee, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
