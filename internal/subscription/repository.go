package subscription

import (
	"context"
	"database/sql"
	"time"

	"agrolink-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*Subscription, error)
	ListByConsumer(ctx context.Context, consumerID uint) ([]*Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, nextDelivery *time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const subscriptionColumns = `
	id, consumer_id, order_id, status,
	frequency, next_delivery_date,
	paused_at, cancelled_at, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Subscription"),
		zap.String("method", "Create"),
		zap.String("order_id", sub.OrderID.String()),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO subscriptions (
			id, consumer_id, order_id, status, frequency, next_delivery_date
		) VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at
	`,
		sub.ID, sub.ConsumerID, sub.OrderID, sub.Status,
		sub.Frequency, sub.NextDeliveryDate,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)

	if err != nil {
		// The unique index on order_id enforces at-most-one per order.
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == PgUniqueViolation {
			return ErrAlreadySubscribed
		}
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE id = $1
	`, id)

	return scanSubscription(row)
}

func (r *repository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE order_id = $1
	`, orderID)

	return scanSubscription(row)
}

func scanSubscription(row *sql.Row) (*Subscription, error) {
	var s Subscription
	err := row.Scan(
		&s.ID, &s.ConsumerID, &s.OrderID, &s.Status,
		&s.Frequency, &s.NextDeliveryDate,
		&s.PausedAt, &s.CancelledAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListByConsumer(ctx context.Context, consumerID uint) ([]*Subscription, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Subscription"),
		zap.String("method", "ListByConsumer"),
		zap.Uint("consumer_id", consumerID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE consumer_id = $1
		ORDER BY created_at DESC
	`, consumerID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Subscription
	for rows.Next() {
		var s Subscription
		if err := rows.Scan(
			&s.ID, &s.ConsumerID, &s.OrderID, &s.Status,
			&s.Frequency, &s.NextDeliveryDate,
			&s.PausedAt, &s.CancelledAt, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &s)
	}

	return res, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, nextDelivery *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = $1,
		    next_delivery_date = COALESCE($2, next_delivery_date),
		    paused_at = CASE WHEN $1 = 'PAUSED' THEN NOW() ELSE NULL END,
		    cancelled_at = CASE WHEN $1 = 'CANCELLED' THEN NOW() ELSE cancelled_at END,
		    updated_at = NOW()
		WHERE id = $3
	`, status, nextDelivery, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}
