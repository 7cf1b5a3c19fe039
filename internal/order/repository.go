package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agrolink-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error

	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	GetItemByID(ctx context.Context, itemID uuid.UUID) (*OrderItem, error)
	HasProducerItem(ctx context.Context, orderID uuid.UUID, producerID uint) (bool, error)

	// DecideItemTx applies a one-shot item decision and recomputes the
	// parent order's aggregate status in the same transaction. Returns the
	// resulting order status.
	DecideItemTx(ctx context.Context, orderID, itemID uuid.UUID, decision ItemStatus, reason *string) (OrderStatus, error)

	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error
	UpdateRecurrence(ctx context.Context, o *Order) error

	FetchOrders(ctx context.Context, scope ListScope, filter *OrderFilter, limit, offset int32) ([]*Order, error)
	CountOrders(ctx context.Context, scope ListScope, filter *OrderFilter) (int64, error)

	FetchProducerItems(ctx context.Context, producerID uint, filter *ItemFilter, limit, offset int32) ([]*OrderItem, error)
	CountProducerItems(ctx context.Context, producerID uint, filter *ItemFilter) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID.String()),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, consumer_id, address_id, total_amount, status,
			is_recurring, frequency, custom_days, next_delivery_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`,
		o.ID, o.ConsumerID, o.AddressID, o.TotalAmount, o.Status,
		o.IsRecurring, o.Frequency, o.CustomDays, o.NextDeliveryDate,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, producer_id,
				quantity, unit_price, total_price, status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			item.ID, o.ID, item.ProductID, item.ProducerID,
			item.Quantity, item.UnitPrice, item.TotalPrice, item.Status,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order created")

	return nil
}

func (r *repository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT
			id, consumer_id, address_id, total_amount, status,
			is_recurring, frequency, custom_days, next_delivery_date,
			paused_at, cancelled_at, completed_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.ConsumerID, &o.AddressID, &o.TotalAmount, &o.Status,
		&o.IsRecurring, &o.Frequency, &o.CustomDays, &o.NextDeliveryDate,
		&o.PausedAt, &o.CancelledAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to get order",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.producer_id,
			oi.quantity, oi.unit_price, oi.total_price,
			oi.status, oi.rejection_reason, p.title,
			oi.created_at, oi.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProducerID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&item.Status, &item.RejectionReason, &item.ProductTitle,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return &o, rows.Err()
}

func (r *repository) GetItemByID(ctx context.Context, itemID uuid.UUID) (*OrderItem, error) {
	var item OrderItem
	err := r.db.QueryRowContext(ctx, `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.producer_id,
			oi.quantity, oi.unit_price, oi.total_price,
			oi.status, oi.rejection_reason, p.title,
			oi.created_at, oi.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.id = $1
	`, itemID).Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.ProducerID,
		&item.Quantity, &item.UnitPrice, &item.TotalPrice,
		&item.Status, &item.RejectionReason, &item.ProductTitle,
		&item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) HasProducerItem(ctx context.Context, orderID uuid.UUID, producerID uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_items
			WHERE order_id = $1 AND producer_id = $2
		)
	`, orderID, producerID).Scan(&exists)

	return exists, err
}

func (r *repository) DecideItemTx(
	ctx context.Context,
	orderID, itemID uuid.UUID,
	decision ItemStatus,
	reason *string,
) (OrderStatus, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "DecideItemTx"),
		zap.String("order_id", orderID.String()),
		zap.String("item_id", itemID.String()),
		zap.String("decision", string(decision)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return "", err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Lock the parent order row so concurrent decisions on sibling items
	// serialize and the aggregate recompute always sees the freshest
	// item-status snapshot.
	var current OrderStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&current)
	if err == sql.ErrNoRows {
		return "", ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to lock order row", zap.Error(err))
		return "", err
	}

	// Paused and cancelled orders are out of reach of item decisions;
	// the aggregate must never overwrite those states.
	if current == StatusPaused || current == StatusCancelled {
		return "", ErrInvalidTransition
	}

	// One-shot decision: the PENDING guard means the second of two
	// concurrent decisions on the same item updates zero rows.
	res, err := tx.ExecContext(ctx, `
		UPDATE order_items
		SET status = $1,
		    rejection_reason = $2,
		    updated_at = NOW()
		WHERE id = $3
		  AND status = 'PENDING'
	`, decision, reason, itemID)
	if err != nil {
		log.Error("failed to update item status", zap.Error(err))
		return "", err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return "", ErrInvalidTransition
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT status FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		log.Error("failed to read sibling item statuses", zap.Error(err))
		return "", err
	}

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.Status); err != nil {
			rows.Close()
			return "", err
		}
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return "", err
	}

	next := AggregateStatus(items)

	// completed_at is set once, the first time the order reaches COMPLETED.
	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    completed_at = CASE
		        WHEN $1 = 'COMPLETED' THEN COALESCE(completed_at, NOW())
		        ELSE completed_at
		    END,
		    updated_at = NOW()
		WHERE id = $2
	`, next, orderID)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return "", err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit decision transaction", zap.Error(err))
		return "", err
	}

	committed = true
	log.Info("item decided", zap.String("order_status", string(next)))

	return next, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    paused_at = CASE WHEN $1 = 'PAUSED' THEN NOW() ELSE NULL END,
		    cancelled_at = CASE WHEN $1 = 'CANCELLED' THEN NOW() ELSE cancelled_at END,
		    completed_at = CASE
		        WHEN $1 = 'COMPLETED' THEN COALESCE(completed_at, NOW())
		        ELSE completed_at
		    END,
		    updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) UpdateRecurrence(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET is_recurring = $1,
		    frequency = $2,
		    custom_days = $3,
		    next_delivery_date = $4,
		    updated_at = NOW()
		WHERE id = $5
	`, o.IsRecurring, o.Frequency, o.CustomDays, o.NextDeliveryDate, o.ID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func appendOrderScope(query string, scope ListScope, args *[]any) string {
	if scope.ConsumerID != nil {
		query += fmt.Sprintf(" AND o.consumer_id = $%d", len(*args)+1)
		*args = append(*args, *scope.ConsumerID)
	}
	if scope.ProducerID != nil {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM order_items oi
			WHERE oi.order_id = o.id AND oi.producer_id = $%d
		)`, len(*args)+1)
		*args = append(*args, *scope.ProducerID)
	}
	return query
}

func appendOrderFilter(query string, filter *OrderFilter, args *[]any) string {
	if filter == nil {
		return query
	}

	if filter.Status != nil && *filter.Status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", len(*args)+1)
		*args = append(*args, *filter.Status)
	}

	if filter.Search != nil && *filter.Search != "" {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM order_items si
			JOIN products sp ON sp.id = si.product_id
			WHERE si.order_id = o.id
			  AND (sp.title ILIKE $%d OR sp.description ILIKE $%d)
		)`, len(*args)+1, len(*args)+1)
		*args = append(*args, "%"+*filter.Search+"%")
	}

	return query
}

func (r *repository) FetchOrders(
	ctx context.Context,
	scope ListScope,
	filter *OrderFilter,
	limit, offset int32,
) ([]*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "FetchOrders"),
		zap.Int32("limit", limit),
		zap.Int32("offset", offset),
	)

	query := `
		SELECT
			o.id, o.consumer_id, o.address_id, o.total_amount, o.status,
			o.is_recurring, o.frequency, o.custom_days, o.next_delivery_date,
			o.paused_at, o.cancelled_at, o.completed_at, o.created_at, o.updated_at
		FROM orders o
		WHERE 1=1
	`

	args := []any{}
	query = appendOrderScope(query, scope, &args)
	query = appendOrderFilter(query, filter, &args)

	query += " ORDER BY o.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.ConsumerID, &o.AddressID, &o.TotalAmount, &o.Status,
			&o.IsRecurring, &o.Frequency, &o.CustomDays, &o.NextDeliveryDate,
			&o.PausedAt, &o.CancelledAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

func (r *repository) CountOrders(ctx context.Context, scope ListScope, filter *OrderFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM orders o WHERE 1=1`

	args := []any{}
	query = appendOrderScope(query, scope, &args)
	query = appendOrderFilter(query, filter, &args)

	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

func appendItemFilter(query string, filter *ItemFilter, args *[]any) string {
	if filter == nil {
		return query
	}

	if filter.Status != nil && *filter.Status != "" {
		query += fmt.Sprintf(" AND oi.status = $%d", len(*args)+1)
		*args = append(*args, *filter.Status)
	}

	if filter.Search != nil && *filter.Search != "" {
		query += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.description ILIKE $%d)",
			len(*args)+1, len(*args)+1)
		*args = append(*args, "%"+*filter.Search+"%")
	}

	return query
}

func (r *repository) FetchProducerItems(
	ctx context.Context,
	producerID uint,
	filter *ItemFilter,
	limit, offset int32,
) ([]*OrderItem, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "FetchProducerItems"),
		zap.Uint("producer_id", producerID),
	)

	query := `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.producer_id,
			oi.quantity, oi.unit_price, oi.total_price,
			oi.status, oi.rejection_reason, p.title,
			oi.created_at, oi.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.producer_id = $1
	`

	args := []any{producerID}
	query = appendItemFilter(query, filter, &args)

	query += " ORDER BY oi.order_id, oi.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query producer items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProducerID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&item.Status, &item.RejectionReason, &item.ProductTitle,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			log.Error("failed to scan item row", zap.Error(err))
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *repository) CountProducerItems(ctx context.Context, producerID uint, filter *ItemFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.producer_id = $1
	`

	args := []any{producerID}
	query = appendItemFilter(query, filter, &args)

	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

// IsNotFound reports whether err is one of the package's not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrAddressNotFound) ||
		errors.Is(err, ErrProductNotFound)
}
