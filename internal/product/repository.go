package product

import (
	"context"
	"database/sql"
	"fmt"

	"agrolink-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Count(ctx context.Context, opts ListOptions) (int64, error)
	Update(ctx context.Context, p *Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Create"),
		zap.String("product_id", p.ID.String()),
	)

	const q = `
		INSERT INTO products (
			id, producer_id, title, description,
			price, quantity, unit, image_url, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, q,
		p.ID, p.ProducerID, p.Title, p.Description,
		p.Price, p.Quantity, p.Unit, p.ImageURL, p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		log.Error("insert failed", zap.Error(err))
	}

	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	const q = `
		SELECT
			id, producer_id, title, description,
			price, quantity, unit, image_url, is_active,
			created_at, updated_at
		FROM products
		WHERE id = $1
		LIMIT 1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.ProducerID, &p.Title, &p.Description,
		&p.Price, &p.Quantity, &p.Unit, &p.ImageURL, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to get product",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &p, nil
}

func buildListWhere(opts ListOptions, args *[]any) string {
	where := " WHERE 1=1"
	idx := len(*args) + 1

	if opts.OnlyActive {
		where += " AND p.is_active = true"
	}

	if opts.ProducerID != nil {
		where += fmt.Sprintf(" AND p.producer_id = $%d", idx)
		*args = append(*args, *opts.ProducerID)
		idx++
	}

	if opts.Search != nil && *opts.Search != "" {
		where += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.description ILIKE $%d)", idx, idx)
		*args = append(*args, "%"+*opts.Search+"%")
		idx++
	}

	return where
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "List"),
	)

	args := []any{}
	query := `
		SELECT
			p.id, p.producer_id, p.title, p.description,
			p.price, p.quantity, p.unit, p.image_url, p.is_active,
			p.created_at, p.updated_at
		FROM products p
	` + buildListWhere(opts, &args)

	query += " ORDER BY p.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.ProducerID, &p.Title, &p.Description,
			&p.Price, &p.Quantity, &p.Unit, &p.ImageURL, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &p)
	}

	return res, rows.Err()
}

func (r *repository) Count(ctx context.Context, opts ListOptions) (int64, error) {
	args := []any{}
	query := `SELECT COUNT(*) FROM products p` + buildListWhere(opts, &args)

	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	const q = `
		UPDATE products
		SET title = $1,
		    description = $2,
		    price = $3,
		    quantity = $4,
		    unit = $5,
		    image_url = $6,
		    updated_at = NOW()
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, q,
		p.Title, p.Description, p.Price, p.Quantity, p.Unit, p.ImageURL, p.ID,
	)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE products
		SET is_active = false,
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
