package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID
	ProducerID  uint
	Title       string
	Description *string
	Price       decimal.Decimal
	Quantity    int
	Unit        string
	ImageURL    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateProductInput struct {
	Title       string
	Description *string
	Price       decimal.Decimal
	Quantity    int
	Unit        string
	ImageURL    *string
}

type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
	Unit        *string
	ImageURL    *string
}

type ListOptions struct {
	ProducerID *uint
	Search     *string
	OnlyActive bool
	Limit      int32
	Offset     int32
}

type ListResult struct {
	Products []*Product
	Total    int64
}
