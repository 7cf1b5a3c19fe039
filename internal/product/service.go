package product

import (
	"context"

	"agrolink-be/internal/logger"
	"agrolink-be/internal/user"
	"agrolink-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	producerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || utils.GetUserRoleFromContext(ctx) != string(user.RoleProducer) {
		return nil, ErrNotProductOwner
	}

	p := &Product{
		ID:          uuid.New(),
		ProducerID:  producerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.Uint("producer_id", producerID),
	)

	return p, nil
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*Product, error) {
	producerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotProductOwner
	}

	if input.Title == nil && input.Description == nil && input.Price == nil &&
		input.Quantity == nil && input.Unit == nil && input.ImageURL == nil {
		return nil, ErrNothingToUpdate
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.ProducerID != producerID {
		return nil, ErrNotProductOwner
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Quantity != nil {
		p.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		p.Unit = *input.Unit
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	producerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNotProductOwner
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.ProducerID != producerID && utils.GetUserRoleFromContext(ctx) != string(user.RoleAdmin) {
		return ErrNotProductOwner
	}

	return s.repo.Deactivate(ctx, productID)
}

func (s *service) GetByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &ListResult{Products: products, Total: total}, nil
}
