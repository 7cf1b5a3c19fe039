package address

import (
	"context"

	"agrolink-be/internal/logger"
	"agrolink-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	List(ctx context.Context) ([]*Address, error)
	SetDefault(ctx context.Context, addressID uuid.UUID) error
	Delete(ctx context.Context, addressID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateAddressInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateAddress"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAddressOwner
	}

	addr := &Address{
		ID:        uuid.New(),
		UserID:    userID,
		Label:     input.Label,
		Phone:     input.Phone,
		Address1:  input.AddressLine1,
		Address2:  input.AddressLine2,
		City:      input.City,
		Province:  input.Province,
		Postal:    input.PostalCode,
		Country:   input.Country,
		IsDefault: input.SetAsDefault,
		IsActive:  true,
	}

	if input.SetAsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			log.Error("failed to clear default address", zap.Error(err))
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	log.Info("address created", zap.String("address_id", addr.ID.String()))
	return addr, nil
}

func (s *service) List(ctx context.Context) ([]*Address, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAddressOwner
	}
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) SetDefault(ctx context.Context, addressID uuid.UUID) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNotAddressOwner
	}

	if err := s.repo.ClearDefault(ctx, userID); err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, userID, addressID)
}

func (s *service) Delete(ctx context.Context, addressID uuid.UUID) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNotAddressOwner
	}

	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if addr.UserID != userID {
		return ErrNotAddressOwner
	}

	return s.repo.Deactivate(ctx, addressID)
}
