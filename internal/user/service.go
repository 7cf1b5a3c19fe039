package user

import (
	"context"
	"strings"

	"agrolink-be/internal/logger"

	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    *string
	Role     Role
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	if !input.Role.Valid() || input.Role == RoleAdmin {
		return "", nil, ErrInvalidRole
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u := &User{
		Email:    input.Email,
		Password: hashed,
		FullName: input.FullName,
		Phone:    input.Phone,
		Role:     input.Role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", nil, ErrEmailExists
		}
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register completed",
		zap.Uint("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
