package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	input := RegisterInput{
		Email:    "farmer@example.com",
		Password: "s3cret-pass",
		FullName: "Jordan Farmer",
		Role:     RoleProducer,
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*User).ID = 42
			}).
			Return(nil)

		token, u, err := svc.Register(context.Background(), input)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(42), u.ID)
		assert.NotEqual(t, input.Password, u.Password)
		assert.True(t, CheckPasswordHash(input.Password, u.Password))

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, string(RoleProducer), claims.Role)
	})

	t.Run("AdminRoleRejected", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		bad := input
		bad.Role = RoleAdmin
		_, _, err := svc.Register(context.Background(), bad)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("UnknownRoleRejected", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		bad := input
		bad.Role = Role("WHOLESALER")
		_, _, err := svc.Register(context.Background(), bad)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	existing := &User{
		ID:       42,
		Email:    "farmer@example.com",
		Password: hashed,
		Role:     RoleConsumer,
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, existing.Email).Return(existing, nil)

		token, u, err := svc.Login(context.Background(), existing.Email, "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, existing.ID, u.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, existing.Email).Return(existing, nil)

		_, _, err := svc.Login(context.Background(), existing.Email, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)

		// Unknown email and wrong password are indistinguishable to the caller.
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestJWT_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT(7, string(RoleProducer), "producer@example.com")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "producer@example.com", claims.Email)
	assert.Equal(t, string(RoleProducer), claims.Role)
}

func TestJWT_InvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT(1, string(RoleConsumer), "a@b.c")
	assert.Error(t, err)
}
