package address

import (
	"context"
	"testing"

	"agrolink-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) ([]*Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Address), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Address), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, addr *Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

func (m *MockRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ClearDefault(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

func userCtx(id uint) context.Context {
	return utils.SetUserContext(context.Background(), id, "user@example.com", "CONSUMER")
}

func TestService_Create(t *testing.T) {
	userID := uint(1)

	input := CreateAddressInput{
		Label:        "Home",
		AddressLine1: "12 Orchard Lane",
		City:         "Bandung",
		Province:     "West Java",
		PostalCode:   "40111",
		Country:      "ID",
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*address.Address")).Return(nil)

		addr, err := svc.Create(userCtx(userID), input)
		require.NoError(t, err)
		assert.Equal(t, userID, addr.UserID)
		assert.Equal(t, "Home", addr.Label)
		assert.True(t, addr.IsActive)
		assert.False(t, addr.IsDefault)
		repo.AssertNotCalled(t, "ClearDefault", mock.Anything, mock.Anything)
	})

	t.Run("SetAsDefault_ClearsPrevious", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("ClearDefault", mock.Anything, userID).Return(nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		def := input
		def.SetAsDefault = true
		addr, err := svc.Create(userCtx(userID), def)
		require.NoError(t, err)
		assert.True(t, addr.IsDefault)
		repo.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrNotAddressOwner)
	})
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	userID := uint(1)

	repo.On("GetByUserID", mock.Anything, userID).
		Return([]*Address{{ID: uuid.New(), UserID: userID}}, nil)

	addrs, err := svc.List(userCtx(userID))
	require.NoError(t, err)
	assert.Len(t, addrs, 1)
}

func TestService_SetDefault(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	userID := uint(1)
	addrID := uuid.New()

	repo.On("ClearDefault", mock.Anything, userID).Return(nil)
	repo.On("SetDefault", mock.Anything, userID, addrID).Return(nil)

	err := svc.SetDefault(userCtx(userID), addrID)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Delete(t *testing.T) {
	userID := uint(1)
	addrID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, addrID).
			Return(&Address{ID: addrID, UserID: userID}, nil)
		repo.On("Deactivate", mock.Anything, addrID).Return(nil)

		err := svc.Delete(userCtx(userID), addrID)
		assert.NoError(t, err)
	})

	t.Run("NotOwner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, addrID).
			Return(&Address{ID: addrID, UserID: 999}, nil)

		err := svc.Delete(userCtx(userID), addrID)
		assert.ErrorIs(t, err, ErrNotAddressOwner)
		repo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, addrID).Return(nil, ErrAddressNotFound)

		err := svc.Delete(userCtx(userID), addrID)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}
