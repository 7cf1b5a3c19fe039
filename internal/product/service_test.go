package product

import (
	"context"
	"testing"

	"agrolink-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, opts ListOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func producerCtx(id uint) context.Context {
	return utils.SetUserContext(context.Background(), id, "producer@example.com", "PRODUCER")
}

func consumerCtx(id uint) context.Context {
	return utils.SetUserContext(context.Background(), id, "consumer@example.com", "CONSUMER")
}

func adminCtx(id uint) context.Context {
	return utils.SetUserContext(context.Background(), id, "admin@example.com", "ADMIN")
}

func TestService_Create(t *testing.T) {
	producerID := uint(7)

	input := CreateProductInput{
		Title:    "Organic Carrots",
		Price:    decimal.RequireFromString("10.00"),
		Quantity: 50,
		Unit:     "kg",
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		p, err := svc.Create(producerCtx(producerID), input)
		require.NoError(t, err)
		assert.Equal(t, producerID, p.ProducerID)
		assert.Equal(t, "Organic Carrots", p.Title)
		assert.True(t, p.IsActive)
	})

	t.Run("ConsumerForbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(consumerCtx(1), input)
		assert.ErrorIs(t, err, ErrNotProductOwner)
	})
}

func TestService_Update(t *testing.T) {
	producerID := uint(7)
	productID := uuid.New()

	existing := func() *Product {
		desc := "crunchy"
		return &Product{
			ID:          productID,
			ProducerID:  producerID,
			Title:       "Organic Carrots",
			Description: &desc,
			Price:       decimal.RequireFromString("10.00"),
			Quantity:    50,
			Unit:        "kg",
			IsActive:    true,
		}
	}

	t.Run("PartialMerge", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, productID).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		newPrice := decimal.RequireFromString("12.50")
		p, err := svc.Update(producerCtx(producerID), productID, UpdateProductInput{
			Price:    &newPrice,
			Quantity: utils.IntPtr(40),
		})

		require.NoError(t, err)
		assert.Equal(t, "12.50", p.Price.StringFixed(2))
		assert.Equal(t, 40, p.Quantity)
		// Untouched fields survive the merge.
		assert.Equal(t, "Organic Carrots", p.Title)
		assert.Equal(t, "kg", p.Unit)
	})

	t.Run("NothingToUpdate", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Update(producerCtx(producerID), productID, UpdateProductInput{})
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("NotOwner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, productID).Return(existing(), nil)

		title := "Hijacked"
		_, err := svc.Update(producerCtx(999), productID, UpdateProductInput{Title: &title})
		assert.ErrorIs(t, err, ErrNotProductOwner)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, productID).Return(nil, ErrProductNotFound)

		title := "Anything"
		_, err := svc.Update(producerCtx(producerID), productID, UpdateProductInput{Title: &title})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	producerID := uint(7)
	productID := uuid.New()

	owned := &Product{ID: productID, ProducerID: producerID, IsActive: true}

	t.Run("Owner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, productID).Return(owned, nil)
		repo.On("Deactivate", mock.Anything, productID).Return(nil)

		err := svc.Delete(producerCtx(producerID), productID)
		assert.NoError(t, err)
	})

	t.Run("Admin", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, productID).Return(owned, nil)
		repo.On("Deactivate", mock.Anything, productID).Return(nil)

		err := svc.Delete(adminCtx(42), productID)
		assert.NoError(t, err)
	})

	t.Run("ForeignProducer", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, productID).Return(owned, nil)

		err := svc.Delete(producerCtx(999), productID)
		assert.ErrorIs(t, err, ErrNotProductOwner)
		repo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
	})
}

func TestService_List(t *testing.T) {
	t.Run("DefaultsApplied", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		var captured ListOptions
		repo.On("List", mock.Anything, mock.AnythingOfType("product.ListOptions")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(ListOptions)
			}).
			Return([]*Product{}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		_, err := svc.List(context.Background(), ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, int32(20), captured.Limit)
	})

	t.Run("LimitClamped", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		var captured ListOptions
		repo.On("List", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(ListOptions)
			}).
			Return([]*Product{}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		_, err := svc.List(context.Background(), ListOptions{Limit: 500})
		require.NoError(t, err)
		assert.Equal(t, int32(100), captured.Limit)
	})

	t.Run("ReturnsTotal", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", mock.Anything, mock.Anything).
			Return([]*Product{{ID: uuid.New()}}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(14), nil)

		res, err := svc.List(context.Background(), ListOptions{})
		require.NoError(t, err)
		assert.Len(t, res.Products, 1)
		assert.Equal(t, int64(14), res.Total)
	})
}
