package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListOrderedByName(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func TestProvider_FetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("SortedByName", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListOrderedByName", ctx).Return([]Product{
			{ID: "b", Name: "Pouch"},
			{ID: "a", Name: "Adhesive Remover"},
			{ID: "c", Name: "Pouch"},
		}, nil)

		products, err := NewRepositoryProvider(repo).FetchAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, []string{products[0].ID, products[1].ID, products[2].ID})
		repo.AssertExpectations(t)
	})

	t.Run("FailureIsDistinctFromEmpty", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListOrderedByName", ctx).Return(nil, errors.New("timeout"))

		products, err := NewRepositoryProvider(repo).FetchAll(ctx)
		assert.ErrorIs(t, err, ErrLoadFailed)
		assert.Contains(t, err.Error(), "timeout")
		assert.Nil(t, products)
	})
}

func TestProvider_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, "p-1").Return(&Product{ID: "p-1", Price: decimal.RequireFromString("5")}, nil)

		p, err := NewRepositoryProvider(repo).Get(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "p-1", p.ID)
	})

	t.Run("BlankID", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := NewRepositoryProvider(repo).Get(ctx, "  ")
		assert.ErrorIs(t, err, ErrProductNotFound)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("NotFoundPassesThrough", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, "x").Return(nil, ErrProductNotFound)

		_, err := NewRepositoryProvider(repo).Get(ctx, "x")
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.NotErrorIs(t, err, ErrLoadFailed)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, "x").Return(nil, errors.New("db down"))

		_, err := NewRepositoryProvider(repo).Get(ctx, "x")
		assert.ErrorIs(t, err, ErrLoadFailed)
	})
}

func TestProduct_Helpers(t *testing.T) {
	assert.True(t, Product{StockQuantity: 1}.Available())
	assert.False(t, Product{StockQuantity: 0}.Available())

	assert.Equal(t, "b.jpg", Product{Images: []string{" ", "b.jpg"}}.PrimaryImage())
	assert.Equal(t, "", Product{}.PrimaryImage())

	assert.True(t, CategoryBook.Valid())
	assert.False(t, Category("shoes").Valid())
	assert.True(t, OstomyUniversal.Valid())
	assert.False(t, OstomyType("").Valid())
}
