package service

import (
	"context"
	"testing"
	"time"

	"food-court/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListRestaurants(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	expected := []model.Restaurant{
		{ID: uuid.New(), Name: "Aurora Diner", IsActive: true, CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Rosa's Kitchen", IsActive: true, CreatedAt: time.Now()},
	}

	// Default listing hides inactive restaurants.
	repo.On("ListRestaurants", ctx, true).Return(expected, nil)

	restaurants, err := svc.ListRestaurants(ctx, false)

	require.NoError(t, err)
	assert.Equal(t, expected, restaurants)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListRestaurants_IncludeInactive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	repo.On("ListRestaurants", ctx, false).Return([]model.Restaurant{}, nil)

	_, err := svc.ListRestaurants(ctx, true)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCatalogService_GetRestaurant_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	id := uuid.New()
	repo.On("GetRestaurantByID", ctx, id).Return(nil, nil)

	restaurant, err := svc.GetRestaurant(ctx, id)

	assert.Nil(t, restaurant)
	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)
}

func TestCatalogService_ListMenu(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	restaurantID := uuid.New()
	restaurant := &model.Restaurant{ID: restaurantID, Name: "Rosa's Kitchen", IsActive: true}
	menu := []model.MenuItem{
		{ID: uuid.New(), RestaurantID: restaurantID, Name: "Margherita", Price: decimal.RequireFromString("5.00"), IsAvailable: true},
	}

	repo.On("GetRestaurantByID", ctx, restaurantID).Return(restaurant, nil)
	repo.On("ListMenuItems", ctx, restaurantID, true).Return(menu, nil)

	items, err := svc.ListMenu(ctx, restaurantID, false)

	require.NoError(t, err)
	assert.Equal(t, menu, items)
}

func TestCatalogService_ListMenu_UnknownRestaurant(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	restaurantID := uuid.New()
	repo.On("GetRestaurantByID", ctx, restaurantID).Return(nil, nil)

	items, err := svc.ListMenu(ctx, restaurantID, false)

	assert.Nil(t, items)
	assert.ErrorIs(t, err, model.ErrRestaurantNotFound)
	repo.AssertNotCalled(t, "ListMenuItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_SearchMenuItems(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	results := []model.MenuItem{
		{ID: uuid.New(), Name: "Margherita", Price: decimal.RequireFromString("5.00"), IsAvailable: true},
	}
	repo.On("SearchMenuItems", ctx, "marg").Return(results, nil)

	items, err := svc.SearchMenuItems(ctx, "  marg  ")

	require.NoError(t, err)
	assert.Equal(t, results, items)
}

func TestCatalogService_SearchMenuItems_EmptyQuery(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, zerolog.Nop())

	items, err := svc.SearchMenuItems(ctx, "   ")

	assert.Nil(t, items)
	assert.Equal(t, model.ErrCodeValidation, model.ErrorCode(err))
	repo.AssertNotCalled(t, "SearchMenuItems", mock.Anything, mock.Anything)
}
