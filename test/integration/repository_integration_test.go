package integration

import (
	"context"
	"testing"
	"time"

	"food-court/internal/model"
	"food-court/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestOrder inserts an order with one burger and one fries line
// through the repository's transactional path.
func createTestOrder(t *testing.T, repo repository.OrderRepository, f *Fixture) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	orderID := uuid.New()
	now := time.Now()
	order := &model.Order{
		ID:              orderID,
		CustomerID:      f.CustomerID,
		RestaurantID:    f.RestaurantID,
		TotalAmount:     decimal.RequireFromString("13.50"),
		Status:          model.StatusPending,
		DeliveryAddress: "12 Alder Lane",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := []model.OrderItem{
		{ID: uuid.New(), OrderID: orderID, MenuItemID: f.BurgerID, Quantity: 2, PriceAtOrder: decimal.RequireFromString("5.00")},
		{ID: uuid.New(), OrderID: orderID, MenuItemID: f.FriesID, Quantity: 1, PriceAtOrder: decimal.RequireFromString("3.50")},
	}

	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	require.NoError(t, tx.Commit(ctx))

	return orderID
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("order and items created atomically", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		orderID := createTestOrder(t, repo, f)

		order, items, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, model.StatusPending, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("13.50")))
		assert.Len(t, items, 2)
	})

	t.Run("rollback leaves no order behind", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		orderID := uuid.New()
		now := time.Now()
		order := &model.Order{
			ID:              orderID,
			CustomerID:      f.CustomerID,
			RestaurantID:    f.RestaurantID,
			TotalAmount:     decimal.RequireFromString("5.00"),
			Status:          model.StatusPending,
			DeliveryAddress: "12 Alder Lane",
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		got, items, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Nil(t, items)
	})

	t.Run("GetByID returns nil for unknown order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order, items, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, order)
		assert.Nil(t, items)
	})

	t.Run("snapshot price survives catalogue price change", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		orderID := createTestOrder(t, repo, f)

		_, err := testDB.Pool.Exec(ctx,
			"UPDATE menu_items SET price = $1 WHERE id = $2",
			decimal.RequireFromString("9.99"), f.BurgerID,
		)
		require.NoError(t, err)

		_, items, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		for _, item := range items {
			if item.MenuItemID == f.BurgerID {
				assert.True(t, item.PriceAtOrder.Equal(decimal.RequireFromString("5.00")))
			}
		}
	})

	t.Run("UpdateStatus applies only from the expected status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		orderID := createTestOrder(t, repo, f)

		applied, err := repo.UpdateStatus(ctx, orderID, model.StatusPending, model.StatusAccepted)
		require.NoError(t, err)
		assert.True(t, applied)

		// A second transition from pending now finds accepted and loses.
		applied, err = repo.UpdateStatus(ctx, orderID, model.StatusPending, model.StatusCancelled)
		require.NoError(t, err)
		assert.False(t, applied)

		order, _, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, order.Status)
	})

	t.Run("UpdateDeliveryPerson honours the status guard", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		orderID := createTestOrder(t, repo, f)
		allowed := []model.OrderStatus{model.StatusAccepted, model.StatusPreparing}

		applied, err := repo.UpdateDeliveryPerson(ctx, orderID, &f.CourierID, allowed)
		require.NoError(t, err)
		assert.False(t, applied, "order is still pending")

		_, err = repo.UpdateStatus(ctx, orderID, model.StatusPending, model.StatusAccepted)
		require.NoError(t, err)

		applied, err = repo.UpdateDeliveryPerson(ctx, orderID, &f.CourierID, allowed)
		require.NoError(t, err)
		assert.True(t, applied)

		order, _, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, order.DeliveryPersonID)
		assert.Equal(t, f.CourierID, *order.DeliveryPersonID)
	})

	t.Run("deleting a courier clears the assignment", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		orderID := createTestOrder(t, repo, f)
		_, err := repo.UpdateStatus(ctx, orderID, model.StatusPending, model.StatusAccepted)
		require.NoError(t, err)
		_, err = repo.UpdateDeliveryPerson(ctx, orderID, &f.CourierID,
			[]model.OrderStatus{model.StatusAccepted})
		require.NoError(t, err)

		_, err = testDB.Pool.Exec(ctx, "DELETE FROM users WHERE id = $1", f.CourierID)
		require.NoError(t, err)

		order, _, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Nil(t, order.DeliveryPersonID)
	})

	t.Run("deleting an order cascades to its items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		orderID := createTestOrder(t, repo, f)

		_, err := testDB.Pool.Exec(ctx, "DELETE FROM orders WHERE id = $1", orderID)
		require.NoError(t, err)

		var count int
		err = testDB.Pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM order_items WHERE order_id = $1", orderID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("List returns newest first and honours filters", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		first := createTestOrder(t, repo, f)
		time.Sleep(10 * time.Millisecond)
		second := createTestOrder(t, repo, f)

		orders, err := repo.List(ctx, model.OrderFilter{})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second, orders[0].ID)
		assert.Equal(t, first, orders[1].ID)

		status := model.StatusAccepted
		_, err = repo.UpdateStatus(ctx, first, model.StatusPending, model.StatusAccepted)
		require.NoError(t, err)

		orders, err = repo.List(ctx, model.OrderFilter{
			CustomerID: &f.CustomerID,
			Status:     &status,
		})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, first, orders[0].ID)
	})
}

func TestCatalogRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCatalogRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("ListMenuItems hides unavailable items by default", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		items, err := repo.ListMenuItems(ctx, f.RestaurantID, true)
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = repo.ListMenuItems(ctx, f.RestaurantID, false)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("GetMenuItemsByIDs skips missing IDs", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		items, err := repo.GetMenuItemsByIDs(ctx, []uuid.UUID{f.BurgerID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, f.BurgerID, items[0].ID)
		assert.True(t, items[0].Price.Equal(decimal.RequireFromString("5.00")))
	})

	t.Run("SearchMenuItems matches case-insensitively", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		items, err := repo.SearchMenuItems(ctx, "burger")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, f.BurgerID, items[0].ID)
	})

	t.Run("ListRestaurants can exclude inactive ones", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		f := SeedBaseData(t, testDB.Pool)

		_, err := testDB.Pool.Exec(ctx,
			"INSERT INTO restaurants (id, owner_id, name, address, is_active) VALUES ($1, $2, $3, $4, FALSE)",
			uuid.New(), f.OwnerID, "Closed Diner", "2 Low Street",
		)
		require.NoError(t, err)

		restaurants, err := repo.ListRestaurants(ctx, true)
		require.NoError(t, err)
		assert.Len(t, restaurants, 1)

		restaurants, err = repo.ListRestaurants(ctx, false)
		require.NoError(t, err)
		assert.Len(t, restaurants, 2)
	})
}
