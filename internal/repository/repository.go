package repository

import (
	"context"

	"food-court/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgxpool.Pool the repositories need. pgxmock's
// pool satisfies it too, which keeps repository unit tests off Docker.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserRepository defines read access to the identity store.
type UserRepository interface {
	// GetByID retrieves a single user by ID, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// CatalogRepository defines read access to restaurants and menus.
// The order ledger never writes to the catalogue.
type CatalogRepository interface {
	// GetRestaurantByID retrieves a restaurant by ID, or nil when absent.
	GetRestaurantByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)

	// ListRestaurants retrieves restaurants ordered by name, optionally
	// restricted to active ones.
	ListRestaurants(ctx context.Context, activeOnly bool) ([]model.Restaurant, error)

	// ListMenuItems retrieves a restaurant's menu ordered by name,
	// optionally restricted to available items.
	ListMenuItems(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]model.MenuItem, error)

	// GetMenuItemsByIDs retrieves menu items by their IDs. Missing IDs
	// are simply absent from the result.
	GetMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error)

	// SearchMenuItems retrieves available menu items whose name contains
	// the query, case-insensitively.
	SearchMenuItems(ctx context.Context, query string) ([]model.MenuItem, error)
}

// OrderRepository defines data access for orders and their items.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order and its items, or (nil, nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// UpdateStatus moves an order from one status to another. The update
	// is compare-and-set on the prior status: it reports false without
	// error when the order's status no longer matches from, so a racing
	// transition cannot apply on top of a stale read.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error)

	// UpdateDeliveryPerson sets or clears the assigned courier. The
	// update only applies while the order's status is one of allowed;
	// it reports false when the guard fails.
	UpdateDeliveryPerson(ctx context.Context, id uuid.UUID, deliveryPersonID *uuid.UUID, allowed []model.OrderStatus) (bool, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
}
