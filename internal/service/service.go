package service

import (
	"context"

	"food-court/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines read operations over restaurants and menus.
type CatalogService interface {
	// ListRestaurants retrieves restaurants ordered by name. Inactive
	// restaurants are included only when requested.
	ListRestaurants(ctx context.Context, includeInactive bool) ([]model.Restaurant, error)

	// GetRestaurant retrieves a single restaurant by ID.
	GetRestaurant(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)

	// ListMenu retrieves a restaurant's menu ordered by name.
	ListMenu(ctx context.Context, restaurantID uuid.UUID, includeUnavailable bool) ([]model.MenuItem, error)

	// SearchMenuItems retrieves available menu items whose name contains
	// the query, case-insensitively.
	SearchMenuItems(ctx context.Context, query string) ([]model.MenuItem, error)
}

// OrderService defines operations on the order ledger.
type OrderService interface {
	// PlaceOrder validates and persists a new order with its line items
	// as one atomic unit. Menu prices are snapshotted at this moment.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order and its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// TransitionStatus moves an order along the status state machine.
	TransitionStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error)

	// AssignDeliveryPerson assigns a courier to the order, or clears the
	// assignment when deliveryPersonID is nil.
	AssignDeliveryPerson(ctx context.Context, id uuid.UUID, deliveryPersonID *uuid.UUID) (*model.Order, error)

	// VerifyTotal recomputes the order's total from its stored line
	// items and reports an integrity fault when it differs from the
	// persisted total_amount.
	VerifyTotal(ctx context.Context, id uuid.UUID) error
}
