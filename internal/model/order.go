package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the current stage of an order's lifecycle.
type OrderStatus string

// Order lifecycle statuses.
const (
	StatusPending        OrderStatus = "pending"
	StatusAccepted       OrderStatus = "accepted"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// statusTransitions is the order state machine. An order moves forward
// through the delivery stages and may be cancelled at any stage before
// dispatch. There are no back-edges; delivered and cancelled are
// terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusAccepted, StatusCancelled},
	StatusAccepted:       {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid reports whether the status is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted.
func (s OrderStatus) IsTerminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether moving from s to next is a legal
// transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order represents a customer's food order. Customer, restaurant and
// line items are fixed at creation; only the status and the assigned
// delivery person change afterwards.
type Order struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	CustomerID       uuid.UUID       `json:"customerId" db:"customer_id"`
	RestaurantID     uuid.UUID       `json:"restaurantId" db:"restaurant_id"`
	DeliveryPersonID *uuid.UUID      `json:"deliveryPersonId,omitempty" db:"delivery_person_id"`
	TotalAmount      decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status           OrderStatus     `json:"status" db:"status"`
	DeliveryAddress  string          `json:"deliveryAddress" db:"delivery_address"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a single line in an order. PriceAtOrder is a
// snapshot of the menu item's price at checkout; later catalogue price
// edits never touch it.
type OrderItem struct {
	ID           uuid.UUID       `json:"-" db:"id"`
	OrderID      uuid.UUID       `json:"-" db:"order_id"`
	MenuItemID   uuid.UUID       `json:"menuItemId" db:"menu_item_id"`
	Quantity     int             `json:"quantity" db:"quantity"`
	PriceAtOrder decimal.Decimal `json:"priceAtOrder" db:"price_at_order"`
}

// LineTotal returns price_at_order multiplied by quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderRequest represents the request payload for placing an order.
type OrderRequest struct {
	CustomerID      uuid.UUID          `json:"customerId"`
	RestaurantID    uuid.UUID          `json:"restaurantId"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Items           []OrderLineRequest `json:"items"`
}

// OrderLineRequest represents a single requested line in an order.
// Repeating the same menu item merges into one line at checkout.
type OrderLineRequest struct {
	MenuItemID uuid.UUID `json:"menuItemId"`
	Quantity   int       `json:"quantity"`
}

// StatusUpdateRequest represents the request payload for a status
// transition.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}

// AssignDeliveryRequest represents the request payload for courier
// assignment. A null deliveryPersonId clears the current assignment.
type AssignDeliveryRequest struct {
	DeliveryPersonID *uuid.UUID `json:"deliveryPersonId"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderFilter selects which orders to list. Nil fields are ignored.
// Results are always newest first.
type OrderFilter struct {
	CustomerID       *uuid.UUID
	RestaurantID     *uuid.UUID
	DeliveryPersonID *uuid.UUID
	Status           *OrderStatus
	Limit            int
	Offset           int
}
