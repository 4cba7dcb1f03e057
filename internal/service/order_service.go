package service

import (
	"context"
	"fmt"
	"time"

	"food-court/internal/model"
	"food-court/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// deliveryAssignable is the set of statuses in which a courier may be
// assigned: after the restaurant has taken the order, before dispatch.
var deliveryAssignable = []model.OrderStatus{
	model.StatusAccepted,
	model.StatusPreparing,
}

// deliveryClearable is the set of statuses in which an assignment may
// be cleared: everything non-terminal.
var deliveryClearable = []model.OrderStatus{
	model.StatusPending,
	model.StatusAccepted,
	model.StatusPreparing,
	model.StatusOutForDelivery,
}

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder validates and persists a new order with its line items as
// one atomic unit.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.userRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrUserNotFound
	}
	if customer.Role != model.RoleCustomer {
		s.logger.Warn().
			Str("user_id", customer.ID.String()).
			Str("role", string(customer.Role)).
			Msg("order placement attempted by non-customer account")
		return nil, model.ErrNotACustomer
	}

	restaurant, err := s.catalogRepo.GetRestaurantByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}
	if !restaurant.IsActive {
		s.logger.Warn().
			Str("restaurant_id", restaurant.ID.String()).
			Msg("order placement attempted on inactive restaurant")
		return nil, model.ErrRestaurantInactive
	}

	lines := mergeLines(req.Items)

	menuItemIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		menuItemIDs[i] = line.MenuItemID
	}

	menuItems, err := s.catalogRepo.GetMenuItemsByIDs(ctx, menuItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	byID := make(map[uuid.UUID]model.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	now := time.Now()
	orderID := uuid.New()

	orderItems := make([]model.OrderItem, len(lines))
	total := decimal.Zero
	for i, line := range lines {
		menuItem, ok := byID[line.MenuItemID]
		if !ok {
			return nil, model.ErrMenuItemNotFound
		}
		if menuItem.RestaurantID != req.RestaurantID {
			s.logger.Warn().
				Str("menu_item_id", menuItem.ID.String()).
				Str("restaurant_id", req.RestaurantID.String()).
				Msg("menu item belongs to a different restaurant")
			return nil, model.ErrItemWrongRestaurant
		}
		if !menuItem.IsAvailable {
			return nil, model.ErrItemUnavailable
		}

		// Snapshot of the current catalogue price. Later price edits
		// must never change this order's cost.
		orderItems[i] = model.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			MenuItemID:   line.MenuItemID,
			Quantity:     line.Quantity,
			PriceAtOrder: menuItem.Price,
		}
		total = total.Add(orderItems[i].LineTotal())
	}

	order := &model.Order{
		ID:              orderID,
		CustomerID:      req.CustomerID,
		RestaurantID:    req.RestaurantID,
		TotalAmount:     total,
		Status:          model.StatusPending,
		DeliveryAddress: req.DeliveryAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("restaurant_id", order.RestaurantID.String()).
		Str("total_amount", total.StringFixed(2)).
		Int("item_count", len(orderItems)).
		Msg("order placed")

	return &model.OrderResponse{Order: *order, Items: orderItems}, nil
}

// GetByID retrieves an order and its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// List retrieves orders matching the filter, newest first.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, model.ErrUnknownStatus
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// TransitionStatus moves an order along the status state machine. The
// ledger enforces state-machine legality only; which caller may trigger
// which transition is the boundary's policy concern.
func (s *orderService) TransitionStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, model.ErrUnknownStatus
	}

	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, model.NewInvalidTransition(order.Status, next)
	}

	applied, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}
	if !applied {
		// A concurrent transition won; report against the fresh status.
		current, _, reloadErr := s.orderRepo.GetByID(ctx, id)
		if reloadErr != nil {
			return nil, fmt.Errorf("failed to reload order: %w", reloadErr)
		}
		if current == nil {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("stale_status", string(order.Status)).
			Str("current_status", string(current.Status)).
			Str("requested", string(next)).
			Msg("concurrent status transition rejected")
		return nil, model.NewInvalidTransition(current.Status, next)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Msg("order status updated")

	updated, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	if updated == nil {
		return nil, model.ErrOrderNotFound
	}

	return updated, nil
}

// AssignDeliveryPerson assigns a courier to the order, or clears the
// assignment when deliveryPersonID is nil.
func (s *orderService) AssignDeliveryPerson(ctx context.Context, id uuid.UUID, deliveryPersonID *uuid.UUID) (*model.Order, error) {
	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	allowed := deliveryClearable
	if deliveryPersonID != nil {
		person, err := s.userRepo.GetByID(ctx, *deliveryPersonID)
		if err != nil {
			return nil, fmt.Errorf("failed to load delivery person: %w", err)
		}
		if person == nil {
			return nil, model.ErrUserNotFound
		}
		if person.Role != model.RoleDeliveryPerson {
			s.logger.Warn().
				Str("user_id", person.ID.String()).
				Str("role", string(person.Role)).
				Msg("courier assignment attempted with non-courier account")
			return nil, model.ErrNotADeliveryPerson
		}
		allowed = deliveryAssignable
	}

	if !statusIn(order.Status, allowed) {
		return nil, assignmentError(order.Status, deliveryPersonID)
	}

	applied, err := s.orderRepo.UpdateDeliveryPerson(ctx, id, deliveryPersonID, allowed)
	if err != nil {
		return nil, fmt.Errorf("failed to update delivery person: %w", err)
	}
	if !applied {
		current, _, reloadErr := s.orderRepo.GetByID(ctx, id)
		if reloadErr != nil {
			return nil, fmt.Errorf("failed to reload order: %w", reloadErr)
		}
		if current == nil {
			return nil, model.ErrOrderNotFound
		}
		return nil, assignmentError(current.Status, deliveryPersonID)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Bool("cleared", deliveryPersonID == nil).
		Msg("delivery person updated")

	updated, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	if updated == nil {
		return nil, model.ErrOrderNotFound
	}

	return updated, nil
}

// VerifyTotal recomputes the order's total from its stored line items.
// A mismatch is a data-integrity fault, never a normal runtime
// condition.
func (s *orderService) VerifyTotal(ctx context.Context, id uuid.UUID) error {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}

	if !sum.Equal(order.TotalAmount) {
		s.logger.Error().
			Str("order_id", id.String()).
			Str("total_amount", order.TotalAmount.String()).
			Str("line_items_sum", sum.String()).
			Msg("order total does not match its line items")
		return model.NewIntegrityFault(fmt.Sprintf(
			"order %s total %s does not match line items sum %s",
			id, order.TotalAmount.StringFixed(2), sum.StringFixed(2)))
	}

	return nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeValidation, "Order request is required")
	}

	if req.CustomerID == uuid.Nil {
		return model.NewDomainError(model.ErrCodeValidation, "Customer is required")
	}

	if req.RestaurantID == uuid.Nil {
		return model.NewDomainError(model.ErrCodeValidation, "Restaurant is required")
	}

	if req.DeliveryAddress == "" {
		return model.ErrEmptyDeliveryAddress
	}

	if len(req.Items) == 0 {
		return model.ErrEmptyOrder
	}

	for i, line := range req.Items {
		if line.MenuItemID == uuid.Nil {
			return model.NewDomainError(model.ErrCodeValidation,
				fmt.Sprintf("Item %d: menu item is required", i))
		}
		if line.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Str("menu_item_id", line.MenuItemID.String()).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// mergeLines collapses repeated menu items into one line each, summing
// quantities. First-seen position is preserved.
func mergeLines(requested []model.OrderLineRequest) []model.OrderLineRequest {
	merged := make([]model.OrderLineRequest, 0, len(requested))
	index := make(map[uuid.UUID]int, len(requested))

	for _, line := range requested {
		if i, ok := index[line.MenuItemID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.MenuItemID] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

// statusIn reports whether status is in the allowed set.
func statusIn(status model.OrderStatus, allowed []model.OrderStatus) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

// assignmentError builds the invalid-transition error for a courier
// change rejected at the order's current status.
func assignmentError(status model.OrderStatus, deliveryPersonID *uuid.UUID) *model.DomainError {
	if deliveryPersonID == nil {
		return model.NewDomainError(model.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot clear delivery person while order is %s", status))
	}
	return model.NewDomainError(model.ErrCodeInvalidTransition,
		fmt.Sprintf("Cannot assign delivery person while order is %s", status))
}
