package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"food-court/internal/model"
	"food-court/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r.URL.Path, "")
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/orders requests with optional filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	filter, err := parseOrderFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles POST /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r.URL.Path, "/status")
	if !ok {
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.TransitionStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// AssignDeliveryPerson handles POST /api/orders/{id}/delivery-person requests.
func (h *OrderHandler) AssignDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r.URL.Path, "/delivery-person")
	if !ok {
		return
	}

	var req model.AssignDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.AssignDeliveryPerson(r.Context(), orderID, req.DeliveryPersonID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// orderIDFromPath extracts the order ID from a path of the form
// /api/orders/{id}{suffix}. It writes the error response itself when
// the path is malformed.
func (h *OrderHandler) orderIDFromPath(w http.ResponseWriter, path, suffix string) (uuid.UUID, bool) {
	idStr := strings.TrimPrefix(path, "/api/orders/")
	idStr = strings.TrimSuffix(idStr, suffix)
	idStr = strings.Trim(idStr, "/")

	if idStr == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}

	return orderID, true
}

// parseOrderFilter builds an OrderFilter from list query parameters.
func parseOrderFilter(r *http.Request) (model.OrderFilter, error) {
	var filter model.OrderFilter
	q := r.URL.Query()

	for param, target := range map[string]**uuid.UUID{
		"customer_id":        &filter.CustomerID,
		"restaurant_id":      &filter.RestaurantID,
		"delivery_person_id": &filter.DeliveryPersonID,
	} {
		if value := q.Get(param); value != "" {
			id, err := uuid.Parse(value)
			if err != nil {
				return filter, model.NewDomainError(model.ErrCodeValidation, "invalid "+param)
			}
			*target = &id
		}
	}

	if value := q.Get("status"); value != "" {
		status := model.OrderStatus(value)
		filter.Status = &status
	}

	if value := q.Get("limit"); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			return filter, model.NewDomainError(model.ErrCodeValidation, "invalid limit")
		}
		filter.Limit = limit
	}

	if value := q.Get("offset"); value != "" {
		offset, err := strconv.Atoi(value)
		if err != nil || offset < 0 {
			return filter, model.NewDomainError(model.ErrCodeValidation, "invalid offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}
