package handler

import (
	"net/http"
	"strings"

	"food-court/internal/model"
	"food-court/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CatalogHandler handles restaurant and menu HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// ListRestaurants handles GET /api/restaurants requests.
func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	includeInactive := r.URL.Query().Get("all") == "true"

	restaurants, err := h.service.ListRestaurants(r.Context(), includeInactive)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if restaurants == nil {
		restaurants = []model.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

// GetRestaurant handles GET /api/restaurants/{id} requests.
func (h *CatalogHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	restaurantID, ok := h.restaurantIDFromPath(w, r.URL.Path, "")
	if !ok {
		return
	}

	restaurant, err := h.service.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}

// ListMenu handles GET /api/restaurants/{id}/menu requests.
func (h *CatalogHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	restaurantID, ok := h.restaurantIDFromPath(w, r.URL.Path, "/menu")
	if !ok {
		return
	}

	includeUnavailable := r.URL.Query().Get("all") == "true"

	items, err := h.service.ListMenu(r.Context(), restaurantID, includeUnavailable)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// SearchMenu handles GET /api/menu/search?q=... requests.
func (h *CatalogHandler) SearchMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	items, err := h.service.SearchMenuItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// restaurantIDFromPath extracts the restaurant ID from a path of the
// form /api/restaurants/{id}{suffix}.
func (h *CatalogHandler) restaurantIDFromPath(w http.ResponseWriter, path, suffix string) (uuid.UUID, bool) {
	idStr := strings.TrimPrefix(path, "/api/restaurants/")
	idStr = strings.TrimSuffix(idStr, suffix)
	idStr = strings.Trim(idStr, "/")

	if idStr == "" {
		writeError(w, http.StatusBadRequest, "restaurant ID is required", h.logger)
		return uuid.Nil, false
	}

	restaurantID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid restaurant ID format", h.logger)
		return uuid.Nil, false
	}

	return restaurantID, true
}
