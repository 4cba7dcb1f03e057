package router

import (
	"net/http"
	"strings"

	"food-court/internal/handler"
	"food-court/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Restaurant routes: collection, single restaurant, and its menu.
	restaurantRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/restaurants" || r.URL.Path == "/api/restaurants/" {
			catalogHandler.ListRestaurants(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/menu") {
			catalogHandler.ListMenu(w, r)
			return
		}
		catalogHandler.GetRestaurant(w, r)
	}
	mux.HandleFunc("/api/restaurants", restaurantRouteHandler)
	mux.HandleFunc("/api/restaurants/", restaurantRouteHandler)

	mux.HandleFunc("/api/menu/search", catalogHandler.SearchMenu)

	// Order routes: creation and listing on the collection, retrieval,
	// status transitions and courier assignment on a single order.
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/" {
			if r.Method == http.MethodPost {
				orderHandler.Create(w, r)
				return
			}
			orderHandler.List(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/status") {
			orderHandler.UpdateStatus(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/delivery-person") {
			orderHandler.AssignDeliveryPerson(w, r)
			return
		}
		orderHandler.GetByID(w, r)
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
