package service

import (
	"context"
	"fmt"
	"strings"

	"food-court/internal/model"
	"food-court/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(catalogRepo repository.CatalogRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ListRestaurants retrieves restaurants ordered by name.
func (s *catalogService) ListRestaurants(ctx context.Context, includeInactive bool) ([]model.Restaurant, error) {
	restaurants, err := s.catalogRepo.ListRestaurants(ctx, !includeInactive)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list restaurants")
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

// GetRestaurant retrieves a single restaurant by ID.
func (s *catalogService) GetRestaurant(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.catalogRepo.GetRestaurantByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to get restaurant")
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}
	return restaurant, nil
}

// ListMenu retrieves a restaurant's menu ordered by name.
func (s *catalogService) ListMenu(ctx context.Context, restaurantID uuid.UUID, includeUnavailable bool) ([]model.MenuItem, error) {
	restaurant, err := s.catalogRepo.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}

	items, err := s.catalogRepo.ListMenuItems(ctx, restaurantID, !includeUnavailable)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("restaurant_id", restaurantID.String()).
			Msg("failed to list menu items")
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

// SearchMenuItems retrieves available menu items whose name contains
// the query, case-insensitively.
func (s *catalogService) SearchMenuItems(ctx context.Context, query string) ([]model.MenuItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Search query is required")
	}

	items, err := s.catalogRepo.SearchMenuItems(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search menu items")
		return nil, fmt.Errorf("failed to search menu items: %w", err)
	}

	return items, nil
}
