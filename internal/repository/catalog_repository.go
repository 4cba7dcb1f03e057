package repository

import (
	"context"
	"fmt"

	"food-court/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalogue repository.
func NewCatalogRepository(db DB, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// GetRestaurantByID retrieves a restaurant by ID, or nil when absent.
func (r *catalogRepository) GetRestaurantByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	query := `
		SELECT id, owner_id, name, description, address, phone_number, is_active, created_at, updated_at
		FROM restaurants
		WHERE id = $1
	`

	var restaurant model.Restaurant
	err := r.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.OwnerID,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.Address,
		&restaurant.PhoneNumber,
		&restaurant.IsActive,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("restaurant_id", id.String()).Msg("restaurant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to query restaurant")
		return nil, fmt.Errorf("failed to query restaurant: %w", err)
	}

	return &restaurant, nil
}

// ListRestaurants retrieves restaurants ordered by name.
func (r *catalogRepository) ListRestaurants(ctx context.Context, activeOnly bool) ([]model.Restaurant, error) {
	query := `
		SELECT id, owner_id, name, description, address, phone_number, is_active, created_at, updated_at
		FROM restaurants
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var restaurant model.Restaurant
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.OwnerID,
			&restaurant.Name,
			&restaurant.Description,
			&restaurant.Address,
			&restaurant.PhoneNumber,
			&restaurant.IsActive,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan restaurant row")
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating restaurant rows")
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

// ListMenuItems retrieves a restaurant's menu ordered by name.
func (r *catalogRepository) ListMenuItems(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]model.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, description, price, is_available, created_at, updated_at
		FROM menu_items
		WHERE restaurant_id = $1
	`
	if availableOnly {
		query += ` AND is_available`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("restaurant_id", restaurantID.String()).
			Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows, r.logger)
}

// GetMenuItemsByIDs retrieves menu items by their IDs.
func (r *catalogRepository) GetMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, restaurant_id, name, description, price, is_available, created_at, updated_at
		FROM menu_items
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("id_count", len(ids)).Msg("failed to query menu items by ids")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows, r.logger)
}

// SearchMenuItems retrieves available menu items whose name contains
// the query, case-insensitively.
func (r *catalogRepository) SearchMenuItems(ctx context.Context, query string) ([]model.MenuItem, error) {
	sql := `
		SELECT id, restaurant_id, name, description, price, is_available, created_at, updated_at
		FROM menu_items
		WHERE is_available AND name ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search menu items")
		return nil, fmt.Errorf("failed to search menu items: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows, r.logger)
}

// scanMenuItems collects menu item rows into a slice.
func scanMenuItems(rows pgx.Rows, logger zerolog.Logger) ([]model.MenuItem, error) {
	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.IsAvailable,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}
