package repository

import (
	"context"
	"fmt"

	"dishpatch/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// menuRepository implements MenuRepository using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

const menuColumns = `
	id, restaurant_id, name, description, price, category,
	available, preparation_minutes, created_at
`

// GetByRestaurant retrieves a restaurant's menu items.
func (r *menuRepository) GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY category, name`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.Category, &item.Available, &item.PreparationMinutes, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// GetByIDs retrieves menu items by their IDs.
func (r *menuRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return []model.MenuItem{}, nil
	}

	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query menu items by ids")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.Category, &item.Available, &item.PreparationMinutes, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// Create inserts a new menu item.
func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (
			id, restaurant_id, name, description, price, category,
			available, preparation_minutes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.RestaurantID, item.Name, item.Description,
		item.Price, item.Category, item.Available, item.PreparationMinutes, item.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("menu_item_id", item.ID.String()).
			Msg("failed to insert menu item")
		return fmt.Errorf("failed to insert menu item: %w", err)
	}

	r.logger.Debug().
		Str("menu_item_id", item.ID.String()).
		Str("restaurant_id", item.RestaurantID.String()).
		Msg("menu item created")

	return nil
}
