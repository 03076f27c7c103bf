package service

import (
	"context"
	"fmt"
	"time"

	"dishpatch/internal/model"
	"dishpatch/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	menuRepo repository.MenuRepository
	logger   zerolog.Logger
}

// NewMenuService creates a new menu catalog service.
func NewMenuService(menuRepo repository.MenuRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// ListByRestaurant retrieves a restaurant's menu.
func (s *menuService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error) {
	if restaurantID == uuid.Nil {
		return nil, fmt.Errorf("restaurant ID is required")
	}

	items, err := s.menuRepo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to list menu")
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	return items, nil
}

// Create adds a dish to a restaurant's menu. New dishes start available.
func (s *menuService) Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	if req == nil {
		return nil, fmt.Errorf("menu item request is nil")
	}
	if req.RestaurantID == uuid.Nil {
		return nil, fmt.Errorf("restaurant ID is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be greater than zero")
	}

	item := &model.MenuItem{
		ID:                 uuid.New(),
		RestaurantID:       req.RestaurantID,
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		Category:           req.Category,
		Available:          true,
		PreparationMinutes: req.PreparationMinutes,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", item.ID.String()).Msg("failed to create menu item")
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().
		Str("menu_item_id", item.ID.String()).
		Str("restaurant_id", item.RestaurantID.String()).
		Str("name", item.Name).
		Msg("menu item created")

	return item, nil
}
