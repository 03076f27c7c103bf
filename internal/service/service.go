package service

import (
	"context"

	"dishpatch/internal/lifecycle"
	"dishpatch/internal/model"
	"dishpatch/internal/repository"

	"github.com/google/uuid"
)

// OrderService is the lifecycle engine's public surface: it owns all
// status mutation and the role-scoped views the apps render.
type OrderService interface {
	// Create places a new order in pending status. Fails with
	// model.ErrEmptyOrder when items is empty, model.ErrInvalidQuantity
	// when any quantity < 1, model.ErrMenuItemNotFound when an item
	// does not resolve against the menu.
	Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)

	// RequestTransition validates and applies one status transition.
	// Fails with model.ErrInvalidTransition, model.ErrUnauthorizedActor,
	// model.ErrOrderNotFound or model.ErrConflict.
	RequestTransition(ctx context.Context, id uuid.UUID, req *model.TransitionRequest) (*model.Order, error)

	// GetByID retrieves an order. Fails with model.ErrOrderNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByBucket returns the orders in one view-policy bucket,
	// most recent first.
	ListByBucket(ctx context.Context, policy lifecycle.ViewPolicy, bucket lifecycle.Bucket, filter repository.OrderFilter) ([]model.Order, error)

	// BucketCounts returns the badge counters for every bucket of the
	// policy, zero counts included.
	BucketCounts(ctx context.Context, policy lifecycle.ViewPolicy, filter repository.OrderFilter) (map[lifecycle.Bucket]int, error)
}

// MenuService defines operations for the restaurant menu catalog.
type MenuService interface {
	// ListByRestaurant retrieves a restaurant's menu.
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error)

	// Create adds a dish to a restaurant's menu.
	Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error)
}
