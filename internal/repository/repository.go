package repository

import (
	"context"
	"time"

	"dishpatch/internal/model"

	"github.com/google/uuid"
)

// OrderFilter narrows List results. Zero-value fields are ignored.
type OrderFilter struct {
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
}

// StatusUpdate describes one atomic status transition. From is the
// caller's observed status; the update applies only if the stored
// status still matches (compare-and-set), otherwise the call fails
// with model.ErrConflict.
type StatusUpdate struct {
	From model.OrderStatus
	To   model.OrderStatus

	// TimestampField is the write-once lifecycle column to populate,
	// or "" when the target status carries no timestamp. Must be one
	// of the lifecycle column names; anything else is rejected.
	TimestampField string

	// CourierID is set on first pickup, left nil otherwise. Write-once.
	CourierID *uuid.UUID

	// EtaMinutes refreshes the advisory estimate when > 0.
	EtaMinutes int

	At time.Time
}

// OrderRepository defines the interface for order data access. The
// lifecycle engine is injected with this interface and never reaches
// into ambient storage state.
type OrderRepository interface {
	// CreateOrder persists a new order and its items atomically.
	CreateOrder(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order with its items. Returns
	// model.ErrOrderNotFound when the id does not resolve.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders matching the filter, items included.
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)

	// UpdateStatus applies a compare-and-set transition and returns
	// the updated order. Fails with model.ErrConflict when the stored
	// status no longer matches upd.From, model.ErrOrderNotFound when
	// the id does not resolve.
	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*model.Order, error)
}

// MenuRepository defines the interface for menu catalog access.
type MenuRepository interface {
	// GetByRestaurant retrieves a restaurant's menu items.
	GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error)

	// GetByIDs retrieves menu items by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error)

	// Create inserts a new menu item.
	Create(ctx context.Context, item *model.MenuItem) error
}
