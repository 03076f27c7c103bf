package repository

import (
	"context"
	"sync"
	"time"

	"dishpatch/internal/lifecycle"
	"dishpatch/internal/model"

	"github.com/google/uuid"
)

// memoryOrderRepository is a mutex-guarded in-memory OrderRepository.
// Used when the database is disabled in config and by unit tests that
// need real compare-and-set semantics without a running Postgres.
type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*model.Order
}

// NewMemoryOrderRepository creates an empty in-memory order repository.
func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{
		orders: make(map[uuid.UUID]*model.Order),
	}
}

func copyOrder(o *model.Order) *model.Order {
	cp := *o
	if o.CourierID != nil {
		id := *o.CourierID
		cp.CourierID = &id
	}
	cp.Items = make([]model.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	copyTime := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := *t
		return &v
	}
	cp.AcceptedAt = copyTime(o.AcceptedAt)
	cp.PreparedAt = copyTime(o.PreparedAt)
	cp.PickedUpAt = copyTime(o.PickedUpAt)
	cp.DeliveredAt = copyTime(o.DeliveredAt)
	return &cp
}

func (r *memoryOrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memoryOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *memoryOrderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []model.Order
	for _, o := range r.orders {
		if filter.CustomerID != uuid.Nil && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.RestaurantID != uuid.Nil && o.RestaurantID != filter.RestaurantID {
			continue
		}
		orders = append(orders, *copyOrder(o))
	}
	return orders, nil
}

// UpdateStatus serializes all transitions behind the repository mutex:
// the compare-and-set either observes the expected status or fails
// with model.ErrConflict, never a partial write.
func (r *memoryOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != upd.From {
		return nil, model.ErrConflict
	}

	order.Status = upd.To
	order.UpdatedAt = upd.At

	switch upd.TimestampField {
	case lifecycle.ColumnAcceptedAt:
		if order.AcceptedAt == nil {
			at := upd.At
			order.AcceptedAt = &at
		}
	case lifecycle.ColumnPreparedAt:
		if order.PreparedAt == nil {
			at := upd.At
			order.PreparedAt = &at
		}
	case lifecycle.ColumnPickedUpAt:
		if order.PickedUpAt == nil {
			at := upd.At
			order.PickedUpAt = &at
		}
	case lifecycle.ColumnDeliveredAt:
		if order.DeliveredAt == nil {
			at := upd.At
			order.DeliveredAt = &at
		}
	}

	if upd.CourierID != nil && order.CourierID == nil {
		courierID := *upd.CourierID
		order.CourierID = &courierID
	}
	if upd.EtaMinutes > 0 {
		order.EstDeliveryMinutes = upd.EtaMinutes
	}

	return copyOrder(order), nil
}

// memoryMenuRepository is a mutex-guarded in-memory MenuRepository.
type memoryMenuRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.MenuItem
}

// NewMemoryMenuRepository creates an empty in-memory menu repository.
func NewMemoryMenuRepository() MenuRepository {
	return &memoryMenuRepository{
		items: make(map[uuid.UUID]model.MenuItem),
	}
}

func (r *memoryMenuRepository) GetByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []model.MenuItem
	for _, item := range r.items {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *memoryMenuRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.MenuItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *memoryMenuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	return nil
}
