package service

import (
	"context"
	"fmt"
	"time"

	"dishpatch/internal/lifecycle"
	"dishpatch/internal/model"
	"dishpatch/internal/notify"
	"dishpatch/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
	notifier  notify.Notifier
	logger    zerolog.Logger
}

// NewOrderService creates a new order lifecycle service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	notifier notify.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		notifier:  notifier,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create places a new order. Item names and prices are snapshotted
// from the menu so later menu edits never change a placed order.
func (s *orderService) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		itemIDs[i] = item.MenuItemID
	}

	menuItems, err := s.menuRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("item_count", len(itemIDs)).Msg("failed to load menu items")
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	menuByID := make(map[uuid.UUID]model.MenuItem, len(menuItems))
	for _, m := range menuItems {
		menuByID[m.ID] = m
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:                 uuid.New(),
		CustomerID:         req.CustomerID,
		RestaurantID:       req.RestaurantID,
		Status:             model.StatusPending,
		DeliveryFee:        req.DeliveryFee,
		Destination:        req.Destination,
		EstDeliveryMinutes: req.EstDeliveryMinutes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var total float64
	order.Items = make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		menuItem, ok := menuByID[item.MenuItemID]
		if !ok {
			s.logger.Warn().
				Str("menu_item_id", item.MenuItemID.String()).
				Msg("menu item not found")
			return nil, model.ErrMenuItemNotFound
		}
		order.Items[i] = model.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			UnitPrice:  menuItem.Price,
			Quantity:   item.Quantity,
			CreatedAt:  now,
		}
		total += lifecycle.LineTotal(order.Items[i])
	}
	order.TotalAmount = total

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("restaurant_id", order.RestaurantID.String()).
		Int("item_count", len(order.Items)).
		Float64("total_amount", order.TotalAmount).
		Msg("order created")

	return order, nil
}

// RequestTransition validates the requested edge against the lifecycle
// graph and the role table, then applies it with a compare-and-set on
// the observed status. Either the whole transition commits (status,
// timestamp, event) or nothing does.
func (s *orderService) RequestTransition(ctx context.Context, id uuid.UUID, req *model.TransitionRequest) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := order.Status
	if !lifecycle.CanTransition(current, req.Target) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(current)).
			Str("to", string(req.Target)).
			Msg("invalid transition requested")
		return nil, model.ErrInvalidTransition
	}
	if !lifecycle.Authorized(current, req.Target, req.Role) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(current)).
			Str("to", string(req.Target)).
			Str("role", string(req.Role)).
			Msg("actor not permitted for transition")
		return nil, model.ErrUnauthorizedActor
	}

	upd := repository.StatusUpdate{
		From:           current,
		To:             req.Target,
		TimestampField: lifecycle.TimestampField(req.Target),
		At:             time.Now().UTC(),
	}
	if req.Target == model.StatusPickedUp && req.ActorID != uuid.Nil {
		courierID := req.ActorID
		upd.CourierID = &courierID
	}
	if req.Target == model.StatusConfirmed && req.EtaMinutes > 0 {
		upd.EtaMinutes = req.EtaMinutes
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	event := notify.StatusChangedEvent{
		OrderID:        updated.ID,
		PreviousStatus: current,
		NewStatus:      updated.Status,
		OccurredAt:     upd.At,
	}
	if err := s.notifier.OrderStatusChanged(ctx, event); err != nil {
		// The transition is already committed; notification failures
		// are logged, not surfaced.
		s.logger.Warn().Err(err).Str("order_id", id.String()).Msg("failed to notify status change")
	}

	s.logger.Info().
		Str("order_id", updated.ID.String()).
		Str("from", string(current)).
		Str("to", string(updated.Status)).
		Str("role", string(req.Role)).
		Msg("order transitioned")

	return updated, nil
}

// GetByID retrieves an order by its ID.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListByBucket fetches the visible set and classifies it under the
// given policy. Classification is pure over the fetched snapshot.
func (s *orderService) ListByBucket(ctx context.Context, policy lifecycle.ViewPolicy, bucket lifecycle.Bucket, filter repository.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return lifecycle.ListByBucket(orders, bucket, policy), nil
}

// BucketCounts computes tab badge counters over the visible set.
func (s *orderService) BucketCounts(ctx context.Context, policy lifecycle.ViewPolicy, filter repository.OrderFilter) (map[lifecycle.Bucket]int, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return lifecycle.BucketCounts(orders, policy), nil
}

// validateCreateRequest enforces creation-time invariants.
func (s *orderService) validateCreateRequest(req *model.CreateOrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}
	if req.CustomerID == uuid.Nil {
		return fmt.Errorf("customer ID is required")
	}
	if req.RestaurantID == uuid.Nil {
		return fmt.Errorf("restaurant ID is required")
	}
	if len(req.Items) == 0 {
		return model.ErrEmptyOrder
	}

	for i, item := range req.Items {
		if item.MenuItemID == uuid.Nil {
			return fmt.Errorf("item %d: menu item ID is required", i)
		}
		if item.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Str("menu_item_id", item.MenuItemID.String()).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
