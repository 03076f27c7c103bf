package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dishpatch/internal/lifecycle"
	"dishpatch/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// timestampColumns whitelists the lifecycle columns UpdateStatus may
// touch. The column name is interpolated into SQL, so nothing outside
// this set is ever accepted.
var timestampColumns = map[string]bool{
	lifecycle.ColumnAcceptedAt:  true,
	lifecycle.ColumnPreparedAt:  true,
	lifecycle.ColumnPickedUpAt:  true,
	lifecycle.ColumnDeliveredAt: true,
}

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// CreateOrder inserts the order and its items in one transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (
			id, customer_id, restaurant_id, status,
			total_amount, delivery_fee, dest_latitude, dest_longitude,
			est_delivery_minutes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, orderQuery,
		order.ID, order.CustomerID, order.RestaurantID, order.Status,
		order.TotalAmount, order.DeliveryFee,
		order.Destination.Latitude, order.Destination.Longitude,
		order.EstDeliveryMinutes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, menu_item_id, name, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(itemQuery,
			item.ID, item.OrderID, item.MenuItemID,
			item.Name, item.UnitPrice, item.Quantity, item.CreatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(order.Items); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Str("menu_item_id", order.Items[i].MenuItemID.String()).
				Msg("failed to insert order item")
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit order")
		return fmt.Errorf("failed to commit order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order created")

	return nil
}

const orderColumns = `
	id, customer_id, restaurant_id, courier_id, status,
	total_amount, delivery_fee, dest_latitude, dest_longitude,
	est_delivery_minutes, created_at, accepted_at, prepared_at,
	picked_up_at, delivered_at, updated_at
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.RestaurantID, &o.CourierID, &o.Status,
		&o.TotalAmount, &o.DeliveryFee,
		&o.Destination.Latitude, &o.Destination.Longitude,
		&o.EstDeliveryMinutes, &o.CreatedAt, &o.AcceptedAt, &o.PreparedAt,
		&o.PickedUpAt, &o.DeliveredAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, model.ErrOrderNotFound
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.itemsForOrders(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]

	return order, nil
}

// List retrieves orders matching the filter, most recently created
// rows first, items included.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.CustomerID != uuid.Nil {
		args = append(args, filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.RestaurantID != uuid.Nil {
		args = append(args, filter.RestaurantID)
		conds = append(conds, fmt.Sprintf("restaurant_id = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var ids []uuid.UUID
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// UpdateStatus applies a compare-and-set transition: the row is only
// updated when the stored status still equals upd.From. Lifecycle
// timestamps and the courier reference are COALESCEd so they are
// written at most once.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*model.Order, error) {
	sets := []string{"status = $1", "updated_at = $2"}
	args := []any{upd.To, upd.At}

	if upd.TimestampField != "" {
		if !timestampColumns[upd.TimestampField] {
			return nil, fmt.Errorf("unknown timestamp column %q", upd.TimestampField)
		}
		args = append(args, upd.At)
		sets = append(sets, fmt.Sprintf("%s = COALESCE(%s, $%d)", upd.TimestampField, upd.TimestampField, len(args)))
	}
	if upd.CourierID != nil {
		args = append(args, *upd.CourierID)
		sets = append(sets, fmt.Sprintf("courier_id = COALESCE(courier_id, $%d)", len(args)))
	}
	if upd.EtaMinutes > 0 {
		args = append(args, upd.EtaMinutes)
		sets = append(sets, fmt.Sprintf("est_delivery_minutes = $%d", len(args)))
	}

	args = append(args, id)
	idArg := len(args)
	args = append(args, upd.From)
	fromArg := len(args)

	query := fmt.Sprintf(
		"UPDATE orders SET %s WHERE id = $%d AND status = $%d RETURNING %s",
		strings.Join(sets, ", "), idArg, fromArg, orderColumns,
	)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row is either gone or its status moved under us.
			// Disambiguate so the caller can report the right error.
			var exists bool
			checkErr := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)", id).Scan(&exists)
			if checkErr != nil {
				return nil, fmt.Errorf("failed to check order existence: %w", checkErr)
			}
			if !exists {
				return nil, model.ErrOrderNotFound
			}
			r.logger.Debug().
				Str("order_id", id.String()).
				Str("expected_status", string(upd.From)).
				Msg("status transition lost compare-and-set race")
			return nil, model.ErrConflict
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	items, err := r.itemsForOrders(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]

	r.logger.Debug().
		Str("order_id", id.String()).
		Str("from", string(upd.From)).
		Str("to", string(upd.To)).
		Msg("order status updated")

	return order, nil
}

// itemsForOrders loads line items for the given orders keyed by order id.
func (r *orderRepository) itemsForOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_item_id, name, unit_price, quantity, created_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]model.OrderItem)
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID,
			&item.Name, &item.UnitPrice, &item.Quantity, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
