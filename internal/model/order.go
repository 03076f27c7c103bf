package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the canonical order lifecycle status.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusPickedUp       OrderStatus = "picked_up"
	StatusOnTheWay       OrderStatus = "on_the_way"
	StatusArrived        OrderStatus = "arrived"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
	StatusRefunded       OrderStatus = "refunded"
)

// AllStatuses returns every defined order status. Used by the startup
// exhaustiveness check and by table-driven tests.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusReadyForPickup,
		StatusPickedUp,
		StatusOnTheWay,
		StatusArrived,
		StatusDelivered,
		StatusCancelled,
		StatusRefunded,
	}
}

// ActorRole identifies who is requesting a status transition. Roles are
// supplied by the identity collaborator; the engine never authenticates.
type ActorRole string

const (
	RoleCustomer   ActorRole = "customer"
	RoleRestaurant ActorRole = "restaurant"
	RoleCourier    ActorRole = "courier"
	RoleSupport    ActorRole = "support"
)

// Coordinates is a delivery destination captured at order creation.
type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"dest_latitude"`
	Longitude float64 `json:"longitude" db:"dest_longitude"`
}

// Order represents one placed purchase from one customer at one
// restaurant. Status and the lifecycle timestamps are mutated only
// through the lifecycle engine; everything else is fixed at creation.
type Order struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	CustomerID   uuid.UUID   `json:"customerId" db:"customer_id"`
	RestaurantID uuid.UUID   `json:"restaurantId" db:"restaurant_id"`
	CourierID    *uuid.UUID  `json:"courierId,omitempty" db:"courier_id"`
	Items        []OrderItem `json:"items"`
	Status       OrderStatus `json:"status" db:"status"`

	// TotalAmount is the sum of item price snapshots times quantities,
	// captured at creation and never recomputed.
	TotalAmount float64     `json:"totalAmount" db:"total_amount"`
	DeliveryFee float64     `json:"deliveryFee" db:"delivery_fee"`
	Destination Coordinates `json:"destination"`

	// EstDeliveryMinutes is advisory only; zero means no estimate.
	EstDeliveryMinutes int `json:"estDeliveryMinutes,omitempty" db:"est_delivery_minutes"`

	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty" db:"accepted_at"`
	PreparedAt  *time.Time `json:"preparedAt,omitempty" db:"prepared_at"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty" db:"picked_up_at"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty" db:"delivered_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item with name and price snapshotted from the
// menu at order-creation time.
type OrderItem struct {
	ID         uuid.UUID `json:"-" db:"id"`
	OrderID    uuid.UUID `json:"-" db:"order_id"`
	MenuItemID uuid.UUID `json:"menuItemId" db:"menu_item_id"`
	Name       string    `json:"name" db:"name"`
	UnitPrice  float64   `json:"unitPrice" db:"unit_price"`
	Quantity   int       `json:"quantity" db:"quantity"`
	CreatedAt  time.Time `json:"-" db:"created_at"`
}

// CreateOrderRequest is the payload for placing a new order.
type CreateOrderRequest struct {
	CustomerID         uuid.UUID         `json:"customerId"`
	RestaurantID       uuid.UUID         `json:"restaurantId"`
	Items              []CreateOrderItem `json:"items"`
	DeliveryFee        float64           `json:"deliveryFee"`
	Destination        Coordinates       `json:"destination"`
	EstDeliveryMinutes int               `json:"estDeliveryMinutes,omitempty"`
}

// CreateOrderItem references a menu item; name and price are
// snapshotted server-side, never trusted from the client.
type CreateOrderItem struct {
	MenuItemID uuid.UUID `json:"menuItemId"`
	Quantity   int       `json:"quantity"`
}

// TransitionRequest asks the engine to move an order to a new status.
// ActorRole comes from the identity collaborator (request header), not
// the JSON body.
type TransitionRequest struct {
	Target OrderStatus `json:"target"`
	Role   ActorRole   `json:"-"`

	// ActorID identifies the courier on first pickup; optional otherwise.
	ActorID uuid.UUID `json:"actorId,omitempty"`

	// EtaMinutes optionally refreshes the advisory estimate when the
	// restaurant accepts the order.
	EtaMinutes int `json:"etaMinutes,omitempty"`
}
