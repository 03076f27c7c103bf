// Package lifecycle owns the canonical order state machine: which
// status transitions are legal, which actor roles may trigger them,
// how orders are bucketed for role-specific views, and the derived
// monetary aggregates. Everything here is pure; persistence and
// transport live elsewhere.
package lifecycle

import (
	"fmt"

	"dishpatch/internal/model"
)

// transitions is the single source of truth for the lifecycle graph.
// Terminal statuses have an empty allowed-next set.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.StatusPending:        {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed:      {model.StatusPreparing, model.StatusCancelled},
	model.StatusPreparing:      {model.StatusReadyForPickup, model.StatusCancelled},
	model.StatusReadyForPickup: {model.StatusPickedUp, model.StatusCancelled},
	model.StatusPickedUp:       {model.StatusOnTheWay, model.StatusCancelled},
	model.StatusOnTheWay:       {model.StatusArrived},
	model.StatusArrived:        {model.StatusDelivered},
	model.StatusDelivered:      {model.StatusRefunded},
	model.StatusCancelled:      {},
	model.StatusRefunded:       {},
}

type edge struct {
	from, to model.OrderStatus
}

// edgeRoles gates each transition by actor role. This replaces the
// ad-hoc per-screen guards the apps used to carry: one table instead
// of scattered conditionals.
var edgeRoles = map[edge][]model.ActorRole{
	{model.StatusPending, model.StatusConfirmed}:          {model.RoleRestaurant},
	{model.StatusPending, model.StatusCancelled}:          {model.RoleRestaurant, model.RoleCustomer},
	{model.StatusConfirmed, model.StatusPreparing}:        {model.RoleRestaurant},
	{model.StatusConfirmed, model.StatusCancelled}:        {model.RoleRestaurant},
	{model.StatusPreparing, model.StatusReadyForPickup}:   {model.RoleRestaurant},
	{model.StatusPreparing, model.StatusCancelled}:        {model.RoleRestaurant},
	{model.StatusReadyForPickup, model.StatusPickedUp}:    {model.RoleCourier},
	{model.StatusReadyForPickup, model.StatusCancelled}:   {model.RoleRestaurant},
	{model.StatusPickedUp, model.StatusOnTheWay}:          {model.RoleCourier},
	{model.StatusPickedUp, model.StatusCancelled}:         {model.RoleRestaurant},
	{model.StatusOnTheWay, model.StatusArrived}:           {model.RoleCourier},
	{model.StatusArrived, model.StatusDelivered}:          {model.RoleCourier},
	{model.StatusDelivered, model.StatusRefunded}:         {model.RoleSupport},
}

// Timestamp column written on first entry into a status. Statuses not
// listed here carry no lifecycle timestamp.
const (
	ColumnAcceptedAt  = "accepted_at"
	ColumnPreparedAt  = "prepared_at"
	ColumnPickedUpAt  = "picked_up_at"
	ColumnDeliveredAt = "delivered_at"
)

var statusTimestamps = map[model.OrderStatus]string{
	model.StatusConfirmed:      ColumnAcceptedAt,
	model.StatusReadyForPickup: ColumnPreparedAt,
	model.StatusPickedUp:       ColumnPickedUpAt,
	model.StatusDelivered:      ColumnDeliveredAt,
}

// AllowedNext returns the set of statuses the order may move to.
func AllowedNext(from model.OrderStatus) []model.OrderStatus {
	return transitions[from]
}

// CanTransition reports whether from -> to is an edge of the graph.
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func IsTerminal(s model.OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// Authorized reports whether the role may trigger the from -> to edge.
// Only meaningful for edges that exist; unknown edges are never
// authorized.
func Authorized(from, to model.OrderStatus, role model.ActorRole) bool {
	for _, allowed := range edgeRoles[edge{from, to}] {
		if allowed == role {
			return true
		}
	}
	return false
}

// TimestampField returns the write-once timestamp column populated when
// an order first enters the given status, or "" if the status carries
// no timestamp.
func TimestampField(to model.OrderStatus) string {
	return statusTimestamps[to]
}

// CheckTransitions verifies the transition and role tables cover every
// defined status and that every edge is role-gated. Run at startup; a
// gap is a configuration defect, not a runtime error.
func CheckTransitions() error {
	for _, s := range model.AllStatuses() {
		next, ok := transitions[s]
		if !ok {
			return fmt.Errorf("status %q missing from transition table", s)
		}
		for _, to := range next {
			if len(edgeRoles[edge{s, to}]) == 0 {
				return fmt.Errorf("transition %q -> %q has no authorized roles", s, to)
			}
		}
	}
	return nil
}
