package lifecycle

import (
	"testing"

	"dishpatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_AllowedEdges(t *testing.T) {
	tests := []struct {
		from model.OrderStatus
		to   model.OrderStatus
	}{
		{model.StatusPending, model.StatusConfirmed},
		{model.StatusPending, model.StatusCancelled},
		{model.StatusConfirmed, model.StatusPreparing},
		{model.StatusConfirmed, model.StatusCancelled},
		{model.StatusPreparing, model.StatusReadyForPickup},
		{model.StatusPreparing, model.StatusCancelled},
		{model.StatusReadyForPickup, model.StatusPickedUp},
		{model.StatusReadyForPickup, model.StatusCancelled},
		{model.StatusPickedUp, model.StatusOnTheWay},
		{model.StatusPickedUp, model.StatusCancelled},
		{model.StatusOnTheWay, model.StatusArrived},
		{model.StatusArrived, model.StatusDelivered},
		{model.StatusDelivered, model.StatusRefunded},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.True(t, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransition_RejectsEverythingElse(t *testing.T) {
	// Build the allowed set, then assert every other pair is rejected.
	allowed := make(map[model.OrderStatus]map[model.OrderStatus]bool)
	for _, from := range model.AllStatuses() {
		allowed[from] = make(map[model.OrderStatus]bool)
		for _, to := range AllowedNext(from) {
			allowed[from][to] = true
		}
	}

	for _, from := range model.AllStatuses() {
		for _, to := range model.AllStatuses() {
			if allowed[from][to] {
				continue
			}
			assert.False(t, CanTransition(from, to),
				"expected %s -> %s to be rejected", from, to)
		}
	}
}

func TestCanTransition_SkippingStagesRejected(t *testing.T) {
	// A courier cannot pick up an order that was only confirmed.
	assert.False(t, CanTransition(model.StatusConfirmed, model.StatusPickedUp))
	// A delivered order cannot go back to preparing.
	assert.False(t, CanTransition(model.StatusDelivered, model.StatusPreparing))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(model.StatusCancelled))
	assert.True(t, IsTerminal(model.StatusRefunded))

	for _, s := range model.AllStatuses() {
		if s == model.StatusCancelled || s == model.StatusRefunded {
			continue
		}
		assert.False(t, IsTerminal(s), "expected %s to be non-terminal", s)
	}
}

func TestTerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	assert.Empty(t, AllowedNext(model.StatusCancelled))
	assert.Empty(t, AllowedNext(model.StatusRefunded))
}

func TestAuthorized(t *testing.T) {
	tests := []struct {
		name    string
		from    model.OrderStatus
		to      model.OrderStatus
		role    model.ActorRole
		allowed bool
	}{
		{"restaurant accepts pending", model.StatusPending, model.StatusConfirmed, model.RoleRestaurant, true},
		{"customer cannot accept", model.StatusPending, model.StatusConfirmed, model.RoleCustomer, false},
		{"customer cancels while pending", model.StatusPending, model.StatusCancelled, model.RoleCustomer, true},
		{"customer cannot cancel after acceptance", model.StatusConfirmed, model.StatusCancelled, model.RoleCustomer, false},
		{"restaurant starts preparing", model.StatusConfirmed, model.StatusPreparing, model.RoleRestaurant, true},
		{"restaurant marks ready", model.StatusPreparing, model.StatusReadyForPickup, model.RoleRestaurant, true},
		{"courier cannot mark ready", model.StatusPreparing, model.StatusReadyForPickup, model.RoleCourier, false},
		{"courier picks up", model.StatusReadyForPickup, model.StatusPickedUp, model.RoleCourier, true},
		{"restaurant cannot pick up", model.StatusReadyForPickup, model.StatusPickedUp, model.RoleRestaurant, false},
		{"courier departs", model.StatusPickedUp, model.StatusOnTheWay, model.RoleCourier, true},
		{"courier arrives", model.StatusOnTheWay, model.StatusArrived, model.RoleCourier, true},
		{"courier delivers", model.StatusArrived, model.StatusDelivered, model.RoleCourier, true},
		{"support refunds", model.StatusDelivered, model.StatusRefunded, model.RoleSupport, true},
		{"restaurant cannot refund", model.StatusDelivered, model.StatusRefunded, model.RoleRestaurant, false},
		{"customer cannot refund", model.StatusDelivered, model.StatusRefunded, model.RoleCustomer, false},
		{"unknown edge never authorized", model.StatusCancelled, model.StatusPending, model.RoleSupport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, Authorized(tt.from, tt.to, tt.role))
		})
	}
}

func TestTimestampField(t *testing.T) {
	assert.Equal(t, ColumnAcceptedAt, TimestampField(model.StatusConfirmed))
	assert.Equal(t, ColumnPreparedAt, TimestampField(model.StatusReadyForPickup))
	assert.Equal(t, ColumnPickedUpAt, TimestampField(model.StatusPickedUp))
	assert.Equal(t, ColumnDeliveredAt, TimestampField(model.StatusDelivered))

	assert.Empty(t, TimestampField(model.StatusPreparing))
	assert.Empty(t, TimestampField(model.StatusOnTheWay))
	assert.Empty(t, TimestampField(model.StatusCancelled))
}

func TestCheckTransitions(t *testing.T) {
	require.NoError(t, CheckTransitions())
}
