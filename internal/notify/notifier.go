// Package notify fans successful status transitions out to interested
// collaborators: logs, a Redis channel for push dispatchers, and
// connected WebSocket clients. Delivery is best-effort; a notifier
// failure never rolls back a committed transition.
package notify

import (
	"context"
	"errors"
	"time"

	"dishpatch/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StatusChangedEvent is emitted after every successful transition.
type StatusChangedEvent struct {
	OrderID        uuid.UUID         `json:"orderId"`
	PreviousStatus model.OrderStatus `json:"previousStatus"`
	NewStatus      model.OrderStatus `json:"newStatus"`
	OccurredAt     time.Time         `json:"occurredAt"`
}

// Notifier receives status-changed events.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, event StatusChangedEvent) error
}

// logNotifier writes every event to the structured log.
type logNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier that logs each event.
func NewLogNotifier(logger zerolog.Logger) Notifier {
	return &logNotifier{
		logger: logger.With().Str("notifier", "log").Logger(),
	}
}

func (n *logNotifier) OrderStatusChanged(ctx context.Context, event StatusChangedEvent) error {
	n.logger.Info().
		Str("order_id", event.OrderID.String()).
		Str("previous_status", string(event.PreviousStatus)).
		Str("new_status", string(event.NewStatus)).
		Time("occurred_at", event.OccurredAt).
		Msg("order status changed")
	return nil
}

// multi fans one event out to several notifiers.
type multi struct {
	notifiers []Notifier
}

// Multi combines notifiers; every sink sees every event even when an
// earlier sink fails.
func Multi(notifiers ...Notifier) Notifier {
	return &multi{notifiers: notifiers}
}

func (m *multi) OrderStatusChanged(ctx context.Context, event StatusChangedEvent) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.OrderStatusChanged(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
