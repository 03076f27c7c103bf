package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisPublisher publishes status-changed events to a Redis channel.
// Push-notification dispatchers and other app backends subscribe there.
type redisPublisher struct {
	client  *redis.Client
	channel string
	logger  zerolog.Logger
}

// NewRedisPublisher creates a notifier that publishes JSON events to
// the given Redis channel. It verifies connectivity with a ping.
func NewRedisPublisher(ctx context.Context, client *redis.Client, channel string, logger zerolog.Logger) (Notifier, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &redisPublisher{
		client:  client,
		channel: channel,
		logger:  logger.With().Str("notifier", "redis").Logger(),
	}, nil
}

func (p *redisPublisher) OrderStatusChanged(ctx context.Context, event StatusChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Error().
			Err(err).
			Str("order_id", event.OrderID.String()).
			Str("channel", p.channel).
			Msg("failed to publish status event")
		return fmt.Errorf("failed to publish status event: %w", err)
	}

	p.logger.Debug().
		Str("order_id", event.OrderID.String()).
		Str("new_status", string(event.NewStatus)).
		Msg("status event published")

	return nil
}
