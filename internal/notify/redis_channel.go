package notify

import (
	"context"
	"elevate/internal/providers"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisChannel relays change events through redis pub/sub. Messages
// published by this context are dropped on receipt.
type RedisChannel struct {
	client  *redis.Client
	channel string
	origin  string
	logger  providers.Logger
}

func NewRedisChannel(client *redis.Client, channel, origin string, logger providers.Logger) *RedisChannel {
	return &RedisChannel{
		client:  client,
		channel: channel,
		origin:  origin,
		logger:  logger,
	}
}

func (r *RedisChannel) Publish(ctx context.Context, ev ChangeEvent) error {
	payload, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, payload).Err()
}

func (r *RedisChannel) Listen(ctx context.Context, h Handler) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	return r.pump(ctx, sub.Channel(), h)
}

// pump hands every decoded remote message to h until ctx ends or messages
// is closed.
func (r *RedisChannel) pump(ctx context.Context, messages <-chan *redis.Message, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return ErrChannelClosed
			}
			ev, err := decodeEvent([]byte(msg.Payload))
			if err != nil {
				r.logger.Warnf(providers.TypeSync, "Dropping malformed change event: %s", err)
				continue
			}
			if ev.Origin == r.origin {
				continue
			}
			h(ev)
		}
	}
}

func (r *RedisChannel) Close() error {
	return r.client.Close()
}

func encodeEvent(ev ChangeEvent) ([]byte, error) {
	return json.Marshal(ev)
}

func decodeEvent(payload []byte) (ChangeEvent, error) {
	var ev ChangeEvent
	err := json.Unmarshal(payload, &ev)
	return ev, err
}
