package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBus carries change notifications over Redis Pub/Sub, one channel
// per watched table.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func channelFor(table string) string {
	return fmt.Sprintf("changes:%s", table)
}

func (b *RedisBus) Publish(ctx context.Context, table string) error {
	return b.client.Publish(ctx, channelFor(table), "").Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, table string, onChange func()) (*Subscription, error) {
	pubsub := b.client.Subscribe(ctx, channelFor(table))

	// Force the SUBSCRIBE to complete so a following Publish is not lost
	// to a not-yet-registered channel.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	sub := newSubscription(onChange, pubsub.Close)

	go func() {
		for range pubsub.Channel() {
			sub.notify()
		}
	}()

	return sub, nil
}
