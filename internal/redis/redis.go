package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Init opens the Redis connection and verifies it with a ping. The
// returned client is injected into the realtime bus and the route
// cache; there is no ambient global client.
func Init(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Successfully connected to Redis")

	return client
}

// Close closes a client opened by Init.
func Close(client *redis.Client) error {
	if client != nil {
		log.Println("Closing Redis connection...")
		return client.Close()
	}
	return nil
}
