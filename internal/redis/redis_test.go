package redis

import (
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestCloseNilClient(t *testing.T) {
	if err := Close(nil); err != nil {
		t.Fatalf("expected closing a nil client to be a no-op, got %v", err)
	}
}

func TestCloseReleasesClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	if err := Close(client); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
