package realtime

import (
	"context"
	"testing"
)

func TestMemoryBusDelivers(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	calls := 0
	_, err := bus.Subscribe(ctx, "user_locations", func() { calls++ })
	if err != nil {
		t.Fatalf("unexpected subscribe error: %v", err)
	}

	if err := bus.Publish(ctx, "user_locations"); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}
	if err := bus.Publish(ctx, "user_locations"); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
}

func TestMemoryBusTableIsolation(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	calls := 0
	if _, err := bus.Subscribe(ctx, "user_locations", func() { calls++ }); err != nil {
		t.Fatalf("unexpected subscribe error: %v", err)
	}

	if err := bus.Publish(ctx, "profiles"); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	if calls != 0 {
		t.Fatalf("expected no notifications for a different table, got %d", calls)
	}
}

func TestMemoryBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	calls := 0
	sub, err := bus.Subscribe(ctx, "user_locations", func() { calls++ })
	if err != nil {
		t.Fatalf("unexpected subscribe error: %v", err)
	}

	if err := bus.Publish(ctx, "user_locations"); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	if err := sub.Unsubscribe(); err != nil {
		t.Fatalf("unexpected unsubscribe error: %v", err)
	}

	// Unsubscribe is idempotent.
	if err := sub.Unsubscribe(); err != nil {
		t.Fatalf("unexpected error on repeated unsubscribe: %v", err)
	}

	if err := bus.Publish(ctx, "user_locations"); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected no delivery after unsubscribe, got %d total", calls)
	}
}

func TestMemoryBusMultipleSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	a, b := 0, 0
	if _, err := bus.Subscribe(ctx, "user_locations", func() { a++ }); err != nil {
		t.Fatalf("unexpected subscribe error: %v", err)
	}
	if _, err := bus.Subscribe(ctx, "user_locations", func() { b++ }); err != nil {
		t.Fatalf("unexpected subscribe error: %v", err)
	}

	if err := bus.Publish(ctx, "user_locations"); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	if a != 1 || b != 1 {
		t.Fatalf("expected both subscribers notified once, got %d and %d", a, b)
	}
}
