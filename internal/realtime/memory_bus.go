package realtime

import (
	"context"
	"sync"
)

// MemoryBus is an in-process Bus for single-process runs and tests.
// Notifications are fanned out synchronously to every live subscriber.
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]*Subscription
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]*Subscription)}
}

func (b *MemoryBus) Publish(ctx context.Context, table string) error {
	b.mu.RLock()
	targets := make([]*Subscription, 0, len(b.subs[table]))
	for _, sub := range b.subs[table] {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		sub.notify()
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, table string, onChange func()) (*Subscription, error) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++

	sub := newSubscription(onChange, func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[table], id)
		return nil
	})

	if b.subs[table] == nil {
		b.subs[table] = make(map[int]*Subscription)
	}
	b.subs[table][id] = sub
	b.mu.Unlock()

	return sub, nil
}
