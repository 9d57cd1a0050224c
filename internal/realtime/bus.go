// Package realtime provides the change-notification channel used to
// keep peer views fresh: writers publish a bare "something changed"
// signal per table, subscribers treat it purely as a re-pull trigger.
// Delivery is at-least-once and best-effort, with no ordering
// guarantee relative to the write that triggered it.
package realtime

import (
	"context"
	"sync"
)

// Bus is the message-passing subscription abstraction over whatever
// transport carries the change signals.
type Bus interface {
	// Publish emits a change notification for the given table. The
	// payload is deliberately empty; subscribers re-pull regardless of
	// what changed.
	Publish(ctx context.Context, table string) error

	// Subscribe registers onChange to run on every notification for
	// the given table.
	Subscribe(ctx context.Context, table string, onChange func()) (*Subscription, error)
}

// Subscription is a live registration on a Bus. Unsubscribe is
// idempotent; once it returns, onChange is never invoked again.
type Subscription struct {
	mu       sync.Mutex
	closed   bool
	onChange func()
	stop     func() error
}

func newSubscription(onChange func(), stop func() error) *Subscription {
	return &Subscription{onChange: onChange, stop: stop}
}

// notify invokes the callback unless the subscription is closed. It
// runs under the subscription lock so Unsubscribe can guarantee no
// late delivery.
func (s *Subscription) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onChange()
}

// Unsubscribe tears the registration down. Safe to call more than once.
func (s *Subscription) Unsubscribe() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		return stop()
	}
	return nil
}
