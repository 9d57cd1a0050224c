package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"geolink/internal/model"
	"geolink/internal/util"
)

// ErrPermissionDenied is returned when access to the position source is
// refused. It is fatal to the location pipeline for the session; no
// automatic retry is attempted.
var ErrPermissionDenied = errors.New("permission to access location was denied")

// WatchOptions filters the stream of fixes delivered to a watch
// callback. Zero values disable the respective threshold.
type WatchOptions struct {
	MinInterval       time.Duration
	MinDistanceMeters float64
}

// Provider abstracts the position source behind the same surface the
// device geolocation API exposes: permission gate, one-shot fix, and a
// continuous watch.
type Provider interface {
	RequestPermission() error
	CurrentPosition(ctx context.Context) (model.Position, error)
	Watch(opts WatchOptions, onUpdate func(model.Position)) (*Subscription, error)
}

// Subscription is a live position watch. Cancel is idempotent; once it
// returns, the callback is never invoked again, even for sensor events
// racing with the cancellation.
type Subscription struct {
	mu        sync.Mutex
	cancelled bool
	opts      WatchOptions
	onUpdate  func(model.Position)
	stop      func()

	hasLast       bool
	lastPos       model.Position
	lastDelivered time.Time
}

func newSubscription(opts WatchOptions, onUpdate func(model.Position), stop func()) *Subscription {
	return &Subscription{
		opts:     opts,
		onUpdate: onUpdate,
		stop:     stop,
	}
}

// deliver hands a raw fix to the subscription. Fixes arriving faster
// than MinInterval or closer than MinDistanceMeters to the previous
// delivered fix are dropped. The callback runs under the subscription
// lock so that Cancel can guarantee no late delivery; the callback must
// not call Cancel on its own subscription.
func (s *Subscription) deliver(pos model.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return
	}

	now := time.Now()
	if s.hasLast {
		if s.opts.MinInterval > 0 && now.Sub(s.lastDelivered) < s.opts.MinInterval {
			return
		}
		if s.opts.MinDistanceMeters > 0 {
			meters := util.HaversineDistanceKm(
				s.lastPos.Latitude, s.lastPos.Longitude,
				pos.Latitude, pos.Longitude,
			) * 1000
			if meters < s.opts.MinDistanceMeters {
				return
			}
		}
	}

	s.hasLast = true
	s.lastPos = pos
	s.lastDelivered = now

	s.onUpdate(pos)
}

// Cancel stops the watch. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}
