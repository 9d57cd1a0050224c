package location

import (
	"context"
	"sync"
	"time"

	"geolink/internal/model"
	"geolink/internal/util"
)

// SimulatedProvider walks a great-circle path through a list of
// waypoints at a fixed speed. It stands in for the device sensor on
// platforms that have none: the rest of the pipeline sees the same
// Provider surface either way.
type SimulatedProvider struct {
	mu        sync.Mutex
	current   model.Position
	waypoints []model.Position
	nextIndex int
	speed     float64 // meters per second
	tick      time.Duration
	granted   bool
}

// NewSimulatedProvider creates a provider starting at start and walking
// toward each waypoint in turn at speedMetersPerSec, emitting a fix
// every tick. The waypoint list is cycled.
func NewSimulatedProvider(start model.Position, waypoints []model.Position, speedMetersPerSec float64, tick time.Duration) *SimulatedProvider {
	return &SimulatedProvider{
		current:   start,
		waypoints: waypoints,
		speed:     speedMetersPerSec,
		tick:      tick,
	}
}

func (p *SimulatedProvider) RequestPermission() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted = true
	return nil
}

func (p *SimulatedProvider) CurrentPosition(ctx context.Context) (model.Position, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.granted {
		return model.Position{}, ErrPermissionDenied
	}
	return p.current, nil
}

// Watch starts a ticker goroutine that advances the simulated walk and
// delivers each new position through the subscription's filters.
func (p *SimulatedProvider) Watch(opts WatchOptions, onUpdate func(model.Position)) (*Subscription, error) {
	p.mu.Lock()
	granted := p.granted
	p.mu.Unlock()
	if !granted {
		return nil, ErrPermissionDenied
	}

	ticker := time.NewTicker(p.tick)
	done := make(chan struct{})

	sub := newSubscription(opts, onUpdate, func() {
		ticker.Stop()
		close(done)
	})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sub.deliver(p.advance())
			}
		}
	}()

	return sub, nil
}

// advance moves the walk one tick forward and returns the new position.
func (p *SimulatedProvider) advance() model.Position {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.waypoints) == 0 {
		return p.current
	}

	target := p.waypoints[p.nextIndex]
	step := p.speed * p.tick.Seconds()

	lat, lng := util.MoveToward(
		p.current.Latitude, p.current.Longitude,
		target.Latitude, target.Longitude,
		step,
	)
	p.current = model.Position{Latitude: lat, Longitude: lng}

	if p.current == target {
		p.nextIndex = (p.nextIndex + 1) % len(p.waypoints)
	}

	return p.current
}
