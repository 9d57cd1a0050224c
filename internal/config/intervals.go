package config

import "time"

// Pipeline tunables
const (
	// WatchMinInterval is the minimum time between delivered sensor
	// fixes (matches the 10s interval the mobile client used)
	WatchMinInterval = 10 * time.Second

	// WatchMinDistanceMeters is the minimum movement between delivered
	// sensor fixes
	WatchMinDistanceMeters = 10.0

	// RefreshWorkerInterval defines how often the peer list is re-pulled
	// regardless of realtime notifications, since delivery is best-effort
	RefreshWorkerInterval = 60 * time.Second

	// DirectionsTimeout bounds the outbound routing request
	DirectionsTimeout = 10 * time.Second

	// GeocoderTimeout bounds the reverse-geocode request
	GeocoderTimeout = 5 * time.Second

	// RouteCacheTTL is how long a decoded route stays valid in Redis
	RouteCacheTTL = 5 * time.Minute
)
