package model

import (
	"github.com/paulmach/orb"
)

// RouteOverlay is a decoded driving route between the local user and a
// selected peer. It lives only as long as the selection that produced
// it and is never persisted.
type RouteOverlay struct {
	Coordinates []Position `json:"coordinates"`
	DistanceKm  float64    `json:"distance_km"`
}

// RouteBound is the viewport rectangle enclosing a route overlay, in
// the lat/lng convention the map surface consumes.
type RouteBound struct {
	MinLatitude  float64 `json:"min_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

// Bound returns the bounding box enclosing the route, used to fit the
// map viewport to the overlay. Returns false when the route is empty.
func (r *RouteOverlay) Bound() (orb.Bound, bool) {
	if r == nil || len(r.Coordinates) == 0 {
		return orb.Bound{}, false
	}

	points := make(orb.MultiPoint, len(r.Coordinates))
	for i, c := range r.Coordinates {
		points[i] = orb.Point{c.Longitude, c.Latitude}
	}

	return points.Bound(), true
}

// ViewportBound is Bound converted to the lat/lng shape served to API
// consumers. Returns false when the route is empty.
func (r *RouteOverlay) ViewportBound() (*RouteBound, bool) {
	bound, ok := r.Bound()
	if !ok {
		return nil, false
	}

	return &RouteBound{
		MinLatitude:  bound.Min[1],
		MinLongitude: bound.Min[0],
		MaxLatitude:  bound.Max[1],
		MaxLongitude: bound.Max[0],
	}, true
}
