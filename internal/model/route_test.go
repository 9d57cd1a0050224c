package model

import (
	"testing"
)

func TestRouteOverlayBound(t *testing.T) {
	overlay := &RouteOverlay{
		Coordinates: []Position{
			{Latitude: 38.5, Longitude: -120.2},
			{Latitude: 40.7, Longitude: -120.95},
			{Latitude: 43.252, Longitude: -126.453},
		},
		DistanceKm: 12.3,
	}

	bound, ok := overlay.Bound()
	if !ok {
		t.Fatal("expected a bound for a non-empty route")
	}

	if bound.Min[0] != -126.453 || bound.Max[0] != -120.2 {
		t.Errorf("unexpected longitude bound: [%v, %v]", bound.Min[0], bound.Max[0])
	}
	if bound.Min[1] != 38.5 || bound.Max[1] != 43.252 {
		t.Errorf("unexpected latitude bound: [%v, %v]", bound.Min[1], bound.Max[1])
	}
}

func TestRouteOverlayViewportBound(t *testing.T) {
	overlay := &RouteOverlay{
		Coordinates: []Position{
			{Latitude: 38.5, Longitude: -120.2},
			{Latitude: 43.252, Longitude: -126.453},
		},
	}

	bound, ok := overlay.ViewportBound()
	if !ok {
		t.Fatal("expected a viewport bound for a non-empty route")
	}

	if bound.MinLatitude != 38.5 || bound.MaxLatitude != 43.252 {
		t.Errorf("unexpected latitude range: [%v, %v]", bound.MinLatitude, bound.MaxLatitude)
	}
	if bound.MinLongitude != -126.453 || bound.MaxLongitude != -120.2 {
		t.Errorf("unexpected longitude range: [%v, %v]", bound.MinLongitude, bound.MaxLongitude)
	}

	if _, ok := (&RouteOverlay{}).ViewportBound(); ok {
		t.Error("expected no viewport bound for an empty route")
	}
}

func TestRouteOverlayBoundEmpty(t *testing.T) {
	if _, ok := (&RouteOverlay{}).Bound(); ok {
		t.Error("expected no bound for an empty route")
	}

	var nilOverlay *RouteOverlay
	if _, ok := nilOverlay.Bound(); ok {
		t.Error("expected no bound for a nil route")
	}
}
