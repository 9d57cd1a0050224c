package util

import (
	"math"
	"testing"
)

func TestHaversineDistanceKmIdentity(t *testing.T) {
	cases := [][2]float64{
		{0, 0},
		{21.0285, 105.8542},
		{-33.8688, 151.2093},
	}

	for _, c := range cases {
		if d := HaversineDistanceKm(c[0], c[1], c[0], c[1]); d != 0 {
			t.Errorf("distance from (%v,%v) to itself: expected 0, got %v", c[0], c[1], d)
		}
	}
}

func TestHaversineDistanceKmSymmetry(t *testing.T) {
	d1 := HaversineDistanceKm(38.5, -120.2, 40.7, -120.95)
	d2 := HaversineDistanceKm(40.7, -120.95, 38.5, -120.2)

	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance is not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversineDistanceKmOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	d := HaversineDistanceKm(0, 0, 1, 0)
	expected := 111.195

	if math.Abs(d-expected)/expected > 0.01 {
		t.Errorf("one degree of latitude: expected about %v km, got %v", expected, d)
	}
}

func TestMoveToward(t *testing.T) {
	startLat, startLng := 21.0285, 105.8542
	endLat, endLng := 21.0368, 105.8342

	total := HaversineDistanceKm(startLat, startLng, endLat, endLng) * 1000

	// Moving half the separation lands halfway, within float noise.
	lat, lng := MoveToward(startLat, startLng, endLat, endLng, total/2)
	traveled := HaversineDistanceKm(startLat, startLng, lat, lng) * 1000
	if math.Abs(traveled-total/2) > 1 {
		t.Errorf("expected to travel %v m, traveled %v m", total/2, traveled)
	}

	// Overshooting clamps to the end point.
	lat, lng = MoveToward(startLat, startLng, endLat, endLng, total*2)
	if lat != endLat || lng != endLng {
		t.Errorf("expected clamp to end point (%v,%v), got (%v,%v)", endLat, endLng, lat, lng)
	}
}
