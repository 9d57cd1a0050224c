package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusKm = 6371.0

// HaversineDistanceKm returns the great-circle distance between two
// coordinates in kilometers. Symmetric; zero for identical points.
func HaversineDistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	return angle.Radians() * earthRadiusKm
}

// MoveToward returns the point reached by traveling distanceMeters
// from the start coordinate toward the end coordinate along the great
// circle path. If the requested distance exceeds the separation, the
// end coordinate is returned.
func MoveToward(startLat, startLng, endLat, endLng, distanceMeters float64) (float64, float64) {
	startPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(startLat, startLng))
	endPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(endLat, endLng))

	totalDistanceAngle := s1.Angle(s2.ChordAngleBetweenPoints(startPoint, endPoint).Angle())
	totalDistanceMeters := totalDistanceAngle.Radians() * earthRadiusKm * 1000

	if distanceMeters >= totalDistanceMeters {
		return endLat, endLng
	}

	fraction := distanceMeters / totalDistanceMeters

	newPoint := s2.Interpolate(fraction, startPoint, endPoint)
	newLatLng := s2.LatLngFromPoint(newPoint)

	return newLatLng.Lat.Degrees(), newLatLng.Lng.Degrees()
}
