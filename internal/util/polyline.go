package util

import (
	"math"

	"geolink/internal/model"
)

// DecodePolyline converts an encoded polyline string to a slice of
// coordinates using the standard precision of 5 decimal places
// (Google's Encoded Polyline Algorithm Format).
func DecodePolyline(encoded string) []model.Position {
	return DecodePolylineWithPrecision(encoded, 5)
}

// DecodePolylineWithPrecision decodes a polyline with a custom number
// of decimal places. openrouteservice and Google use 5; some routers
// (e.g. GraphHopper) emit 6.
//
// Malformed input is not detected; the decoder emits whatever the
// delta arithmetic produces, matching the behavior of the reference
// decoders. An empty string yields an empty result.
func DecodePolylineWithPrecision(encoded string, precision int) []model.Position {
	factor := math.Pow10(precision)
	points := []model.Position{}
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		// Extract latitude delta
		shift, result := 0, 0
		for {
			if index >= len(encoded) {
				return points
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}

		// Handle the sign bit for latitude
		if result&1 != 0 {
			lat += ^(result >> 1)
		} else {
			lat += result >> 1
		}

		// Extract longitude delta
		shift, result = 0, 0
		for {
			if index >= len(encoded) {
				return points
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}

		// Handle the sign bit for longitude
		if result&1 != 0 {
			lng += ^(result >> 1)
		} else {
			lng += result >> 1
		}

		points = append(points, model.Position{
			Latitude:  float64(lat) / factor,
			Longitude: float64(lng) / factor,
		})
	}

	return points
}
