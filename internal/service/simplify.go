package service

import (
	"math"

	"github.com/stuartshay/otel-data-api/internal/model"
)

// Bounds for the Douglas-Peucker tolerance parameter, in degrees.
// 0.00001 is roughly one meter at mid latitudes.
const (
	MinSimplifyTolerance = 0.000001
	MaxSimplifyTolerance = 0.01
)

// SimplifyTrack reduces a timestamp-ordered track to the points that
// survive Douglas-Peucker simplification at the given tolerance.
// Distances are computed in planar degree space, matching how PostGIS
// ST_Simplify treats lat/lon geometry. Points left over for the same
// coordinate keep only the earliest-timestamped sample.
func SimplifyTrack(points []model.GarminTrackPoint, tolerance float64) []model.GarminTrackPoint {
	if len(points) <= 2 {
		return points
	}
	kept := douglasPeucker(points, 0, len(points)-1, tolerance)
	return dedupeByCoordinate(kept)
}

// douglasPeucker recursively simplifies points[start..end] inclusive
func douglasPeucker(points []model.GarminTrackPoint, start, end int, epsilon float64) []model.GarminTrackPoint {
	if start >= end {
		return []model.GarminTrackPoint{points[start]}
	}

	maxDist := 0.0
	maxIndex := start
	for i := start + 1; i < end; i++ {
		dist := perpendicularDistanceDeg(points[i], points[start], points[end])
		if dist > maxDist {
			maxDist = dist
			maxIndex = i
		}
	}

	if maxDist > epsilon {
		left := douglasPeucker(points, start, maxIndex, epsilon)
		right := douglasPeucker(points, maxIndex, end, epsilon)
		return append(left[:len(left)-1], right...)
	}

	return []model.GarminTrackPoint{points[start], points[end]}
}

// perpendicularDistanceDeg is the planar distance in degrees from p to
// the line through a and b (x = longitude, y = latitude).
func perpendicularDistanceDeg(p, a, b model.GarminTrackPoint) float64 {
	x0, y0 := p.Longitude, p.Latitude
	x1, y1 := a.Longitude, a.Latitude
	x2, y2 := b.Longitude, b.Latitude

	numerator := math.Abs((y2-y1)*x0 - (x2-x1)*y0 + x2*y1 - y2*x1)
	denominator := math.Hypot(y2-y1, x2-x1)
	if denominator == 0 {
		return math.Hypot(x0-x1, y0-y1)
	}
	return numerator / denominator
}

// dedupeByCoordinate keeps one point per lat/lon pair. Input is
// timestamp-ordered and already deduplicated by timestamp (non-null
// altitude preferred, then highest id), so the first occurrence is the
// earliest-timestamped winner for its coordinate.
func dedupeByCoordinate(points []model.GarminTrackPoint) []model.GarminTrackPoint {
	type coord struct{ lat, lon float64 }
	seen := make(map[coord]bool, len(points))
	out := points[:0:0]
	for _, p := range points {
		c := coord{p.Latitude, p.Longitude}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, p)
	}
	return out
}
