package model

import "time"

// UnifiedGpsPoint is a merged row from the unified_gps_points view
type UnifiedGpsPoint struct {
	Source     string     `json:"source"`
	Identifier string     `json:"identifier"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Timestamp  time.Time  `json:"timestamp"`
	Accuracy   *int       `json:"accuracy"`
	Battery    *int       `json:"battery"`
	SpeedKmh   *float64   `json:"speed_kmh"`
	HeartRate  *int       `json:"heart_rate"`
	CreatedAt  *time.Time `json:"created_at"`
}

// DailyActivitySummary is one row of the daily_activity_summary view
type DailyActivitySummary struct {
	ActivityDate         *string  `json:"activity_date"`
	OwntracksDevice      *string  `json:"owntracks_device"`
	OwntracksPoints      *int64   `json:"owntracks_points"`
	MinBattery           *int     `json:"min_battery"`
	MaxBattery           *int     `json:"max_battery"`
	AvgAccuracy          *float64 `json:"avg_accuracy"`
	GarminSport          *string  `json:"garmin_sport"`
	GarminActivities     *int64   `json:"garmin_activities"`
	TotalDistanceKm      *float64 `json:"total_distance_km"`
	TotalDurationSeconds *int64   `json:"total_duration_seconds"`
	AvgHeartRate         *float64 `json:"avg_heart_rate"`
	TotalCalories        *int64   `json:"total_calories"`
}

// NearbyPoint is a GPS point matched by a spatial search, tagged with
// its source table and the distance from the search center.
type NearbyPoint struct {
	Source         string    `json:"source"`
	ID             int64     `json:"id"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DistanceMeters float64   `json:"distance_meters"`
	Timestamp      time.Time `json:"timestamp"`
}

// DistanceResult is the geodesic distance between two coordinates
type DistanceResult struct {
	DistanceMeters float64 `json:"distance_meters"`
	FromLat        float64 `json:"from_lat"`
	FromLon        float64 `json:"from_lon"`
	ToLat          float64 `json:"to_lat"`
	ToLon          float64 `json:"to_lon"`
}

// WithinReferenceResult holds all points inside a named reference
// location's radius.
type WithinReferenceResult struct {
	ReferenceName string        `json:"reference_name"`
	RadiusMeters  int           `json:"radius_meters"`
	TotalPoints   int           `json:"total_points"`
	Points        []NearbyPoint `json:"points"`
}
