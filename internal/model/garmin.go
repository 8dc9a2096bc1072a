package model

import "time"

// GarminActivity is a summary record of one completed sporting activity
type GarminActivity struct {
	ActivityID         string     `json:"activity_id"`
	Sport              string     `json:"sport"`
	SubSport           *string    `json:"sub_sport"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	DistanceKm         *float64   `json:"distance_km"`
	DurationSeconds    *int64     `json:"duration_seconds"`
	AvgHeartRate       *int       `json:"avg_heart_rate"`
	MaxHeartRate       *int       `json:"max_heart_rate"`
	AvgCadence         *int       `json:"avg_cadence"`
	MaxCadence         *int       `json:"max_cadence"`
	Calories           *int       `json:"calories"`
	AvgSpeedKmh        *float64   `json:"avg_speed_kmh"`
	MaxSpeedKmh        *float64   `json:"max_speed_kmh"`
	TotalAscentM       *int       `json:"total_ascent_m"`
	TotalDescentM      *int       `json:"total_descent_m"`
	TotalDistance      *float64   `json:"total_distance"`
	AvgPace            *float64   `json:"avg_pace"`
	DeviceManufacturer *string    `json:"device_manufacturer"`
	AvgTemperatureC    *int       `json:"avg_temperature_c"`
	MinTemperatureC    *int       `json:"min_temperature_c"`
	MaxTemperatureC    *int       `json:"max_temperature_c"`
	TotalElapsedTime   *float64   `json:"total_elapsed_time"`
	TotalTimerTime     *float64   `json:"total_timer_time"`
	CreatedAt          *time.Time `json:"created_at"`
	UploadedAt         *time.Time `json:"uploaded_at"`
	TrackPointCount    *int64     `json:"track_point_count"`
}

// GarminTrackPoint is one GPS sample within an activity
type GarminTrackPoint struct {
	ID                  int64      `json:"id"`
	ActivityID          string     `json:"activity_id"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
	Timestamp           time.Time  `json:"timestamp"`
	Altitude            *float64   `json:"altitude"`
	DistanceFromStartKm *float64   `json:"distance_from_start_km"`
	SpeedKmh            *float64   `json:"speed_kmh"`
	HeartRate           *int       `json:"heart_rate"`
	Cadence             *int       `json:"cadence"`
	TemperatureC        *int       `json:"temperature_c"`
	CreatedAt           *time.Time `json:"created_at"`
}

// GarminChartPoint is a track point shaped for client-side charting
type GarminChartPoint struct {
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Timestamp           time.Time `json:"timestamp"`
	Altitude            *float64  `json:"altitude"`
	DistanceFromStartKm *float64  `json:"distance_from_start_km"`
	SpeedKmh            *float64  `json:"speed_kmh"`
	HeartRate           *int      `json:"heart_rate"`
	Cadence             *int      `json:"cadence"`
	TemperatureC        *int      `json:"temperature_c"`
}

// SportInfo holds a distinct sport type with its activity count
type SportInfo struct {
	Sport         string `json:"sport"`
	ActivityCount int64  `json:"activity_count"`
}
