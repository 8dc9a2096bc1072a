package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Location represents an OwnTracks GPS ping
type Location struct {
	ID             int64      `json:"id"`
	DeviceID       string     `json:"device_id"`
	Tid            *string    `json:"tid"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Accuracy       *int       `json:"accuracy"`
	Altitude       *float64   `json:"altitude"`
	Velocity       *int       `json:"velocity"`
	Battery        *int       `json:"battery"`
	BatteryStatus  *int       `json:"battery_status"`
	ConnectionType *string    `json:"connection_type"`
	Trigger        *string    `json:"trigger"`
	Timestamp      time.Time  `json:"timestamp"`
	CreatedAt      *time.Time `json:"created_at"`
}

// LocationDetail is a Location including the raw OwnTracks payload
type LocationDetail struct {
	Location   `gorm:"embedded"`
	RawPayload JSONMap `json:"raw_payload"`
}

// DeviceInfo holds a distinct device identifier
type DeviceInfo struct {
	DeviceID string `json:"device_id"`
}

// LocationCount is the response for the location count endpoint
type LocationCount struct {
	Count    int64   `json:"count"`
	Date     *string `json:"date"`
	DeviceID *string `json:"device_id"`
}

// JSONMap is a helper type for JSONB columns
type JSONMap map[string]interface{}

// Scan implements sql.Scanner for JSONB values
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}

// Value implements driver.Valuer for JSONB values
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
