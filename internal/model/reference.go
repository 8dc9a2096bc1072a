package model

import "time"

// ReferenceLocation is a user-named geofence point
type ReferenceLocation struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	RadiusMeters int        `json:"radius_meters"`
	Description  *string    `json:"description"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// ReferenceLocationCreate is the create request body. Latitude and
// longitude are pointers so that 0 is a valid coordinate.
type ReferenceLocationCreate struct {
	Name         string   `json:"name" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	RadiusMeters int      `json:"radius_meters"`
	Description  *string  `json:"description"`
}

// ReferenceLocationUpdate is the sparse update request body.
// Only fields explicitly provided are written.
type ReferenceLocationUpdate struct {
	Name         *string  `json:"name"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	RadiusMeters *int     `json:"radius_meters" binding:"omitempty,gte=1"`
	Description  *string  `json:"description"`
}

// Fields returns the assignment list for the provided fields, in a
// stable column order.
func (u *ReferenceLocationUpdate) Fields() ([]string, []interface{}) {
	var cols []string
	var vals []interface{}
	if u.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *u.Name)
	}
	if u.Latitude != nil {
		cols = append(cols, "latitude")
		vals = append(vals, *u.Latitude)
	}
	if u.Longitude != nil {
		cols = append(cols, "longitude")
		vals = append(vals, *u.Longitude)
	}
	if u.RadiusMeters != nil {
		cols = append(cols, "radius_meters")
		vals = append(vals, *u.RadiusMeters)
	}
	if u.Description != nil {
		cols = append(cols, "description")
		vals = append(vals, *u.Description)
	}
	return cols, vals
}
