package service

import (
	"context"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/query"
	"github.com/stuartshay/otel-data-api/internal/store"
)

var locationSortWhitelist = map[string]bool{
	"id":         true,
	"device_id":  true,
	"timestamp":  true,
	"created_at": true,
	"battery":    true,
	"accuracy":   true,
}

const locationColumns = "id, device_id, tid, latitude, longitude, accuracy, altitude, " +
	"velocity, battery, battery_status, connection_type, trigger, timestamp, created_at"

// LocationListParams are the recognized query parameters for the
// location list endpoint.
type LocationListParams struct {
	DeviceID string
	DateFrom string
	DateTo   string
	Sort     string
	Order    string
	Limit    int
	Offset   int
}

// LocationService reads OwnTracks location pings
type LocationService struct {
	db store.Querier
}

// NewLocationService creates a new location service
func NewLocationService(db store.Querier) *LocationService {
	return &LocationService{db: db}
}

// List returns a filtered, sorted page of locations plus the total
// count of the filtered set.
func (s *LocationService) List(ctx context.Context, p LocationListParams) ([]model.Location, int64, error) {
	var f query.Filter
	if p.DeviceID != "" {
		f.Equal("device_id", p.DeviceID)
	}
	if p.DateFrom != "" {
		f.DateFrom("created_at", p.DateFrom)
	}
	if p.DateTo != "" {
		f.DateTo("created_at", p.DateTo)
	}

	var total int64
	if err := s.db.FetchVal(ctx, &total, "SELECT COUNT(*) FROM public.locations "+f.Where(), f.Args()...); err != nil {
		return nil, 0, err
	}

	sort := query.SortColumn(p.Sort, "created_at", locationSortWhitelist)
	order := query.SortOrder(p.Order, "desc")

	locations := []model.Location{}
	dataQuery := "SELECT " + locationColumns + " FROM public.locations " + f.Where() +
		" ORDER BY " + sort + " " + order + " LIMIT ? OFFSET ?"
	args := append(f.Args(), p.Limit, p.Offset)
	if err := s.db.Fetch(ctx, &locations, dataQuery, args...); err != nil {
		return nil, 0, err
	}

	return locations, total, nil
}

// Devices returns all distinct device ids
func (s *LocationService) Devices(ctx context.Context) ([]model.DeviceInfo, error) {
	devices := []model.DeviceInfo{}
	err := s.db.Fetch(ctx, &devices, "SELECT DISTINCT device_id FROM public.locations ORDER BY device_id")
	return devices, err
}

// Count returns the location count, optionally filtered by calendar
// day and device id.
func (s *LocationService) Count(ctx context.Context, date, deviceID string) (*model.LocationCount, error) {
	var f query.Filter
	if date != "" {
		f.DateEquals("created_at", date)
	}
	if deviceID != "" {
		f.Equal("device_id", deviceID)
	}

	var count int64
	if err := s.db.FetchVal(ctx, &count, "SELECT COUNT(*) FROM public.locations "+f.Where(), f.Args()...); err != nil {
		return nil, err
	}

	result := &model.LocationCount{Count: count}
	if date != "" {
		result.Date = &date
	}
	if deviceID != "" {
		result.DeviceID = &deviceID
	}
	return result, nil
}

// Get returns a single location by id, including the raw payload
func (s *LocationService) Get(ctx context.Context, id int64) (*model.LocationDetail, error) {
	var detail model.LocationDetail
	err := s.db.FetchRow(ctx, &detail,
		"SELECT "+locationColumns+", raw_payload FROM public.locations WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
