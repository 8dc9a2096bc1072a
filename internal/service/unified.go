package service

import (
	"context"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/query"
	"github.com/stuartshay/otel-data-api/internal/store"
)

// UnifiedListParams are the recognized query parameters for the
// unified GPS view endpoint.
type UnifiedListParams struct {
	Source   string
	DateFrom string
	DateTo   string
	Order    string
	Limit    int
	Offset   int
}

// UnifiedService reads the precomputed unified and daily-summary views
type UnifiedService struct {
	db store.Querier
}

// NewUnifiedService creates a new unified view service
func NewUnifiedService(db store.Querier) *UnifiedService {
	return &UnifiedService{db: db}
}

// List returns a filtered page of the unified_gps_points view plus
// the total count of the filtered set.
func (s *UnifiedService) List(ctx context.Context, p UnifiedListParams) ([]model.UnifiedGpsPoint, int64, error) {
	var f query.Filter
	if p.Source != "" {
		f.Equal("source", p.Source)
	}
	if p.DateFrom != "" {
		f.DateFrom("timestamp", p.DateFrom)
	}
	if p.DateTo != "" {
		f.DateTo("timestamp", p.DateTo)
	}

	var total int64
	if err := s.db.FetchVal(ctx, &total, "SELECT COUNT(*) FROM unified_gps_points "+f.Where(), f.Args()...); err != nil {
		return nil, 0, err
	}

	order := query.SortOrder(p.Order, "desc")

	points := []model.UnifiedGpsPoint{}
	dataQuery := "SELECT source, identifier, latitude, longitude, timestamp, " +
		"accuracy, battery, speed_kmh, heart_rate, created_at " +
		"FROM unified_gps_points " + f.Where() +
		" ORDER BY timestamp " + order + " LIMIT ? OFFSET ?"
	args := append(f.Args(), p.Limit, p.Offset)
	if err := s.db.Fetch(ctx, &points, dataQuery, args...); err != nil {
		return nil, 0, err
	}

	return points, total, nil
}

// DailySummary returns per-day aggregates from the
// daily_activity_summary view. The view's activity_date is a date, so
// date_to is an inclusive bound here.
func (s *UnifiedService) DailySummary(ctx context.Context, dateFrom, dateTo string, limit int) ([]model.DailyActivitySummary, error) {
	var f query.Filter
	if dateFrom != "" {
		f.DateFrom("activity_date", dateFrom)
	}
	if dateTo != "" {
		f.DateToInclusive("activity_date", dateTo)
	}

	summaries := []model.DailyActivitySummary{}
	dataQuery := "SELECT activity_date::text AS activity_date, owntracks_device, " +
		"owntracks_points, min_battery, max_battery, avg_accuracy, " +
		"garmin_sport, garmin_activities, total_distance_km, " +
		"total_duration_seconds, avg_heart_rate, total_calories " +
		"FROM daily_activity_summary " + f.Where() +
		" ORDER BY activity_date DESC LIMIT ?"
	args := append(f.Args(), limit)
	if err := s.db.Fetch(ctx, &summaries, dataQuery, args...); err != nil {
		return nil, err
	}
	return summaries, nil
}
