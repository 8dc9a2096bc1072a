package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/query"
	"github.com/stuartshay/otel-data-api/internal/store"
)

var activitySortWhitelist = map[string]bool{
	"start_time":       true,
	"distance_km":      true,
	"duration_seconds": true,
	"sport":            true,
	"created_at":       true,
}

var trackSortWhitelist = map[string]bool{
	"timestamp":  true,
	"altitude":   true,
	"speed_kmh":  true,
	"heart_rate": true,
	"created_at": true,
}

const activityColumns = "a.activity_id, a.sport, a.sub_sport, a.start_time, a.end_time, " +
	"a.distance_km, a.duration_seconds, a.avg_heart_rate, a.max_heart_rate, " +
	"a.avg_cadence, a.max_cadence, a.calories, a.avg_speed_kmh, a.max_speed_kmh, " +
	"a.total_ascent_m, a.total_descent_m, a.total_distance, a.avg_pace, " +
	"a.device_manufacturer, a.avg_temperature_c, a.min_temperature_c, " +
	"a.max_temperature_c, a.total_elapsed_time, a.total_timer_time, " +
	"a.created_at, a.uploaded_at, " +
	"(SELECT COUNT(DISTINCT t.timestamp) FROM public.garmin_track_points t " +
	"WHERE t.activity_id = a.activity_id) AS track_point_count"

const trackPointColumns = "id, activity_id, latitude, longitude, timestamp, altitude, " +
	"distance_from_start_km, speed_kmh, heart_rate, cadence, temperature_c, created_at"

// dedupedTrackPoints ranks samples sharing a timestamp so that exactly
// one survives: the one with altitude set, tie-broken by highest id.
const dedupedTrackPoints = "WITH ranked AS (" +
	" SELECT " + trackPointColumns + "," +
	" ROW_NUMBER() OVER (" +
	" PARTITION BY timestamp" +
	" ORDER BY (altitude IS NOT NULL) DESC, id DESC" +
	" ) AS rn" +
	" FROM public.garmin_track_points" +
	" WHERE activity_id = ?" +
	") "

// ActivityListParams are the recognized query parameters for the
// activity list and export endpoints.
type ActivityListParams struct {
	Sport    string
	DateFrom string
	DateTo   string
	Sort     string
	Order    string
	Limit    int
	Offset   int
}

// TrackListParams are the recognized query parameters for the track
// point endpoint. Simplify, when non-nil, switches to the simplified
// full-route mode and ignores Limit/Offset.
type TrackListParams struct {
	Sort     string
	Order    string
	Limit    int
	Offset   int
	Simplify *float64
}

// GarminService reads Garmin activities and track points
type GarminService struct {
	db store.Querier
}

// NewGarminService creates a new Garmin service
func NewGarminService(db store.Querier) *GarminService {
	return &GarminService{db: db}
}

func (s *GarminService) activityFilter(p ActivityListParams) *query.Filter {
	var f query.Filter
	if p.Sport != "" {
		f.Equal("sport", p.Sport)
	}
	if p.DateFrom != "" {
		f.DateFrom("start_time", p.DateFrom)
	}
	if p.DateTo != "" {
		f.DateTo("start_time", p.DateTo)
	}
	return &f
}

// ListActivities returns a filtered, sorted page of activities plus
// the total count of the filtered set.
func (s *GarminService) ListActivities(ctx context.Context, p ActivityListParams) ([]model.GarminActivity, int64, error) {
	f := s.activityFilter(p)

	var total int64
	if err := s.db.FetchVal(ctx, &total, "SELECT COUNT(*) FROM public.garmin_activities "+f.Where(), f.Args()...); err != nil {
		return nil, 0, err
	}

	sort := query.SortColumn(p.Sort, "start_time", activitySortWhitelist)
	order := query.SortOrder(p.Order, "desc")

	activities := []model.GarminActivity{}
	dataQuery := "SELECT " + activityColumns + " FROM public.garmin_activities a " + f.Where() +
		" ORDER BY a." + sort + " " + order + " LIMIT ? OFFSET ?"
	args := append(f.Args(), p.Limit, p.Offset)
	if err := s.db.Fetch(ctx, &activities, dataQuery, args...); err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

// Sports returns distinct sport types with activity counts
func (s *GarminService) Sports(ctx context.Context) ([]model.SportInfo, error) {
	sports := []model.SportInfo{}
	err := s.db.Fetch(ctx, &sports,
		"SELECT sport, COUNT(*) AS activity_count FROM public.garmin_activities "+
			"GROUP BY sport ORDER BY activity_count DESC")
	return sports, err
}

// GetActivity returns a single activity with its track point count
func (s *GarminService) GetActivity(ctx context.Context, activityID string) (*model.GarminActivity, error) {
	var activity model.GarminActivity
	err := s.db.FetchRow(ctx, &activity,
		"SELECT "+activityColumns+" FROM public.garmin_activities a WHERE a.activity_id = ?", activityID)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *GarminService) activityExists(ctx context.Context, activityID string) error {
	var one int
	return s.db.FetchRow(ctx, &one,
		"SELECT 1 AS one FROM public.garmin_activities WHERE activity_id = ?", activityID)
}

// ListTrackPoints returns a page of deduplicated track points for an
// activity, or the full simplified route when a tolerance is given.
// The returned limit/offset are what the response envelope must echo.
func (s *GarminService) ListTrackPoints(ctx context.Context, activityID string, p TrackListParams) ([]model.GarminTrackPoint, int64, int, int, error) {
	if err := s.activityExists(ctx, activityID); err != nil {
		return nil, 0, 0, 0, err
	}

	var total int64
	err := s.db.FetchVal(ctx, &total,
		"SELECT COUNT(DISTINCT timestamp) FROM public.garmin_track_points WHERE activity_id = ?", activityID)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	if p.Simplify != nil {
		points, err := s.simplifiedTrackPoints(ctx, activityID, *p.Simplify, p.Order)
		if err != nil {
			return nil, 0, 0, 0, err
		}
		return points, total, len(points), 0, nil
	}

	sort := query.SortColumn(p.Sort, "timestamp", trackSortWhitelist)
	order := query.SortOrder(p.Order, "asc")

	points := []model.GarminTrackPoint{}
	dataQuery := dedupedTrackPoints +
		"SELECT " + trackPointColumns + " FROM ranked WHERE rn = 1" +
		" ORDER BY " + sort + " " + order + " LIMIT ? OFFSET ?"
	if err := s.db.Fetch(ctx, &points, dataQuery, activityID, p.Limit, p.Offset); err != nil {
		return nil, 0, 0, 0, err
	}

	return points, total, p.Limit, p.Offset, nil
}

// simplifiedTrackPoints fetches the full deduplicated route in
// timestamp order and runs Douglas-Peucker over it.
func (s *GarminService) simplifiedTrackPoints(ctx context.Context, activityID string, tolerance float64, orderParam string) ([]model.GarminTrackPoint, error) {
	points := []model.GarminTrackPoint{}
	dataQuery := dedupedTrackPoints +
		"SELECT " + trackPointColumns + " FROM ranked WHERE rn = 1 ORDER BY timestamp ASC"
	if err := s.db.Fetch(ctx, &points, dataQuery, activityID); err != nil {
		return nil, err
	}

	simplified := SimplifyTrack(points, tolerance)
	if query.SortOrder(orderParam, "asc") == "DESC" {
		for i, j := 0, len(simplified)-1; i < j; i, j = i+1, j-1 {
			simplified[i], simplified[j] = simplified[j], simplified[i]
		}
	}
	return simplified, nil
}

// ChartData returns the complete deduplicated time series for an
// activity, in timestamp order, for client-side charting.
func (s *GarminService) ChartData(ctx context.Context, activityID string) ([]model.GarminChartPoint, error) {
	if err := s.activityExists(ctx, activityID); err != nil {
		return nil, err
	}

	points := []model.GarminChartPoint{}
	dataQuery := dedupedTrackPoints +
		"SELECT latitude, longitude, timestamp, altitude, distance_from_start_km, " +
		"speed_kmh, heart_rate, cadence, temperature_c FROM ranked WHERE rn = 1 ORDER BY timestamp ASC"
	if err := s.db.Fetch(ctx, &points, dataQuery, activityID); err != nil {
		return nil, err
	}
	return points, nil
}

var exportHeaders = []string{
	"Activity ID", "Sport", "Sub Sport", "Start Time", "End Time",
	"Distance (km)", "Duration (s)", "Avg HR", "Max HR", "Calories",
	"Avg Speed (km/h)", "Max Speed (km/h)", "Ascent (m)", "Descent (m)",
}

// ExportActivities renders the filtered activity list as an XLSX workbook
func (s *GarminService) ExportActivities(ctx context.Context, p ActivityListParams) (*bytes.Buffer, error) {
	f := s.activityFilter(p)

	activities := []model.GarminActivity{}
	dataQuery := "SELECT " + activityColumns + " FROM public.garmin_activities a " + f.Where() +
		" ORDER BY a.start_time DESC"
	if err := s.db.Fetch(ctx, &activities, dataQuery, f.Args()...); err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := "Activities"
	wb.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		wb.SetCellValue(sheet, cell, header)
	}

	for row, a := range activities {
		values := []interface{}{
			a.ActivityID, a.Sport, strDeref(a.SubSport),
			timeDeref(a.StartTime), timeDeref(a.EndTime),
			floatDeref(a.DistanceKm), int64Deref(a.DurationSeconds),
			intDeref(a.AvgHeartRate), intDeref(a.MaxHeartRate), intDeref(a.Calories),
			floatDeref(a.AvgSpeedKmh), floatDeref(a.MaxSpeedKmh),
			intDeref(a.TotalAscentM), intDeref(a.TotalDescentM),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			wb.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeDeref(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func floatDeref(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}

func intDeref(i *int) interface{} {
	if i == nil {
		return ""
	}
	return *i
}

func int64Deref(i *int64) interface{} {
	if i == nil {
		return ""
	}
	return *i
}
