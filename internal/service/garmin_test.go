package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/store"
)

func TestListActivities_FilterAndSort(t *testing.T) {
	mock := &mockQuerier{}
	svc := NewGarminService(mock)

	_, _, err := svc.ListActivities(context.Background(), ActivityListParams{
		Sport:    "running",
		DateFrom: "2026-03-01",
		Sort:     "distance_km",
		Order:    "asc",
		Limit:    20,
		Offset:   0,
	})
	require.NoError(t, err)
	require.Len(t, mock.calls, 2)

	data := mock.calls[1]
	assert.Contains(t, data.query, "ORDER BY a.distance_km ASC")
	assert.Contains(t, data.query, "track_point_count")
	assert.Equal(t, []interface{}{"running", "2026-03-01", 20, 0}, data.args)
}

func TestListTrackPoints_DeduplicatesByTimestamp(t *testing.T) {
	mock := &mockQuerier{}
	svc := NewGarminService(mock)

	_, total, limit, offset, err := svc.ListTrackPoints(context.Background(), "act-1", TrackListParams{
		Limit:  100,
		Offset: 5,
	})
	require.NoError(t, err)
	require.Len(t, mock.calls, 3)

	assert.Contains(t, mock.calls[1].query, "COUNT(DISTINCT timestamp)")

	data := mock.calls[2]
	assert.Contains(t, data.query, "PARTITION BY timestamp")
	assert.Contains(t, data.query, "(altitude IS NOT NULL) DESC, id DESC")
	assert.Contains(t, data.query, "WHERE rn = 1")

	assert.Equal(t, int64(0), total)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 5, offset)
}

func TestListTrackPoints_UnknownActivity(t *testing.T) {
	mock := &mockQuerier{
		fetchRowFn: func(dest interface{}, query string, args []interface{}) error {
			return store.ErrNotFound
		},
	}
	svc := NewGarminService(mock)

	_, _, _, _, err := svc.ListTrackPoints(context.Background(), "missing", TrackListParams{Limit: 10})
	assert.ErrorIs(t, err, store.ErrNotFound)
	// Existence check fails before any track point query runs.
	assert.Len(t, mock.calls, 1)
}

func TestListTrackPoints_SimplifyIgnoresPagination(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	route := []model.GarminTrackPoint{
		{ID: 1, Latitude: 40.0, Longitude: -74.0, Timestamp: base},
		{ID: 2, Latitude: 40.0001, Longitude: -74.0001, Timestamp: base.Add(time.Second)},
		{ID: 3, Latitude: 40.5, Longitude: -74.5, Timestamp: base.Add(2 * time.Second)},
		{ID: 4, Latitude: 41.0, Longitude: -75.0, Timestamp: base.Add(3 * time.Second)},
	}

	mock := &mockQuerier{
		fetchValFn: func(dest interface{}, query string, args []interface{}) error {
			*dest.(*int64) = int64(len(route))
			return nil
		},
		fetchFn: func(dest interface{}, query string, args []interface{}) error {
			*dest.(*[]model.GarminTrackPoint) = append([]model.GarminTrackPoint{}, route...)
			return nil
		},
	}
	svc := NewGarminService(mock)

	tol := 0.001
	points, total, limit, offset, err := svc.ListTrackPoints(context.Background(), "act-1", TrackListParams{
		Limit:    2,
		Offset:   50,
		Simplify: &tol,
	})
	require.NoError(t, err)

	// The requested page size is irrelevant in simplify mode: the
	// envelope echoes the simplified route length at offset zero.
	assert.Equal(t, int64(4), total)
	assert.Equal(t, len(points), limit)
	assert.Equal(t, 0, offset)

	// The route fetch is unpaginated.
	fetch := mock.lastCall()
	assert.NotContains(t, fetch.query, "LIMIT")
	assert.Contains(t, fetch.query, "ORDER BY timestamp ASC")
}

func TestListTrackPoints_SimplifyDescendingOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	route := []model.GarminTrackPoint{
		{ID: 1, Latitude: 40.0, Longitude: -74.0, Timestamp: base},
		{ID: 2, Latitude: 40.5, Longitude: -74.5, Timestamp: base.Add(time.Second)},
		{ID: 3, Latitude: 41.0, Longitude: -73.0, Timestamp: base.Add(2 * time.Second)},
	}

	mock := &mockQuerier{
		fetchFn: func(dest interface{}, query string, args []interface{}) error {
			*dest.(*[]model.GarminTrackPoint) = append([]model.GarminTrackPoint{}, route...)
			return nil
		},
	}
	svc := NewGarminService(mock)

	tol := 0.001
	points, _, _, _, err := svc.ListTrackPoints(context.Background(), "act-1", TrackListParams{
		Order:    "desc",
		Simplify: &tol,
	})
	require.NoError(t, err)
	require.NotEmpty(t, points)

	// Simplification runs in timestamp order; the requested order is
	// applied afterwards.
	assert.Equal(t, int64(3), points[0].ID)
	assert.Equal(t, int64(1), points[len(points)-1].ID)
}

func TestChartData_FullSeriesInTimestampOrder(t *testing.T) {
	mock := &mockQuerier{}
	svc := NewGarminService(mock)

	_, err := svc.ChartData(context.Background(), "act-1")
	require.NoError(t, err)

	data := mock.lastCall()
	assert.Contains(t, data.query, "ORDER BY timestamp ASC")
	assert.NotContains(t, data.query, "LIMIT")
}

func TestExportActivities_ProducesWorkbook(t *testing.T) {
	start := time.Date(2026, 4, 2, 7, 30, 0, 0, time.UTC)
	km := 10.5
	mock := &mockQuerier{
		fetchFn: func(dest interface{}, query string, args []interface{}) error {
			*dest.(*[]model.GarminActivity) = []model.GarminActivity{
				{ActivityID: "act-1", Sport: "running", StartTime: &start, DistanceKm: &km},
			}
			return nil
		},
	}
	svc := NewGarminService(mock)

	buf, err := svc.ExportActivities(context.Background(), ActivityListParams{Sport: "running"})
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)

	call := mock.lastCall()
	assert.Contains(t, call.query, "ORDER BY a.start_time DESC")
	assert.NotContains(t, call.query, "LIMIT")
	assert.Equal(t, []interface{}{"running"}, call.args)
}
