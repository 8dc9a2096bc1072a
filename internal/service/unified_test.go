package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedList_SourceAndDateFilters(t *testing.T) {
	mock := &mockQuerier{}
	svc := NewUnifiedService(mock)

	_, _, err := svc.List(context.Background(), UnifiedListParams{
		Source:   "garmin",
		DateFrom: "2026-05-01",
		DateTo:   "2026-05-31",
		Order:    "asc",
		Limit:    100,
		Offset:   0,
	})
	require.NoError(t, err)
	require.Len(t, mock.calls, 2)

	data := mock.calls[1]
	assert.Contains(t, data.query, "FROM unified_gps_points")
	assert.Contains(t, data.query, "source = ?")
	assert.Contains(t, data.query, "ORDER BY timestamp ASC")
	assert.Equal(t, []interface{}{"garmin", "2026-05-01", "2026-05-31", 100, 0}, data.args)
}

func TestDailySummary_InclusiveDateBounds(t *testing.T) {
	mock := &mockQuerier{}
	svc := NewUnifiedService(mock)

	_, err := svc.DailySummary(context.Background(), "2026-05-01", "2026-05-31", 30)
	require.NoError(t, err)

	call := mock.lastCall()
	assert.Contains(t, call.query, "FROM daily_activity_summary")
	assert.Contains(t, call.query, "activity_date >= ?::date")
	// activity_date is date-typed, so the upper bound is inclusive.
	assert.Contains(t, call.query, "activity_date <= ?::date")
	assert.Contains(t, call.query, "ORDER BY activity_date DESC")
	assert.Equal(t, []interface{}{"2026-05-01", "2026-05-31", 30}, call.args)
}
