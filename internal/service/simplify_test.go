package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stuartshay/otel-data-api/internal/model"
)

func trackPoint(id int64, lat, lon float64, offset time.Duration) model.GarminTrackPoint {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return model.GarminTrackPoint{
		ID:        id,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: base.Add(offset),
	}
}

func TestSimplifyTrack_ShortTrackUnchanged(t *testing.T) {
	points := []model.GarminTrackPoint{
		trackPoint(1, 40.0, -74.0, 0),
		trackPoint(2, 40.1, -74.1, time.Second),
	}
	assert.Equal(t, points, SimplifyTrack(points, 0.001))
}

func TestSimplifyTrack_CollinearCollapsesToEndpoints(t *testing.T) {
	points := []model.GarminTrackPoint{
		trackPoint(1, 40.0, -74.0, 0),
		trackPoint(2, 40.1, -74.1, time.Second),
		trackPoint(3, 40.2, -74.2, 2*time.Second),
		trackPoint(4, 40.3, -74.3, 3*time.Second),
	}

	simplified := SimplifyTrack(points, 0.0001)
	assert.Len(t, simplified, 2)
	assert.Equal(t, int64(1), simplified[0].ID)
	assert.Equal(t, int64(4), simplified[1].ID)
}

func TestSimplifyTrack_SpikeSurvives(t *testing.T) {
	points := []model.GarminTrackPoint{
		trackPoint(1, 40.0, -74.0, 0),
		trackPoint(2, 40.5, -73.0, time.Second), // far off the 1-3 line
		trackPoint(3, 41.0, -74.0, 2*time.Second),
	}

	simplified := SimplifyTrack(points, 0.001)
	assert.Len(t, simplified, 3)
}

func TestSimplifyTrack_ToleranceControlsReduction(t *testing.T) {
	points := []model.GarminTrackPoint{
		trackPoint(1, 40.0, -74.0, 0),
		trackPoint(2, 40.1, -74.05, time.Second),
		trackPoint(3, 40.2, -74.0, 2*time.Second),
	}

	// Point 2 sits ~0.05 degrees off the 1-3 line: a loose tolerance
	// drops it, a tight one keeps it.
	assert.Len(t, SimplifyTrack(points, 0.01), 3)
	assert.Len(t, SimplifyTrack(points, MaxSimplifyTolerance), 3)

	loose := SimplifyTrack(points, 0.06)
	assert.Len(t, loose, 2)
}

func TestSimplifyTrack_DuplicateCoordinateKeepsEarliest(t *testing.T) {
	points := []model.GarminTrackPoint{
		trackPoint(1, 40.0, -74.0, 0),
		trackPoint(2, 40.5, -73.0, time.Second),
		trackPoint(3, 40.0, -74.0, 2*time.Second), // revisits the start
	}

	simplified := SimplifyTrack(points, 0.001)

	ids := make([]int64, 0, len(simplified))
	for _, p := range simplified {
		ids = append(ids, p.ID)
	}
	// The revisited coordinate keeps only its earliest sample.
	assert.Equal(t, []int64{1, 2}, ids)
}
