package service

import (
	"context"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/store"
)

// Recognized source tags for spatial and unified queries
const (
	SourceOwnTracks = "owntracks"
	SourceGarmin    = "garmin"
)

// spatialSubquery selects points within a radius of a center, tagged
// with a source literal. The source tag is a compile-time constant,
// never user input; center/radius travel as bound parameters
// (longitude first, matching ST_MakePoint).
func spatialSubquery(sourceTag, table string) string {
	return "SELECT '" + sourceTag + "' AS source, id, latitude, longitude, " +
		"ST_Distance(geog, ST_MakePoint(?, ?)::geography) AS distance_meters, " +
		"timestamp FROM " + table + " " +
		"WHERE geog IS NOT NULL " +
		"AND ST_DWithin(geog, ST_MakePoint(?, ?)::geography, ?)"
}

// SpatialService answers radius and distance queries against both GPS
// sources.
type SpatialService struct {
	db store.Querier
}

// NewSpatialService creates a new spatial service
func NewSpatialService(db store.Querier) *SpatialService {
	return &SpatialService{db: db}
}

// sourceQueries returns the per-source subqueries selected by the
// source filter. An unrecognized source yields none.
func sourceQueries(source string) []string {
	var queries []string
	if source == "" || source == SourceOwnTracks {
		queries = append(queries, spatialSubquery(SourceOwnTracks, "public.locations"))
	}
	if source == "" || source == SourceGarmin {
		queries = append(queries, spatialSubquery(SourceGarmin, "public.garmin_track_points"))
	}
	return queries
}

func (s *SpatialService) searchWithinRadius(ctx context.Context, lat, lon float64, radiusMeters, limit int, source string) ([]model.NearbyPoint, error) {
	queries := sourceQueries(source)
	if len(queries) == 0 {
		// Unknown source filter: empty result, no query issued.
		return []model.NearbyPoint{}, nil
	}

	full := queries[0]
	args := []interface{}{lon, lat, lon, lat, radiusMeters}
	if len(queries) == 2 {
		full += " UNION ALL " + queries[1]
		args = append(args, lon, lat, lon, lat, radiusMeters)
	}
	full += " ORDER BY distance_meters ASC LIMIT ?"
	args = append(args, limit)

	points := []model.NearbyPoint{}
	if err := s.db.Fetch(ctx, &points, full, args...); err != nil {
		return nil, err
	}
	return points, nil
}

// Nearby finds GPS points within a radius of a center, sorted by
// distance ascending.
func (s *SpatialService) Nearby(ctx context.Context, lat, lon float64, radiusMeters, limit int, source string) ([]model.NearbyPoint, error) {
	return s.searchWithinRadius(ctx, lat, lon, radiusMeters, limit, source)
}

// Distance computes the geodesic distance in meters between two
// coordinates, using the same geography model as the radius queries.
func (s *SpatialService) Distance(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*model.DistanceResult, error) {
	var meters float64
	err := s.db.FetchVal(ctx, &meters,
		"SELECT ST_Distance(ST_MakePoint(?, ?)::geography, ST_MakePoint(?, ?)::geography)",
		fromLon, fromLat, toLon, toLat)
	if err != nil {
		return nil, err
	}
	return &model.DistanceResult{
		DistanceMeters: meters,
		FromLat:        fromLat,
		FromLon:        fromLon,
		ToLat:          toLat,
		ToLon:          toLon,
	}, nil
}

// WithinReference finds all GPS points inside a named reference
// location's configured radius. store.ErrNotFound when the name is
// unknown.
func (s *SpatialService) WithinReference(ctx context.Context, name string, limit int, source string) (*model.WithinReferenceResult, error) {
	var ref model.ReferenceLocation
	err := s.db.FetchRow(ctx, &ref,
		"SELECT id, name, latitude, longitude, radius_meters FROM public.reference_locations WHERE name = ?", name)
	if err != nil {
		return nil, err
	}

	points, err := s.searchWithinRadius(ctx, ref.Latitude, ref.Longitude, ref.RadiusMeters, limit, source)
	if err != nil {
		return nil, err
	}

	return &model.WithinReferenceResult{
		ReferenceName: name,
		RadiusMeters:  ref.RadiusMeters,
		TotalPoints:   len(points),
		Points:        points,
	}, nil
}
