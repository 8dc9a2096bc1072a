package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stuartshay/otel-data-api/internal/model"
	"github.com/stuartshay/otel-data-api/internal/store"
)

// ErrNoFields is returned when a sparse update provides nothing to set
var ErrNoFields = errors.New("no fields to update")

// ErrCreateFailed is returned when an insert unexpectedly yields no row
var ErrCreateFailed = errors.New("failed to create reference location")

const referenceColumns = "id, name, latitude, longitude, radius_meters, description, created_at, updated_at"

// ReferenceService manages user-named reference locations, the only
// mutable entity in this API.
type ReferenceService struct {
	db store.Querier
}

// NewReferenceService creates a new reference location service
func NewReferenceService(db store.Querier) *ReferenceService {
	return &ReferenceService{db: db}
}

// List returns all reference locations ordered by name
func (s *ReferenceService) List(ctx context.Context) ([]model.ReferenceLocation, error) {
	refs := []model.ReferenceLocation{}
	err := s.db.Fetch(ctx, &refs,
		"SELECT "+referenceColumns+" FROM public.reference_locations ORDER BY name")
	return refs, err
}

// Get returns a single reference location by id
func (s *ReferenceService) Get(ctx context.Context, id int64) (*model.ReferenceLocation, error) {
	var ref model.ReferenceLocation
	err := s.db.FetchRow(ctx, &ref,
		"SELECT "+referenceColumns+" FROM public.reference_locations WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// Create inserts a new reference location and returns the stored row
func (s *ReferenceService) Create(ctx context.Context, body *model.ReferenceLocationCreate) (*model.ReferenceLocation, error) {
	if body.RadiusMeters == 0 {
		body.RadiusMeters = 50
	}

	var ref model.ReferenceLocation
	err := s.db.FetchRow(ctx, &ref,
		"INSERT INTO public.reference_locations (name, latitude, longitude, radius_meters, description) "+
			"VALUES (?, ?, ?, ?, ?) RETURNING "+referenceColumns,
		body.Name, *body.Latitude, *body.Longitude, body.RadiusMeters, body.Description)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCreateFailed
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// Update applies a sparse update: only provided fields are written,
// and updated_at is always touched. ErrNoFields when the body is
// empty, store.ErrNotFound when no row matches.
func (s *ReferenceService) Update(ctx context.Context, id int64, body *model.ReferenceLocationUpdate) (*model.ReferenceLocation, error) {
	cols, vals := body.Fields()
	if len(cols) == 0 {
		return nil, ErrNoFields
	}

	setParts := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		setParts = append(setParts, col+" = ?")
	}
	setParts = append(setParts, "updated_at = NOW()")
	vals = append(vals, id)

	var ref model.ReferenceLocation
	err := s.db.FetchRow(ctx, &ref,
		"UPDATE public.reference_locations SET "+strings.Join(setParts, ", ")+
			" WHERE id = ? RETURNING "+referenceColumns, vals...)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// Delete removes a reference location; store.ErrNotFound when no row
// was affected.
func (s *ReferenceService) Delete(ctx context.Context, id int64) error {
	affected, err := s.db.Exec(ctx, "DELETE FROM public.reference_locations WHERE id = ?", id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
