package postgres

import (
	"context"
	"errors"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/jackc/pgx/v5"
)

// POIStore implements store.POIStore.
type POIStore struct {
	db DB
}

// NewPOIStore creates a POIStore backed by the given connection.
func NewPOIStore(db DB) *POIStore {
	return &POIStore{db: db}
}

const poiColumns = `id, trip_id, category, sub_category, name, status, location, details, source_refs, is_cancelled, is_paid, created_at, updated_at`

func (s *POIStore) CreatePOI(ctx context.Context, poi *types.POI) error {
	location, err := marshalJSONB(poi.Location)
	if err != nil {
		return err
	}
	details, err := marshalJSONB(poi.Details)
	if err != nil {
		return err
	}
	sourceRefs, err := marshalJSONB(poi.SourceRefs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO pois (id, trip_id, category, sub_category, name, status, location, details, source_refs, is_cancelled, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.db.Exec(ctx, query,
		poi.ID,
		poi.TripID,
		poi.Category,
		poi.SubCategory,
		poi.Name,
		poi.Status,
		location,
		details,
		sourceRefs,
		poi.IsCancelled,
		poi.IsPaid,
	)
	return err
}

func (s *POIStore) GetPOI(ctx context.Context, id string) (*types.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE id = $1`

	poi, err := scanPOI(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return poi, nil
}

// UpdatePOI writes the reconciled fields. source_refs is deliberately not
// written here; AppendPOISourceRef owns that column.
func (s *POIStore) UpdatePOI(ctx context.Context, poi *types.POI) error {
	location, err := marshalJSONB(poi.Location)
	if err != nil {
		return err
	}
	details, err := marshalJSONB(poi.Details)
	if err != nil {
		return err
	}

	query := `
		UPDATE pois
		SET sub_category = $2,
			name = $3,
			status = $4,
			location = $5,
			details = $6,
			is_cancelled = $7,
			is_paid = $8,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query,
		poi.ID,
		poi.SubCategory,
		poi.Name,
		poi.Status,
		location,
		details,
		poi.IsCancelled,
		poi.IsPaid,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *POIStore) FindPOIByOrderNumber(ctx context.Context, tripID string, category types.EntityCategory, orderNumber string) (*types.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE trip_id = $1 AND category = $2 AND details->>'orderNumber' = $3
		ORDER BY created_at
		LIMIT 1`

	poi, err := scanPOI(s.db.QueryRow(ctx, query, tripID, category, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return poi, nil
}

func (s *POIStore) ListPOIsByCategory(ctx context.Context, tripID string, category types.EntityCategory) ([]*types.POI, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE trip_id = $1 AND category = $2 AND NOT is_cancelled
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, tripID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pois []*types.POI
	for rows.Next() {
		poi, err := scanPOI(rows)
		if err != nil {
			return nil, err
		}
		pois = append(pois, poi)
	}
	return pois, rows.Err()
}

// AppendPOISourceRef appends refID to the named provenance array unless it is
// already present. Single statement, so concurrent appends cannot lose each
// other.
func (s *POIStore) AppendPOISourceRef(ctx context.Context, id string, field store.RefField, refID string) error {
	query := `
		UPDATE pois
		SET source_refs = jsonb_set(
				source_refs,
				ARRAY[$2::text],
				COALESCE(source_refs->$2, '[]'::jsonb) || to_jsonb($3::text),
				true),
			updated_at = NOW()
		WHERE id = $1
		  AND NOT COALESCE(source_refs->$2, '[]'::jsonb) @> to_jsonb($3::text)`

	_, err := s.db.Exec(ctx, query, id, string(field), refID)
	return err
}

func (s *POIStore) SetPOICancelled(ctx context.Context, id string) error {
	query := `
		UPDATE pois
		SET is_cancelled = TRUE, updated_at = NOW()
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanPOI(row pgx.Row) (*types.POI, error) {
	poi := &types.POI{}
	var location, details, sourceRefs []byte
	err := row.Scan(
		&poi.ID,
		&poi.TripID,
		&poi.Category,
		&poi.SubCategory,
		&poi.Name,
		&poi.Status,
		&location,
		&details,
		&sourceRefs,
		&poi.IsCancelled,
		&poi.IsPaid,
		&poi.CreatedAt,
		&poi.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(location, &poi.Location); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(details, &poi.Details); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(sourceRefs, &poi.SourceRefs); err != nil {
		return nil, err
	}
	return poi, nil
}
