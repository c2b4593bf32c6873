package postgres

import (
	"context"
	"errors"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/jackc/pgx/v5"
)

// TransportationStore implements store.TransportationStore.
type TransportationStore struct {
	db DB
}

// NewTransportationStore creates a TransportationStore backed by the given
// connection.
func NewTransportationStore(db DB) *TransportationStore {
	return &TransportationStore{db: db}
}

const transportationColumns = `id, trip_id, mode, status, cost, booking, segments, source_refs, is_cancelled, created_at, updated_at`

func (s *TransportationStore) CreateTransportation(ctx context.Context, tr *types.Transportation) error {
	cost, err := marshalJSONB(tr.Cost)
	if err != nil {
		return err
	}
	booking, err := marshalJSONB(tr.Booking)
	if err != nil {
		return err
	}
	segments, err := marshalJSONB(tr.Segments)
	if err != nil {
		return err
	}
	sourceRefs, err := marshalJSONB(tr.SourceRefs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transportations (id, trip_id, mode, status, cost, booking, segments, source_refs, is_cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.db.Exec(ctx, query,
		tr.ID,
		tr.TripID,
		tr.Mode,
		tr.Status,
		cost,
		booking,
		segments,
		sourceRefs,
		tr.IsCancelled,
	)
	return err
}

func (s *TransportationStore) GetTransportation(ctx context.Context, id string) (*types.Transportation, error) {
	query := `
		SELECT ` + transportationColumns + `
		FROM transportations
		WHERE id = $1`

	tr, err := scanTransportation(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return tr, nil
}

func (s *TransportationStore) UpdateTransportation(ctx context.Context, tr *types.Transportation) error {
	cost, err := marshalJSONB(tr.Cost)
	if err != nil {
		return err
	}
	booking, err := marshalJSONB(tr.Booking)
	if err != nil {
		return err
	}
	segments, err := marshalJSONB(tr.Segments)
	if err != nil {
		return err
	}

	query := `
		UPDATE transportations
		SET mode = $2,
			status = $3,
			cost = $4,
			booking = $5,
			segments = $6,
			is_cancelled = $7,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query,
		tr.ID,
		tr.Mode,
		tr.Status,
		cost,
		booking,
		segments,
		tr.IsCancelled,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *TransportationStore) FindTransportationByOrderNumber(ctx context.Context, tripID, orderNumber string) (*types.Transportation, error) {
	query := `
		SELECT ` + transportationColumns + `
		FROM transportations
		WHERE trip_id = $1 AND booking->>'orderNumber' = $2
		ORDER BY created_at
		LIMIT 1`

	tr, err := scanTransportation(s.db.QueryRow(ctx, query, tripID, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return tr, nil
}

func (s *TransportationStore) ListTransportationsByTrip(ctx context.Context, tripID string) ([]*types.Transportation, error) {
	query := `
		SELECT ` + transportationColumns + `
		FROM transportations
		WHERE trip_id = $1 AND NOT is_cancelled
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trs []*types.Transportation
	for rows.Next() {
		tr, err := scanTransportation(rows)
		if err != nil {
			return nil, err
		}
		trs = append(trs, tr)
	}
	return trs, rows.Err()
}

func (s *TransportationStore) AppendTransportationSourceRef(ctx context.Context, id string, field store.RefField, refID string) error {
	query := `
		UPDATE transportations
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

func (s *TransportationStore) SetTransportationCancelled(ctx context.Context, id string) error {
	query := `
		UPDATE transportations
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

func scanTransportation(row pgx.Row) (*types.Transportation, error) {
	tr := &types.Transportation{}
	var cost, booking, segments, sourceRefs []byte
	err := row.Scan(
		&tr.ID,
		&tr.TripID,
		&tr.Mode,
		&tr.Status,
		&cost,
		&booking,
		&segments,
		&sourceRefs,
		&tr.IsCancelled,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(cost, &tr.Cost); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(booking, &tr.Booking); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(segments, &tr.Segments); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(sourceRefs, &tr.SourceRefs); err != nil {
		return nil, err
	}
	return tr, nil
}
