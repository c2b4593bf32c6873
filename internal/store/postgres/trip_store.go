package postgres

import (
	"context"
	"errors"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/jackc/pgx/v5"
)

// TripStore implements store.TripStore. The engine reads trips only.
type TripStore struct {
	db DB
}

// NewTripStore creates a TripStore backed by the given connection.
func NewTripStore(db DB) *TripStore {
	return &TripStore{db: db}
}

const tripColumns = `id, user_id, name, start_date, end_date, countries, currency, status, created_at, updated_at`

func (s *TripStore) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = $1 AND deleted_at IS NULL`

	trip, err := scanTrip(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *TripStore) ListTripsByUser(ctx context.Context, userID string) ([]*types.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY start_date NULLS LAST, created_at`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*types.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func scanTrip(row pgx.Row) (*types.Trip, error) {
	trip := &types.Trip{}
	var countries []byte
	err := row.Scan(
		&trip.ID,
		&trip.UserID,
		&trip.Name,
		&trip.StartDate,
		&trip.EndDate,
		&countries,
		&trip.Currency,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(countries, &trip.Countries); err != nil {
		return nil, err
	}
	return trip, nil
}
