package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/jackc/pgx/v5"
)

// ItineraryStore implements store.ItineraryStore. The itinerary_days table
// carries unique constraints on (trip_id, date) and (trip_id, day_number);
// InsertDay surfaces the former as store.ErrDuplicateDay so the resolver can
// re-fetch instead of trusting its check-then-insert sequence.
type ItineraryStore struct {
	db DB
}

// NewItineraryStore creates an ItineraryStore backed by the given connection.
func NewItineraryStore(db DB) *ItineraryStore {
	return &ItineraryStore{db: db}
}

const dayColumns = `id, trip_id, day_number, date, location_context, accommodation_options, activities, transportation_segments, created_at, updated_at`

func (s *ItineraryStore) GetDayByDate(ctx context.Context, tripID string, date time.Time) (*types.ItineraryDay, error) {
	query := `
		SELECT ` + dayColumns + `
		FROM itinerary_days
		WHERE trip_id = $1 AND date = $2`

	day, err := scanDay(s.db.QueryRow(ctx, query, tripID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return day, nil
}

func (s *ItineraryStore) ListDays(ctx context.Context, tripID string) ([]*types.ItineraryDay, error) {
	query := `
		SELECT ` + dayColumns + `
		FROM itinerary_days
		WHERE trip_id = $1
		ORDER BY day_number`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*types.ItineraryDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *ItineraryStore) ListDayNumbers(ctx context.Context, tripID string) ([]int, error) {
	query := `
		SELECT day_number
		FROM itinerary_days
		WHERE trip_id = $1
		ORDER BY day_number`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (s *ItineraryStore) InsertDay(ctx context.Context, day *types.ItineraryDay) error {
	options, err := marshalJSONB(day.AccommodationOptions)
	if err != nil {
		return err
	}
	activities, err := marshalJSONB(day.Activities)
	if err != nil {
		return err
	}
	segments, err := marshalJSONB(day.TransportationSegments)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO itinerary_days (id, trip_id, day_number, date, location_context, accommodation_options, activities, transportation_segments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.Exec(ctx, query,
		day.ID,
		day.TripID,
		day.DayNumber,
		day.Date,
		day.LocationContext,
		options,
		activities,
		segments,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateDay
		}
		return err
	}
	return nil
}

func (s *ItineraryStore) UpdateDayLists(ctx context.Context, day *types.ItineraryDay) error {
	options, err := marshalJSONB(day.AccommodationOptions)
	if err != nil {
		return err
	}
	activities, err := marshalJSONB(day.Activities)
	if err != nil {
		return err
	}
	segments, err := marshalJSONB(day.TransportationSegments)
	if err != nil {
		return err
	}

	query := `
		UPDATE itinerary_days
		SET accommodation_options = $2,
			activities = $3,
			transportation_segments = $4,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, day.ID, options, activities, segments)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanDay(row pgx.Row) (*types.ItineraryDay, error) {
	day := &types.ItineraryDay{}
	var options, activities, segments []byte
	err := row.Scan(
		&day.ID,
		&day.TripID,
		&day.DayNumber,
		&day.Date,
		&day.LocationContext,
		&options,
		&activities,
		&segments,
		&day.CreatedAt,
		&day.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(options, &day.AccommodationOptions); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(activities, &day.Activities); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(segments, &day.TransportationSegments); err != nil {
		return nil, err
	}
	return day, nil
}
