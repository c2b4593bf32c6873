package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func poiRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "trip_id", "category", "sub_category", "name", "status",
		"location", "details", "source_refs", "is_cancelled", "is_paid",
		"created_at", "updated_at",
	})
}

func TestPOIStore_GetPOI(t *testing.T) {
	mock := newMockPool(t)
	s := NewPOIStore(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+)\s+FROM pois`).
		WithArgs("poi-1").
		WillReturnRows(poiRows().AddRow(
			"poi-1", "trip-1", types.CategoryAccommodation, "hotel", "Hilton Garden Inn",
			types.StatusBooked,
			[]byte(`{"city":"Paris","country":"France"}`),
			[]byte(`{"orderNumber":"ABC123","checkIn":"2024-06-10"}`),
			[]byte(`{"emailIds":["email-1"],"recommendationIds":null}`),
			false, false, now, now,
		))

	poi, err := s.GetPOI(context.Background(), "poi-1")
	require.NoError(t, err)
	assert.Equal(t, "Hilton Garden Inn", poi.Name)
	assert.Equal(t, "Paris", poi.Location.City)
	assert.Equal(t, "ABC123", poi.OrderNumber())
	assert.Equal(t, []string{"email-1"}, poi.SourceRefs.EmailIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPOIStore_FindPOIByOrderNumberNotFound(t *testing.T) {
	mock := newMockPool(t)
	s := NewPOIStore(mock)

	mock.ExpectQuery(`SELECT (.+)\s+FROM pois`).
		WithArgs("trip-1", types.CategoryAccommodation, "NOPE").
		WillReturnRows(poiRows())

	_, err := s.FindPOIByOrderNumber(context.Background(), "trip-1", types.CategoryAccommodation, "NOPE")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPOIStore_CreatePOI(t *testing.T) {
	mock := newMockPool(t)
	s := NewPOIStore(mock)

	poi := &types.POI{
		ID:       "poi-1",
		TripID:   "trip-1",
		Category: types.CategoryEatery,
		Name:     "Le Bernardin",
		Status:   types.StatusCandidate,
		Details:  map[string]any{"notes": "tasting menu"},
	}

	mock.ExpectExec(`INSERT INTO pois`).
		WithArgs(poi.ID, poi.TripID, poi.Category, poi.SubCategory, poi.Name, poi.Status,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), poi.IsCancelled, poi.IsPaid).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.CreatePOI(context.Background(), poi))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPOIStore_UpdatePOIMissingRow(t *testing.T) {
	mock := newMockPool(t)
	s := NewPOIStore(mock)

	mock.ExpectExec(`UPDATE pois`).
		WithArgs("poi-x", "", "Gone", types.EntityStatus(""), pgxmock.AnyArg(), pgxmock.AnyArg(), false, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdatePOI(context.Background(), &types.POI{ID: "poi-x", Name: "Gone"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPOIStore_AppendPOISourceRef(t *testing.T) {
	mock := newMockPool(t)
	s := NewPOIStore(mock)

	// Appending is conditional inside the statement; zero rows affected just
	// means the ref was already present.
	mock.ExpectExec(`UPDATE pois`).
		WithArgs("poi-1", "emailIds", "email-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, s.AppendPOISourceRef(context.Background(), "poi-1", store.RefEmails, "email-2"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPOIStore_SetPOICancelled(t *testing.T) {
	mock := newMockPool(t)
	s := NewPOIStore(mock)

	mock.ExpectExec(`UPDATE pois`).
		WithArgs("poi-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.SetPOICancelled(context.Background(), "poi-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStore_InsertDayDuplicate(t *testing.T) {
	mock := newMockPool(t)
	s := NewItineraryStore(mock)

	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	day := &types.ItineraryDay{
		ID:        "day-1",
		TripID:    "trip-1",
		DayNumber: 10,
		Date:      &date,
	}

	mock.ExpectExec(`INSERT INTO itinerary_days`).
		WithArgs(day.ID, day.TripID, day.DayNumber, day.Date, day.LocationContext,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.InsertDay(context.Background(), day)
	assert.ErrorIs(t, err, store.ErrDuplicateDay)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_ResolveWebhookToken(t *testing.T) {
	mock := newMockPool(t)
	s := NewUserStore(mock)

	mock.ExpectQuery(`SELECT id\s+FROM users`).
		WithArgs("tok-abc").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("user-1"))

	userID, err := s.ResolveWebhookToken(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	mock.ExpectQuery(`SELECT id\s+FROM users`).
		WithArgs("tok-unknown").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err = s.ResolveWebhookToken(context.Background(), "tok-unknown")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
