package itinerary

import (
	"context"
	"testing"
	"time"

	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func datedTrip(start, end string) *types.Trip {
	s, _ := ParseCalendarDate(start)
	e, _ := ParseCalendarDate(end)
	return &types.Trip{
		ID:        "trip-1",
		UserID:    "user-1",
		Name:      "Japan 2024",
		StartDate: &s,
		EndDate:   &e,
	}
}

func TestEnsureDay_ReturnsExistingDay(t *testing.T) {
	trips := new(MockTripStore)
	days := new(MockItineraryStore)
	r := NewResolver(trips, days)
	ctx := context.Background()

	date := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	existing := &types.ItineraryDay{ID: "day-4", TripID: "trip-1", DayNumber: 4, Date: &date}
	days.On("GetDayByDate", ctx, "trip-1", date).Return(existing, nil)

	day, err := r.EnsureDay(ctx, "trip-1", date)
	require.NoError(t, err)
	assert.Equal(t, existing, day)
	trips.AssertNotCalled(t, "GetTrip", mock.Anything, mock.Anything)
}

func TestEnsureDay_CreatesDayWithCorrectNumber(t *testing.T) {
	trips := new(MockTripStore)
	days := new(MockItineraryStore)
	r := NewResolver(trips, days)
	ctx := context.Background()

	date := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	days.On("GetDayByDate", ctx, "trip-1", date).Return(nil, store.ErrNotFound)
	trips.On("GetTrip", ctx, "trip-1").Return(datedTrip("2024-06-01", "2024-06-14"), nil)
	days.On("ListDayNumbers", ctx, "trip-1").Return([]int{}, nil)
	days.On("InsertDay", ctx, mock.AnythingOfType("*types.ItineraryDay")).Return(nil)

	day, err := r.EnsureDay(ctx, "trip-1", date)
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, 4, day.DayNumber, "June 4 of a June 1 trip is day 4")
	require.NotNil(t, day.Date)
	assert.True(t, day.Date.Equal(date))
}

func TestEnsureDay_TruncatesTimeOfDay(t *testing.T) {
	trips := new(MockTripStore)
	days := new(MockItineraryStore)
	r := NewResolver(trips, days)
	ctx := context.Background()

	midnight := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := &types.ItineraryDay{ID: "day-1", TripID: "trip-1", DayNumber: 1, Date: &midnight}
	days.On("GetDayByDate", ctx, "trip-1", midnight).Return(existing, nil)

	day, err := r.EnsureDay(ctx, "trip-1", time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, existing, day)
}

func TestEnsureDay_OutOfRangeIsNotAnError(t *testing.T) {
	trips := new(MockTripStore)
	days := new(MockItineraryStore)
	r := NewResolver(trips, days)
	ctx := context.Background()

	date := time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)
	days.On("GetDayByDate", ctx, "trip-1", date).Return(nil, store.ErrNotFound)
	trips.On("GetTrip", ctx, "trip-1").Return(datedTrip("2024-06-01", "2024-06-14"), nil)

	day, err := r.EnsureDay(ctx, "trip-1", date)
	require.NoError(t, err)
	assert.Nil(t, day)
	days.AssertNotCalled(t, "InsertDay", mock.Anything, mock.Anything)
}

func TestEnsureDay_UndatedTripIsNotAnError(t *testing.T) {
	trips := new(MockTripStore)
	days := new(MockItineraryStore)
	r := NewResolver(trips, days)
	ctx := context.Background()

	date := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	days.On("GetDayByDate", ctx, "trip-1", date).Return(nil, store.ErrNotFound)
	trips.On("GetTrip", ctx, "trip-1").Return(&types.Trip{ID: "trip-1"}, nil)

	day, err := r.EnsureDay(ctx, "trip-1", date)
	require.NoError(t, err)
	assert.Nil(t, day)
}

func TestEnsureDay_ProbesPastUsedDayNumbers(t *testing.T) {
	trips := new(MockTripStore)
	days := new(MockItineraryStore)
	r := NewResolver(trips, days)
	ctx := context.Background()

	date := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	days.On("GetDayByDate", ctx, "trip-1", date).Return(nil, store.ErrNotFound)
	trips.On("GetTrip", ctx, "trip-1").Return(datedTrip("2024-06-01", "2024-06-14"), nil)
	// Day number 2 is taken by a hand-edited undated slot; 3 too.
	days.On("ListDayNumbers", ctx, "trip-1").Return([]int{1, 2, 3}, nil)
	days.On("InsertDay", ctx, mock.AnythingOfType("*types.ItineraryDay")).Return(nil)

	day, err := r.EnsureDay(ctx, "trip-1", date)
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, 4, day.DayNumber)
}

func TestEnsureDay_LostInsertRaceRefetches(t *testing.T) {
	trips := new(MockTripStore)
	days := new(MockItineraryStore)
	r := NewResolver(trips, days)
	ctx := context.Background()

	date := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	winner := &types.ItineraryDay{ID: "day-other", TripID: "trip-1", DayNumber: 4, Date: &date}

	days.On("GetDayByDate", ctx, "trip-1", date).Return(nil, store.ErrNotFound).Once()
	trips.On("GetTrip", ctx, "trip-1").Return(datedTrip("2024-06-01", "2024-06-14"), nil)
	days.On("ListDayNumbers", ctx, "trip-1").Return([]int{}, nil)
	days.On("InsertDay", ctx, mock.AnythingOfType("*types.ItineraryDay")).Return(store.ErrDuplicateDay)
	days.On("GetDayByDate", ctx, "trip-1", date).Return(winner, nil).Once()

	day, err := r.EnsureDay(ctx, "trip-1", date)
	require.NoError(t, err)
	assert.Equal(t, "day-other", day.ID, "losing the unique-constraint race returns the winner's day")
}
