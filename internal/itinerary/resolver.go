// Package itinerary projects date-bearing trip entities onto itinerary-day
// records: finding or creating the day for a calendar date and maintaining
// each day's accommodation, activity and transport lists.
package itinerary

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/TripStitch/tripstitch-backend/errors"
	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/google/uuid"
)

// Resolver finds or creates the itinerary day for a (trip, date) pair.
type Resolver struct {
	trips store.TripStore
	days  store.ItineraryStore
}

// NewResolver creates a day resolver.
func NewResolver(trips store.TripStore, days store.ItineraryStore) *Resolver {
	return &Resolver{trips: trips, days: days}
}

// EnsureDay returns the itinerary day for the date, creating it if needed.
// Returns (nil, nil) when the date falls outside the trip's range or the trip
// is undated — out-of-range dates are not itinerary errors, they are simply
// not placed. The days table carries a unique (trip_id, date) constraint;
// losing the insert race means the day exists, so it is re-fetched.
func (r *Resolver) EnsureDay(ctx context.Context, tripID string, date time.Time) (*types.ItineraryDay, error) {
	log := logger.GetLogger()
	date = TruncateToDay(date)

	day, err := r.days.GetDayByDate(ctx, tripID, date)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewDatabaseError(err)
	}

	trip, err := r.trips.GetTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Trip", tripID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if trip.StartDate == nil || trip.EndDate == nil {
		log.Debugw("Trip has no date range, skipping day placement", "tripID", tripID)
		return nil, nil
	}
	start := TruncateToDay(*trip.StartDate)
	end := TruncateToDay(*trip.EndDate)
	if date.Before(start) || date.After(end) {
		log.Debugw("Date outside trip range, skipping day placement",
			"tripID", tripID, "date", date.Format(calendarLayout))
		return nil, nil
	}

	dayNumber := DaysBetween(start, date) + 1
	if dayNumber < 1 {
		dayNumber = 1
	}

	// Partial or hand-edited itineraries can have day numbers drifted out of
	// sync with dates; probe upward until the number is free.
	used, err := r.days.ListDayNumbers(ctx, tripID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	usedSet := make(map[int]bool, len(used))
	for _, n := range used {
		usedSet[n] = true
	}
	for usedSet[dayNumber] {
		dayNumber++
	}

	day = &types.ItineraryDay{
		ID:                     uuid.New().String(),
		TripID:                 tripID,
		DayNumber:              dayNumber,
		Date:                   &date,
		AccommodationOptions:   []types.AccommodationOption{},
		Activities:             []types.DayActivity{},
		TransportationSegments: []types.SegmentRef{},
	}
	if err := r.days.InsertDay(ctx, day); err != nil {
		if errors.Is(err, store.ErrDuplicateDay) {
			log.Infow("Concurrent day creation detected, re-fetching",
				"tripID", tripID, "date", date.Format(calendarLayout))
			existing, ferr := r.days.GetDayByDate(ctx, tripID, date)
			if ferr != nil {
				return nil, apperrors.NewDatabaseError(ferr)
			}
			return existing, nil
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return day, nil
}
