package itinerary

import (
	"context"

	apperrors "github.com/TripStitch/tripstitch-backend/errors"
	"github.com/TripStitch/tripstitch-backend/internal/store"
	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/TripStitch/tripstitch-backend/types"
)

// Linker places entities onto the itinerary days implied by their date fields
// and removes them again on cancellation or before a relink. Presence checks
// by id pair keep repeated linking idempotent.
type Linker struct {
	resolver *Resolver
	days     store.ItineraryStore
}

// NewLinker creates a day linker.
func NewLinker(resolver *Resolver, days store.ItineraryStore) *Linker {
	return &Linker{resolver: resolver, days: days}
}

// LinkPOI adds the POI to the days its date fields imply. Accommodation spans
// every night from check-in (inclusive) to check-out (exclusive); when only
// the check-in date is known yet, that single night is placed. Timed bookings
// land as day activities; potential slots get no time window. POIs without
// date fields are not placed.
func (l *Linker) LinkPOI(ctx context.Context, poi *types.POI) error {
	switch poi.Category {
	case types.CategoryAccommodation:
		return l.linkStay(ctx, poi)
	case types.CategoryEatery, types.CategoryAttraction:
		return l.linkBookings(ctx, poi)
	default:
		return nil
	}
}

func (l *Linker) linkStay(ctx context.Context, poi *types.POI) error {
	checkInStr, checkOutStr := poi.StayRange()
	checkIn, ok := ParseCalendarDate(checkInStr)
	if !ok {
		return nil
	}
	checkOut, hasOut := ParseCalendarDate(checkOutStr)
	if !hasOut || !checkOut.After(checkIn) {
		checkOut = checkIn.AddDate(0, 0, 1)
	}

	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		day, err := l.resolver.EnsureDay(ctx, poi.TripID, d)
		if err != nil {
			return err
		}
		if day == nil {
			continue
		}
		if day.HasAccommodation(poi.ID) {
			continue
		}
		day.AccommodationOptions = append(day.AccommodationOptions, types.AccommodationOption{
			POIID:      poi.ID,
			IsSelected: true,
		})
		if err := l.days.UpdateDayLists(ctx, day); err != nil {
			return apperrors.NewDatabaseError(err)
		}
	}
	return nil
}

func (l *Linker) linkBookings(ctx context.Context, poi *types.POI) error {
	for _, slot := range poi.BookingSlots() {
		date, ok := ParseCalendarDate(slot.Date)
		if !ok {
			continue
		}
		day, err := l.resolver.EnsureDay(ctx, poi.TripID, date)
		if err != nil {
			return err
		}
		if day == nil {
			continue
		}

		activity := types.DayActivity{
			ID:            poi.ID,
			Type:          types.ActivityPOI,
			ScheduleState: types.ScheduleScheduled,
		}
		if slot.IsPotential() {
			activity.ScheduleState = types.SchedulePotential
		} else {
			activity.TimeWindow = &types.TimeWindow{Start: slot.Time}
		}

		if idx := day.ActivityIndex(poi.ID); idx >= 0 {
			day.Activities[idx] = activity
		} else {
			day.Activities = append(day.Activities, activity)
		}
		if err := l.days.UpdateDayLists(ctx, day); err != nil {
			return apperrors.NewDatabaseError(err)
		}
	}
	return nil
}

// UnlinkPOI removes the POI from every day's lists. The POI record itself is
// untouched.
func (l *Linker) UnlinkPOI(ctx context.Context, tripID, poiID string) error {
	days, err := l.days.ListDays(ctx, tripID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	for _, day := range days {
		changed := false

		options := day.AccommodationOptions[:0]
		for _, opt := range day.AccommodationOptions {
			if opt.POIID == poiID {
				changed = true
				continue
			}
			options = append(options, opt)
		}
		day.AccommodationOptions = options

		activities := day.Activities[:0]
		for _, act := range day.Activities {
			if act.ID == poiID && act.Type == types.ActivityPOI {
				changed = true
				continue
			}
			activities = append(activities, act)
		}
		day.Activities = activities

		if changed {
			if err := l.days.UpdateDayLists(ctx, day); err != nil {
				return apperrors.NewDatabaseError(err)
			}
		}
	}
	return nil
}

// LinkTransportation adds each segment with a departure timestamp to the day
// of its departure date.
func (l *Linker) LinkTransportation(ctx context.Context, tr *types.Transportation) error {
	log := logger.GetLogger()
	for _, seg := range tr.Segments {
		if seg.Departure == "" {
			continue
		}
		date, ok := ParseCalendarDate(seg.Departure)
		if !ok {
			log.Warnw("Unparseable segment departure, skipping placement",
				"transportationID", tr.ID, "segmentID", seg.ID, "departure", seg.Departure)
			continue
		}
		day, err := l.resolver.EnsureDay(ctx, tr.TripID, date)
		if err != nil {
			return err
		}
		if day == nil {
			continue
		}
		if day.HasSegment(tr.ID, seg.ID) {
			continue
		}
		day.TransportationSegments = append(day.TransportationSegments, types.SegmentRef{
			TransportationID: tr.ID,
			SegmentID:        seg.ID,
			IsSelected:       true,
		})
		if err := l.days.UpdateDayLists(ctx, day); err != nil {
			return apperrors.NewDatabaseError(err)
		}
	}
	return nil
}

// UnlinkTransportation removes all of the booking's segment references across
// the trip's days.
func (l *Linker) UnlinkTransportation(ctx context.Context, tripID, transportationID string) error {
	days, err := l.days.ListDays(ctx, tripID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	for _, day := range days {
		changed := false
		refs := day.TransportationSegments[:0]
		for _, ref := range day.TransportationSegments {
			if ref.TransportationID == transportationID {
				changed = true
				continue
			}
			refs = append(refs, ref)
		}
		day.TransportationSegments = refs

		if changed {
			if err := l.days.UpdateDayLists(ctx, day); err != nil {
				return apperrors.NewDatabaseError(err)
			}
		}
	}
	return nil
}
