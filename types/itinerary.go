package types

import "time"

// ScheduleState distinguishes fixed-time activities from ones parked on a day
// without a concrete hour.
type ScheduleState string

const (
	SchedulePotential ScheduleState = "potential"
	ScheduleScheduled ScheduleState = "scheduled"
)

// ActivityType is what a day activity entry points at.
type ActivityType string

const (
	ActivityPOI        ActivityType = "poi"
	ActivityCollection ActivityType = "collection"
)

// TimeWindow is the scheduled slot of an activity within a day.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// AccommodationOption is a candidate place to sleep on a given night.
type AccommodationOption struct {
	POIID      string `json:"poiId"`
	IsSelected bool   `json:"isSelected"`
}

// DayActivity is one entry in a day's ordered activity list.
type DayActivity struct {
	ID            string        `json:"id"`
	Type          ActivityType  `json:"type"`
	ScheduleState ScheduleState `json:"scheduleState"`
	TimeWindow    *TimeWindow   `json:"timeWindow,omitempty"`
}

// SegmentRef links a day to one segment of a transportation booking.
type SegmentRef struct {
	TransportationID string `json:"transportationId"`
	SegmentID        string `json:"segmentId"`
	IsSelected       bool   `json:"isSelected"`
}

// ItineraryDay is one slot of a trip's itinerary. At most one day exists per
// (tripId, date); dayNumber is 1-based and unique within a trip. Days may
// exist without a date when the trip slot is undated.
type ItineraryDay struct {
	ID                     string                `json:"id"`
	TripID                 string                `json:"tripId"`
	DayNumber              int                   `json:"dayNumber"`
	Date                   *time.Time            `json:"date,omitempty"`
	LocationContext        string                `json:"locationContext,omitempty"`
	AccommodationOptions   []AccommodationOption `json:"accommodationOptions"`
	Activities             []DayActivity         `json:"activities"`
	TransportationSegments []SegmentRef          `json:"transportationSegments"`
	CreatedAt              time.Time             `json:"createdAt"`
	UpdatedAt              time.Time             `json:"updatedAt"`
}

// HasAccommodation reports whether the day already references the POI.
func (d *ItineraryDay) HasAccommodation(poiID string) bool {
	for _, opt := range d.AccommodationOptions {
		if opt.POIID == poiID {
			return true
		}
	}
	return false
}

// HasSegment reports whether the day already references the segment pair.
func (d *ItineraryDay) HasSegment(transportationID, segmentID string) bool {
	for _, ref := range d.TransportationSegments {
		if ref.TransportationID == transportationID && ref.SegmentID == segmentID {
			return true
		}
	}
	return false
}

// ActivityIndex returns the position of the activity with the given id, or -1.
func (d *ItineraryDay) ActivityIndex(id string) int {
	for i, a := range d.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}
