package types

import "time"

// Detail document keys shared between the reconciler and the day linker.
// The details column is a schema-flexible JSONB document so that partial
// updates from later emails merge without per-field plumbing.
const (
	DetailOrderNumber = "orderNumber"
	DetailCheckIn     = "checkIn"
	DetailCheckOut    = "checkOut"
	DetailBookings    = "bookings"
	DetailCost        = "cost"
	DetailNotes       = "notes"
)

// POI is a point of interest owned by a trip: an accommodation, eatery,
// attraction or service. Never hard-deleted by the engine; cancellation is a
// flag.
type POI struct {
	ID          string         `json:"id"`
	TripID      string         `json:"tripId"`
	Category    EntityCategory `json:"category"`
	SubCategory string         `json:"subCategory,omitempty"`
	Name        string         `json:"name"`
	Status      EntityStatus   `json:"status"`
	Location    Location       `json:"location"`
	Details     map[string]any `json:"details"`
	SourceRefs  SourceRefs     `json:"sourceRefs"`
	IsCancelled bool           `json:"isCancelled"`
	IsPaid      bool           `json:"isPaid"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// OrderNumber returns the business key stored in the details document, if any.
func (p *POI) OrderNumber() string {
	return detailString(p.Details, DetailOrderNumber)
}

// StayRange returns the accommodation check-in and check-out dates as stored
// (calendar-date strings). Either may be empty.
func (p *POI) StayRange() (checkIn, checkOut string) {
	return detailString(p.Details, DetailCheckIn), detailString(p.Details, DetailCheckOut)
}

// BookingSlot is one timed reservation of an eatery or attraction.
type BookingSlot struct {
	Date string
	Time string
}

// IsPotential reports whether the slot has no fixed hour yet.
func (s BookingSlot) IsPotential() bool {
	return s.Time == ""
}

// BookingSlots extracts the reservation slots from the details document.
// Entries without a date are dropped; they cannot be placed on a day.
func (p *POI) BookingSlots() []BookingSlot {
	raw, ok := p.Details[DetailBookings].([]any)
	if !ok {
		return nil
	}
	var slots []BookingSlot
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		slot := BookingSlot{
			Date: detailString(m, "date"),
			Time: detailString(m, "time"),
		}
		if slot.Date == "" {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

func detailString(doc map[string]any, key string) string {
	if doc == nil {
		return ""
	}
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}
