package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransportMode is the kind of transportation segment group.
type TransportMode string

const (
	ModeFlight    TransportMode = "flight"
	ModeTrain     TransportMode = "train"
	ModeBus       TransportMode = "bus"
	ModeFerry     TransportMode = "ferry"
	ModeTaxi      TransportMode = "taxi"
	ModeCarRental TransportMode = "car_rental"
	ModeOther     TransportMode = "other"
)

// Money carries an amount in a named currency. The engine never converts or
// combines amounts; decimal keeps what was extracted exact.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// BookingInfo holds the confirmation-level fields of a transportation booking.
type BookingInfo struct {
	OrderNumber string `json:"orderNumber,omitempty"`
	CarrierName string `json:"carrierName,omitempty"`
	Baggage     string `json:"baggage,omitempty"`
}

// TransportEndpoint is one end of a segment, optionally with a carrier code
// (IATA, station code).
type TransportEndpoint struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Segment is one leg of a transportation booking. Departure and Arrival are
// timestamps as extracted; the day linker uses only the calendar-date part of
// Departure.
type Segment struct {
	ID           string            `json:"id"`
	From         TransportEndpoint `json:"from"`
	To           TransportEndpoint `json:"to"`
	Departure    string            `json:"departure,omitempty"`
	Arrival      string            `json:"arrival,omitempty"`
	VesselNumber string            `json:"vesselNumber,omitempty"`
}

// Transportation is a booked (or suggested) transport itinerary: an ordered
// list of segments under one booking. Segment lists are replaced wholesale on
// merge, never interleaved.
type Transportation struct {
	ID          string        `json:"id"`
	TripID      string        `json:"tripId"`
	Mode        TransportMode `json:"mode"`
	Status      EntityStatus  `json:"status"`
	Cost        Money         `json:"cost"`
	Booking     BookingInfo   `json:"booking"`
	Segments    []Segment     `json:"segments"`
	SourceRefs  SourceRefs    `json:"sourceRefs"`
	IsCancelled bool          `json:"isCancelled"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ParseTransportMode maps a free-form mode tag to a known mode, defaulting to
// ModeOther.
func ParseTransportMode(s string) TransportMode {
	switch TransportMode(s) {
	case ModeFlight, ModeTrain, ModeBus, ModeFerry, ModeTaxi, ModeCarRental:
		return TransportMode(s)
	default:
		return ModeOther
	}
}
