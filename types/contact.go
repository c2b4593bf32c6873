package types

import "time"

// Contact is a person or organization extracted alongside recommendations
// (a guide, a host, a booking agent). Contacts carry no dates and are never
// placed on itinerary days.
type Contact struct {
	ID         string     `json:"id"`
	TripID     string     `json:"tripId"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	SourceRefs SourceRefs `json:"sourceRefs"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
