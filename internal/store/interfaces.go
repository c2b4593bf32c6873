// Package store defines the persistence contracts consumed by the
// reconciliation engine. The datastore offers per-row reads and updates only;
// no cross-row transactions are assumed. Array-valued provenance fields are
// appended with single-statement operations to avoid read-modify-write races.
package store

import (
	"context"
	"time"

	"github.com/TripStitch/tripstitch-backend/types"
)

// UserStore resolves webhook tokens to users.
type UserStore interface {
	// ResolveWebhookToken returns the user id owning the opaque token, or
	// ErrNotFound for an unknown token.
	ResolveWebhookToken(ctx context.Context, token string) (string, error)
}

// TripStore provides read access to trips. The engine never mutates trips.
type TripStore interface {
	GetTrip(ctx context.Context, id string) (*types.Trip, error)
	ListTripsByUser(ctx context.Context, userID string) ([]*types.Trip, error)
}

// RefField names a source-ref array inside an entity's sourceRefs document.
type RefField string

const (
	RefEmails          RefField = "emailIds"
	RefRecommendations RefField = "recommendationIds"
)

// POIStore handles point-of-interest persistence.
type POIStore interface {
	CreatePOI(ctx context.Context, poi *types.POI) error
	GetPOI(ctx context.Context, id string) (*types.POI, error)
	// UpdatePOI writes the mutable reconciled fields (name, sub-category,
	// status, location, details, cancellation and payment flags). It does not
	// touch sourceRefs; use AppendPOISourceRef for that.
	UpdatePOI(ctx context.Context, poi *types.POI) error
	FindPOIByOrderNumber(ctx context.Context, tripID string, category types.EntityCategory, orderNumber string) (*types.POI, error)
	ListPOIsByCategory(ctx context.Context, tripID string, category types.EntityCategory) ([]*types.POI, error)
	// AppendPOISourceRef appends refID to the named array unless already
	// present, as a single atomic statement.
	AppendPOISourceRef(ctx context.Context, id string, field RefField, refID string) error
	SetPOICancelled(ctx context.Context, id string) error
}

// TransportationStore handles transportation persistence.
type TransportationStore interface {
	CreateTransportation(ctx context.Context, tr *types.Transportation) error
	GetTransportation(ctx context.Context, id string) (*types.Transportation, error)
	UpdateTransportation(ctx context.Context, tr *types.Transportation) error
	FindTransportationByOrderNumber(ctx context.Context, tripID, orderNumber string) (*types.Transportation, error)
	ListTransportationsByTrip(ctx context.Context, tripID string) ([]*types.Transportation, error)
	AppendTransportationSourceRef(ctx context.Context, id string, field RefField, refID string) error
	SetTransportationCancelled(ctx context.Context, id string) error
}

// ContactStore handles trip contact persistence.
type ContactStore interface {
	CreateContact(ctx context.Context, contact *types.Contact) error
	UpdateContact(ctx context.Context, contact *types.Contact) error
	ListContactsByTrip(ctx context.Context, tripID string) ([]*types.Contact, error)
	AppendContactSourceRef(ctx context.Context, id string, field RefField, refID string) error
}

// ItineraryStore handles itinerary-day persistence. InsertDay surfaces the
// (trip_id, date) unique constraint as ErrDuplicateDay.
type ItineraryStore interface {
	GetDayByDate(ctx context.Context, tripID string, date time.Time) (*types.ItineraryDay, error)
	ListDays(ctx context.Context, tripID string) ([]*types.ItineraryDay, error)
	ListDayNumbers(ctx context.Context, tripID string) ([]int, error)
	InsertDay(ctx context.Context, day *types.ItineraryDay) error
	// UpdateDayLists writes the day's accommodation, activity and segment
	// lists.
	UpdateDayLists(ctx context.Context, day *types.ItineraryDay) error
}

// InboundStore persists the inbound event records that carry the idempotency
// keys and the per-event audit trail.
type InboundStore interface {
	GetEmail(ctx context.Context, id string) (*types.InboundEmail, error)
	CreateEmail(ctx context.Context, email *types.InboundEmail) error
	UpdateEmail(ctx context.Context, email *types.InboundEmail) error

	GetRecommendation(ctx context.Context, id string) (*types.InboundRecommendation, error)
	CreateRecommendation(ctx context.Context, rec *types.InboundRecommendation) error
	UpdateRecommendation(ctx context.Context, rec *types.InboundRecommendation) error
}
