package types

import "time"

// EventKind identifies the inbound source pipeline.
type EventKind string

const (
	KindParsedEmail    EventKind = "parsed-email"
	KindRecommendation EventKind = "recommendation-extraction"
)

// EventAction is carried by email-sourced events. Create/update is implicit;
// only cancellations are explicit.
type EventAction string

const (
	ActionUpsert EventAction = ""
	ActionCancel EventAction = "cancel"
)

// GeoLevel is one entry of the ordered geographic hierarchy attached to an
// extraction (e.g. country > region > city). Used to infer city/country when
// the payload has no explicit location.
type GeoLevel struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// LinkedEntityType identifies what a LinkedEntity points at.
type LinkedEntityType string

const (
	LinkedPOI            LinkedEntityType = "poi"
	LinkedTransportation LinkedEntityType = "transportation"
	LinkedContact        LinkedEntityType = "contact"
)

// LinkedEntity is the audit record of what reconciling one event did: which
// entity was touched and whether it matched an existing one or was created.
type LinkedEntity struct {
	EntityType      LinkedEntityType `json:"entityType"`
	EntityID        string           `json:"entityId"`
	Description     string           `json:"description"`
	MatchedExisting bool             `json:"matchedExisting"`
}

// InboundStatus tracks an inbound record's lifecycle: pending until a trip is
// known, linked once reconciled.
type InboundStatus string

const (
	InboundPending InboundStatus = "pending"
	InboundLinked  InboundStatus = "linked"
)

// InboundEmail is the persisted record of one parsed-email delivery. Its ID is
// the caller-assigned idempotency key.
type InboundEmail struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	TripID         *string        `json:"tripId,omitempty"`
	Action         EventAction    `json:"action,omitempty"`
	BusinessKey    string         `json:"businessKey,omitempty"`
	TypeTag        string         `json:"category"`
	Payload        map[string]any `json:"categoryDetails"`
	GeoHierarchy   []GeoLevel     `json:"geoHierarchy,omitempty"`
	Status         InboundStatus  `json:"status"`
	LinkedEntities []LinkedEntity `json:"linkedEntities"`
	ReceivedAt     time.Time      `json:"receivedAt"`
}

// ExtractedItem is one venue/activity recommendation inside an extraction
// analysis.
type ExtractedItem struct {
	TypeTag   string         `json:"type"`
	Name      string         `json:"name"`
	Sentiment string         `json:"sentiment,omitempty"`
	Location  *Location      `json:"location,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// ExtractedContact is a contact found inside an extraction analysis.
type ExtractedContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// RecommendationAnalysis is the structured result of the extraction pipeline.
type RecommendationAnalysis struct {
	SitesHierarchy []GeoLevel         `json:"sitesHierarchy"`
	ExtractedItems []ExtractedItem    `json:"extractedItems"`
	Contacts       []ExtractedContact `json:"contacts"`
}

// InboundRecommendation is the persisted record of one recommendation
// delivery. Its ID is the caller-assigned idempotency key.
type InboundRecommendation struct {
	ID             string                 `json:"recommendationId"`
	UserID         string                 `json:"userId"`
	TripID         *string                `json:"tripId,omitempty"`
	Timestamp      string                 `json:"timestamp"`
	SourceURL      string                 `json:"sourceUrl"`
	SourceTitle    string                 `json:"sourceTitle,omitempty"`
	SourceImage    string                 `json:"sourceImage,omitempty"`
	Analysis       RecommendationAnalysis `json:"analysis"`
	Status         InboundStatus          `json:"status"`
	LinkedEntities []LinkedEntity         `json:"linkedEntities"`
	ReceivedAt     time.Time              `json:"receivedAt"`
}

// SourceEvent is the normalized envelope the reconciler consumes. Handlers
// build one per email, and one per extracted item or contact of a
// recommendation.
type SourceEvent struct {
	Kind         EventKind
	ProvenanceID string
	Action       EventAction
	BusinessKey  string
	TypeTag      string
	Name         string
	Payload      map[string]any
	Location     *Location
	GeoHierarchy []GeoLevel
}
