package types

// IngestResult is the structured response of an ingestion endpoint. Callers
// always learn which entities were created vs matched, so provenance stays
// inspectable even when reconciliation partially fails.
type IngestResult struct {
	Status         InboundStatus  `json:"status,omitempty"`
	Duplicate      bool           `json:"duplicate,omitempty"`
	TripID         *string        `json:"tripId,omitempty"`
	LinkedEntities []LinkedEntity `json:"linkedEntities"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
