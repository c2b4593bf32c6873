package types

import "time"

type TripStatus string

const (
	TripStatusPlanning  TripStatus = "PLANNING"
	TripStatusActive    TripStatus = "ACTIVE"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// Trip is owned by the user and read-only to the reconciliation engine,
// which only consults it for date-range checks and country matching.
type Trip struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Countries []string   `json:"countries"`
	Currency  string     `json:"currency"`
	Status    TripStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsValid checks if the status is a known trip status.
func (ts TripStatus) IsValid() bool {
	switch ts {
	case TripStatusPlanning, TripStatusActive, TripStatusCompleted, TripStatusCancelled:
		return true
	default:
		return false
	}
}

func (ts TripStatus) String() string {
	return string(ts)
}
