package store

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateDay is returned when inserting an itinerary day that
	// collides with the unique (trip_id, date) constraint. Callers treat it
	// as "already exists, re-fetch".
	ErrDuplicateDay = errors.New("itinerary day already exists for date")
)
