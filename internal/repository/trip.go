package repository

import (
	"context"

	"carpool/internal/domain"
)

// TripFilter selects which trips a listing returns.
type TripFilter struct {
	// DriverID, when set, matches trips owned by this driver.
	DriverID string

	// RiderID, when set, matches trips where this rider appears in any
	// request list. With AcceptedOnly it matches accepted seats only.
	RiderID      string
	AcceptedOnly bool
}

// TripStore defines the persistence operations for trips.
//
// Trips are versioned: every read returns the record's current revision,
// and ConditionalUpdate applies only if that revision is still current.
// Callers implement read-decide-write loops on top of this contract; the
// store never merges concurrent writes.
type TripStore interface {
	// Create persists a new trip at revision 1.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip and its current revision.
	GetByID(ctx context.Context, id string) (*domain.Trip, int64, error)

	// List retrieves trips matching the filter. An empty filter matches
	// all trips. An empty result is not an error.
	List(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// ConditionalUpdate writes all mutable fields of trip, provided the
	// stored revision still equals revision. Returns ErrRevisionMismatch
	// if another writer got there first, ErrNotFound if the trip is gone.
	ConditionalUpdate(ctx context.Context, trip *domain.Trip, revision int64) error

	// Delete removes a trip. Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}
