package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// Querier is the statement-execution surface the stores need. Both
// *sql.DB and *sql.Tx provide it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// TripStore is a PostgreSQL implementation of repository.TripStore.
//
// The three request lists are stored as JSONB columns and always written
// together with the capacity counters in a single statement, so a trip row
// can never hold a partially applied reservation decision. The revision
// column backs the optimistic conditional update.
type TripStore struct {
	q Querier
}

// NewTripStore creates a new PostgreSQL trip store.
func NewTripStore(db *sql.DB) *TripStore {
	return &TripStore{q: db}
}

const tripColumns = `id, driver_id, start_point, end_point, sector, departure_time, date,
		price, capacity, availability, reservations_count, state, car_photo_url,
		pending_requests, accepted_requests, rejected_requests`

// Create persists a new trip at revision 1.
func (s *TripStore) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `, revision)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 1)
	`

	pending, accepted, rejected, err := marshalRequestLists(trip)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx, query,
		trip.ID,
		trip.DriverID,
		trip.Route.StartPoint,
		trip.Route.EndPoint,
		trip.Route.Sector,
		trip.Route.DepartureTime,
		trip.Route.Date,
		trip.Price,
		trip.Capacity,
		trip.Availability,
		trip.ReservationsCount,
		int(trip.State),
		trip.CarPhotoURL,
		pending,
		accepted,
		rejected,
	)

	return err
}

// GetByID retrieves a trip and its current revision.
func (s *TripStore) GetByID(ctx context.Context, id string) (*domain.Trip, int64, error) {
	query := `SELECT ` + tripColumns + `, revision FROM trips WHERE id = $1`

	trip, revision, err := scanTrip(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, repository.ErrNotFound
		}
		return nil, 0, err
	}

	return trip, revision, nil
}

// List retrieves trips matching the filter.
func (s *TripStore) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + `, revision FROM trips`
	var args []any

	switch {
	case filter.DriverID != "":
		query += ` WHERE driver_id = $1`
		args = append(args, filter.DriverID)

	case filter.RiderID != "":
		member, err := riderMember(filter.RiderID)
		if err != nil {
			return nil, err
		}
		if filter.AcceptedOnly {
			query += ` WHERE accepted_requests @> $1`
		} else {
			query += ` WHERE pending_requests @> $1 OR accepted_requests @> $1 OR rejected_requests @> $1`
		}
		args = append(args, member)
	}

	query += ` ORDER BY date, departure_time`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, _, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// ConditionalUpdate writes the trip's mutable fields, provided the stored
// revision still equals revision.
func (s *TripStore) ConditionalUpdate(ctx context.Context, trip *domain.Trip, revision int64) error {
	query := `
		UPDATE trips
		SET availability = $1, reservations_count = $2, state = $3,
			pending_requests = $4, accepted_requests = $5, rejected_requests = $6,
			revision = revision + 1
		WHERE id = $7 AND revision = $8
	`

	pending, accepted, rejected, err := marshalRequestLists(trip)
	if err != nil {
		return err
	}

	result, err := s.q.ExecContext(ctx, query,
		trip.Availability,
		trip.ReservationsCount,
		int(trip.State),
		pending,
		accepted,
		rejected,
		trip.ID,
		revision,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Either the trip is gone or another writer bumped the revision.
		var exists bool
		if err := s.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1)`, trip.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrRevisionMismatch
	}

	return nil
}

// Delete removes a trip.
func (s *TripStore) Delete(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// riderMember builds the JSONB containment probe for rider-filtered
// listings. Only the rider key goes into the probe object: @> requires
// every pair of the probe to be present with an equal value, so carrying
// the location field would miss entries with a real pickup point.
func riderMember(riderID string) ([]byte, error) {
	return json.Marshal([]map[string]string{{"rider_id": riderID}})
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (*domain.Trip, int64, error) {
	var trip domain.Trip
	var state int
	var revision int64
	var pending, accepted, rejected []byte

	err := row.Scan(
		&trip.ID,
		&trip.DriverID,
		&trip.Route.StartPoint,
		&trip.Route.EndPoint,
		&trip.Route.Sector,
		&trip.Route.DepartureTime,
		&trip.Route.Date,
		&trip.Price,
		&trip.Capacity,
		&trip.Availability,
		&trip.ReservationsCount,
		&state,
		&trip.CarPhotoURL,
		&pending,
		&accepted,
		&rejected,
		&revision,
	)
	if err != nil {
		return nil, 0, err
	}

	trip.State = domain.TripState(state)

	if err := json.Unmarshal(pending, &trip.PendingRequests); err != nil {
		return nil, 0, fmt.Errorf("decode pending_requests: %w", err)
	}
	if err := json.Unmarshal(accepted, &trip.AcceptedRequests); err != nil {
		return nil, 0, fmt.Errorf("decode accepted_requests: %w", err)
	}
	if err := json.Unmarshal(rejected, &trip.RejectedRequests); err != nil {
		return nil, 0, fmt.Errorf("decode rejected_requests: %w", err)
	}

	return &trip, revision, nil
}

func marshalRequestLists(trip *domain.Trip) (pending, accepted, rejected []byte, err error) {
	if pending, err = json.Marshal(emptyIfNil(trip.PendingRequests)); err != nil {
		return nil, nil, nil, err
	}
	if accepted, err = json.Marshal(emptyIfNil(trip.AcceptedRequests)); err != nil {
		return nil, nil, nil, err
	}
	if rejected, err = json.Marshal(emptyIfNil(trip.RejectedRequests)); err != nil {
		return nil, nil, nil, err
	}
	return pending, accepted, rejected, nil
}

// emptyIfNil keeps nil slices from serializing as JSON null.
func emptyIfNil(list []domain.ReservationRequest) []domain.ReservationRequest {
	if list == nil {
		return []domain.ReservationRequest{}
	}
	return list
}

// Ensure TripStore implements repository.TripStore.
var _ repository.TripStore = (*TripStore)(nil)
