package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// CapacityProvider resolves a driver's vehicle seat capacity.
// Implemented by CarService; consulted once at trip creation.
type CapacityProvider interface {
	CapacityFor(ctx context.Context, driverID string) (*domain.Car, error)
}

// TripOptions tunes the lifecycle engine's behavior.
type TripOptions struct {
	// MaxUpdateAttempts bounds the optimistic read-decide-write retry
	// loop before an update fails with ErrContention.
	MaxUpdateAttempts int

	// ClosedBlocksRequests makes RequestReservation fail with
	// ErrTripNotOpen on trips that are not in the open state.
	ClosedBlocksRequests bool
}

const defaultMaxUpdateAttempts = 5

// TripService enforces the trip state machine, the reservation protocol
// and the capacity invariants on top of the trip store.
//
// It holds no trip state between calls: every mutation re-reads the
// current record and writes it back conditioned on the revision being
// unchanged, so precondition checks always apply to the state that is
// actually persisted. A stale read can never overbook a trip.
type TripService struct {
	tripStore repository.TripStore
	capacity  CapacityProvider
	cache     redis.TripCacheInterface
	opts      TripOptions
}

// NewTripService creates a new TripService. cache may be nil.
func NewTripService(tripStore repository.TripStore, capacity CapacityProvider, cache redis.TripCacheInterface, opts TripOptions) *TripService {
	if opts.MaxUpdateAttempts <= 0 {
		opts.MaxUpdateAttempts = defaultMaxUpdateAttempts
	}
	return &TripService{
		tripStore: tripStore,
		capacity:  capacity,
		cache:     cache,
		opts:      opts,
	}
}

// CreateTripRequest contains the parameters for publishing a trip.
type CreateTripRequest struct {
	DriverID string
	Route    domain.Route
	Price    float64
	Capacity int
}

// CreateTrip publishes a new trip for a driver. The driver must have a
// registered vehicle, and the requested capacity may not exceed the
// vehicle's seat count.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if req.Route.StartPoint == "" || req.Route.EndPoint == "" || req.Route.Sector == "" ||
		req.Route.DepartureTime == "" || req.Route.Date == "" {
		return nil, ErrInvalidRoute
	}

	car, err := s.capacity.CapacityFor(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	if req.Capacity > car.Capacity {
		return nil, ErrCapacityExceedsVehicle
	}

	trip := &domain.Trip{
		ID:               uuid.New().String(),
		DriverID:         req.DriverID,
		Route:            req.Route,
		Price:            req.Price,
		Capacity:         req.Capacity,
		Availability:     req.Capacity,
		State:            domain.TripStateOpen,
		CarPhotoURL:      car.CarPhotoURL,
		PendingRequests:  []domain.ReservationRequest{},
		AcceptedRequests: []domain.ReservationRequest{},
		RejectedRequests: []domain.ReservationRequest{},
	}

	if err := s.tripStore.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID, going through the read cache.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	if s.cache != nil {
		if trip, err := s.cache.Get(ctx, tripID); err == nil && trip != nil {
			return trip, nil
		}
	}

	trip, _, err := s.tripStore.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, trip)
	}

	return trip, nil
}

// ListTrips retrieves all trips matching the filter. An empty match is an
// empty slice, not an error.
func (s *TripService) ListTrips(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	return s.tripStore.List(ctx, filter)
}

// RequestReservation appends a rider's seat request to the trip's pending
// list. Availability is not touched until the driver accepts.
func (s *TripService) RequestReservation(ctx context.Context, tripID, riderID, location string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}

	return s.updateTrip(ctx, tripID, func(trip *domain.Trip) error {
		if s.opts.ClosedBlocksRequests && trip.State != domain.TripStateOpen {
			return ErrTripNotOpen
		}
		if trip.Availability <= 0 {
			return ErrTripFull
		}
		if trip.HasRider(riderID) {
			return ErrDuplicateRequest
		}

		trip.PendingRequests = append(trip.PendingRequests, domain.ReservationRequest{
			RiderID:  riderID,
			Location: location,
		})
		return nil
	})
}

// Decision is the driver's verdict on a pending reservation request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// DecideReservation moves a rider's pending request to the accepted or
// rejected list. Accepting consumes one seat; if the last seat was taken
// by a concurrent accept, the call fails with ErrTripFull and the request
// stays pending for the driver to re-decide.
func (s *TripService) DecideReservation(ctx context.Context, tripID, driverID, riderID string, decision Decision) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, ErrInvalidDecision
	}

	return s.updateTrip(ctx, tripID, func(trip *domain.Trip) error {
		if trip.DriverID != driverID {
			return ErrNotAuthorized
		}

		i := domain.FindRequest(trip.PendingRequests, riderID)
		if i < 0 {
			return ErrRequestNotFound
		}

		if decision == DecisionAccept && trip.Availability <= 0 {
			return ErrTripFull
		}

		request := trip.PendingRequests[i]
		trip.PendingRequests = append(trip.PendingRequests[:i], trip.PendingRequests[i+1:]...)

		if decision == DecisionAccept {
			trip.AcceptedRequests = append(trip.AcceptedRequests, request)
			trip.Availability--
			trip.ReservationsCount++
		} else {
			trip.RejectedRequests = append(trip.RejectedRequests, request)
		}
		return nil
	})
}

// CancelAcceptedReservation releases a rider's accepted seat, restoring
// one unit of availability.
func (s *TripService) CancelAcceptedReservation(ctx context.Context, tripID, riderID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}

	return s.updateTrip(ctx, tripID, func(trip *domain.Trip) error {
		i := domain.FindRequest(trip.AcceptedRequests, riderID)
		if i < 0 {
			return ErrRequestNotFound
		}

		trip.AcceptedRequests = append(trip.AcceptedRequests[:i], trip.AcceptedRequests[i+1:]...)
		trip.Availability++
		trip.ReservationsCount--
		return nil
	})
}

// SetTripState updates a trip's state. Owner only.
func (s *TripService) SetTripState(ctx context.Context, tripID, driverID string, newState domain.TripState) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	return s.updateTrip(ctx, tripID, func(trip *domain.Trip) error {
		if trip.DriverID != driverID {
			return ErrNotAuthorized
		}
		trip.State = newState
		return nil
	})
}

// DeleteTrip removes a trip. Owner only.
func (s *TripService) DeleteTrip(ctx context.Context, tripID, driverID string) error {
	if tripID == "" {
		return ErrInvalidTripID
	}
	if driverID == "" {
		return ErrInvalidDriverID
	}

	trip, _, err := s.tripStore.GetByID(ctx, tripID)
	if err != nil {
		return err
	}

	if trip.DriverID != driverID {
		return ErrNotAuthorized
	}

	if err := s.tripStore.Delete(ctx, tripID); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, tripID)
	}

	return nil
}

// updateTrip runs the optimistic read-decide-write cycle: load the trip
// with its revision, apply mutate to the in-memory copy, and write back
// conditioned on the revision. A lost race re-runs the whole cycle, so
// every precondition is re-checked against fresh state; the attempt
// budget turns a persistent race into ErrContention.
func (s *TripService) updateTrip(ctx context.Context, tripID string, mutate func(*domain.Trip) error) (*domain.Trip, error) {
	for attempt := 0; attempt < s.opts.MaxUpdateAttempts; attempt++ {
		trip, revision, err := s.tripStore.GetByID(ctx, tripID)
		if err != nil {
			return nil, err
		}

		if err := mutate(trip); err != nil {
			return nil, err
		}

		err = s.tripStore.ConditionalUpdate(ctx, trip, revision)
		if err == nil {
			if s.cache != nil {
				_ = s.cache.Invalidate(ctx, tripID)
			}
			return trip, nil
		}

		if !errors.Is(err, repository.ErrRevisionMismatch) {
			return nil, err
		}
	}

	return nil, ErrContention
}
