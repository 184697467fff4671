package service

import "errors"

var (
	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidRoute is returned when a route field is empty.
	ErrInvalidRoute = errors.New("route fields must not be empty")

	// ErrInvalidPrice is returned when price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidCapacity is returned when capacity is not a positive integer.
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")

	// ErrInvalidCarDetails is returned when a car field is empty.
	ErrInvalidCarDetails = errors.New("plate, brand and model are required")

	// ErrInvalidDecision is returned for an unknown reservation decision.
	ErrInvalidDecision = errors.New("decision must be accept or reject")

	// ErrNotAuthorized is returned when a caller tries to mutate a trip
	// they do not own.
	ErrNotAuthorized = errors.New("not authorized for this trip")

	// ErrTripFull is returned when a trip has no seats left.
	ErrTripFull = errors.New("no more seats available")

	// ErrTripNotOpen is returned when reservations are requested on a
	// closed trip and the closed-blocks-requests policy is enabled.
	ErrTripNotOpen = errors.New("trip is not accepting requests")

	// ErrDuplicateRequest is returned when a rider already appears in one
	// of the trip's request lists.
	ErrDuplicateRequest = errors.New("rider already has a request on this trip")

	// ErrRequestNotFound is returned when the rider has no pending request
	// (or, for cancellation, no accepted seat) on the trip.
	ErrRequestNotFound = errors.New("reservation request not found")

	// ErrNoVehicleRegistered is returned when a driver without a
	// registered car tries to create a trip.
	ErrNoVehicleRegistered = errors.New("driver has no registered vehicle")

	// ErrCapacityExceedsVehicle is returned when the requested trip
	// capacity exceeds the driver's vehicle capacity.
	ErrCapacityExceedsVehicle = errors.New("capacity exceeds vehicle capacity")

	// ErrContention is returned when an update loses the optimistic write
	// race too many times in a row. Safe for the caller to retry.
	ErrContention = errors.New("trip is being modified concurrently, retry")

	// ErrPlateExists is returned when registering a car with a plate that
	// is already taken.
	ErrPlateExists = errors.New("plate already exists")

	// ErrEmailExists is returned when registering a user with an email
	// that is already taken.
	ErrEmailExists = errors.New("user already exists")

	// ErrInvalidUserDetails is returned when a required user field is empty.
	ErrInvalidUserDetails = errors.New("name, surname, university id and email are required")

	// ErrPasswordTooShort is returned when a password has fewer than 8 characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
