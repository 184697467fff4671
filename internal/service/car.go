package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// CarService handles vehicle registration and acts as the capacity
// provider for trip creation.
type CarService struct {
	carStore repository.CarStore
}

// NewCarService creates a new CarService.
func NewCarService(carStore repository.CarStore) *CarService {
	return &CarService{carStore: carStore}
}

// RegisterCarRequest contains the parameters for registering a car.
type RegisterCarRequest struct {
	OwnerID     string
	Plate       string
	Capacity    int
	Brand       string
	Model       string
	CarPhotoURL string
}

// RegisterCar registers a vehicle for a driver. Plates are unique across
// the system.
func (s *CarService) RegisterCar(ctx context.Context, req RegisterCarRequest) (*domain.Car, error) {
	if req.OwnerID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.Plate == "" || req.Brand == "" || req.Model == "" {
		return nil, ErrInvalidCarDetails
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	existing, err := s.carStore.GetByPlate(ctx, req.Plate)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPlateExists
	}

	car := &domain.Car{
		ID:          uuid.New().String(),
		OwnerID:     req.OwnerID,
		Plate:       req.Plate,
		Capacity:    req.Capacity,
		Brand:       req.Brand,
		Model:       req.Model,
		CarPhotoURL: req.CarPhotoURL,
	}

	if err := s.carStore.Create(ctx, car); err != nil {
		return nil, err
	}

	return car, nil
}

// GetOwnCars retrieves the cars registered by a driver.
func (s *CarService) GetOwnCars(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	if ownerID == "" {
		return nil, ErrInvalidDriverID
	}

	cars, err := s.carStore.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return nil, repository.ErrNotFound
	}
	return cars, nil
}

// DeleteOwnCars removes all cars registered by a driver.
func (s *CarService) DeleteOwnCars(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return ErrInvalidDriverID
	}
	return s.carStore.DeleteByOwner(ctx, ownerID)
}

// CapacityFor returns the driver's registered vehicle, or
// ErrNoVehicleRegistered if they have none. The first registered car
// bounds trip capacity and supplies the trip's car photo.
func (s *CarService) CapacityFor(ctx context.Context, driverID string) (*domain.Car, error) {
	cars, err := s.carStore.GetByOwner(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return nil, ErrNoVehicleRegistered
	}
	return cars[0], nil
}
