package repository

import (
	"context"

	"carpool/internal/domain"
)

// CarStore defines the persistence operations for registered vehicles.
type CarStore interface {
	// Create persists a new car.
	Create(ctx context.Context, car *domain.Car) error

	// GetByPlate retrieves a car by its plate.
	GetByPlate(ctx context.Context, plate string) (*domain.Car, error)

	// GetByOwner retrieves all cars registered by a driver.
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error)

	// DeleteByOwner removes all cars registered by a driver.
	DeleteByOwner(ctx context.Context, ownerID string) error
}
