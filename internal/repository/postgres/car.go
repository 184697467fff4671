package postgres

import (
	"context"
	"database/sql"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// CarStore implements repository.CarStore using PostgreSQL.
type CarStore struct {
	db *sql.DB
}

// NewCarStore creates a new CarStore.
func NewCarStore(db *sql.DB) *CarStore {
	return &CarStore{db: db}
}

// Create adds a new car.
func (s *CarStore) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (id, owner_id, plate, capacity, brand, model, car_photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		car.ID, car.OwnerID, car.Plate, car.Capacity, car.Brand, car.Model, car.CarPhotoURL)
	return err
}

// GetByPlate retrieves a car by plate.
func (s *CarStore) GetByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	query := `
		SELECT id, owner_id, plate, capacity, brand, model, car_photo_url
		FROM cars WHERE plate = $1
	`

	var car domain.Car
	err := s.db.QueryRowContext(ctx, query, plate).Scan(
		&car.ID, &car.OwnerID, &car.Plate, &car.Capacity, &car.Brand, &car.Model, &car.CarPhotoURL)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// GetByOwner retrieves all cars registered by a driver.
func (s *CarStore) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	query := `
		SELECT id, owner_id, plate, capacity, brand, model, car_photo_url
		FROM cars WHERE owner_id = $1 ORDER BY plate
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.ID, &car.OwnerID, &car.Plate, &car.Capacity, &car.Brand, &car.Model, &car.CarPhotoURL); err != nil {
			return nil, err
		}
		cars = append(cars, &car)
	}
	return cars, rows.Err()
}

// DeleteByOwner removes all cars registered by a driver.
func (s *CarStore) DeleteByOwner(ctx context.Context, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cars WHERE owner_id = $1`, ownerID)
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

// Ensure CarStore implements repository.CarStore.
var _ repository.CarStore = (*CarStore)(nil)
