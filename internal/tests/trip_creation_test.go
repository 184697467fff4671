package tests

import (
	"context"
	"errors"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// ──────────────────────────────────────────────
// 1. TRIP CREATION EDGE CASES
// ──────────────────────────────────────────────

func newTripServiceWithCar(tripStore *MockTripStore, driverID string, seats int) *service.TripService {
	carStore := NewMockCarStore()
	carStore.AddCar(&domain.Car{
		ID:       "car-" + driverID,
		OwnerID:  driverID,
		Plate:    "PLATE-" + driverID,
		Capacity: seats,
		Brand:    "Toyota",
		Model:    "Corolla",
	})
	return service.NewTripService(tripStore, service.NewCarService(carStore), nil, service.TripOptions{})
}

func validRoute() domain.Route {
	return domain.Route{
		StartPoint:    "North Campus",
		EndPoint:      "Downtown",
		Sector:        "A",
		DepartureTime: "18:30",
		Date:          "2025-03-10",
	}
}

func TestCreateTrip_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	tripStore := NewMockTripStore()
	tripService := newTripServiceWithCar(tripStore, "driver-1", 4)

	trip, err := tripService.CreateTrip(context.Background(), service.CreateTripRequest{
		DriverID: "driver-1",
		Route:    validRoute(),
		Price:    3.5,
		Capacity: 3,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if trip.ID == "" {
		t.Error("expected trip ID to be set")
	}
	if trip.Availability != 3 {
		t.Errorf("expected availability 3, got %d", trip.Availability)
	}
	if trip.ReservationsCount != 0 {
		t.Errorf("expected reservations count 0, got %d", trip.ReservationsCount)
	}
	if trip.State != domain.TripStateOpen {
		t.Errorf("expected open state, got %d", trip.State)
	}
	if len(trip.PendingRequests) != 0 || len(trip.AcceptedRequests) != 0 || len(trip.RejectedRequests) != 0 {
		t.Error("expected all request lists to start empty")
	}
	if tripStore.CountTrips() != 1 {
		t.Errorf("expected 1 stored trip, got %d", tripStore.CountTrips())
	}
}

func TestCreateTrip_NoVehicle_Fails(t *testing.T) {
	t.Parallel()

	tripStore := NewMockTripStore()
	carService := service.NewCarService(NewMockCarStore())
	tripService := service.NewTripService(tripStore, carService, nil, service.TripOptions{})

	_, err := tripService.CreateTrip(context.Background(), service.CreateTripRequest{
		DriverID: "driver-1",
		Route:    validRoute(),
		Price:    2,
		Capacity: 2,
	})
	if !errors.Is(err, service.ErrNoVehicleRegistered) {
		t.Fatalf("expected ErrNoVehicleRegistered, got: %v", err)
	}

	if tripStore.CountTrips() != 0 {
		t.Error("expected no trip to be created")
	}
}

func TestCreateTrip_CapacityExceedsVehicle_Fails(t *testing.T) {
	t.Parallel()

	tripStore := NewMockTripStore()
	tripService := newTripServiceWithCar(tripStore, "driver-1", 4)

	_, err := tripService.CreateTrip(context.Background(), service.CreateTripRequest{
		DriverID: "driver-1",
		Route:    validRoute(),
		Price:    2,
		Capacity: 5,
	})
	if !errors.Is(err, service.ErrCapacityExceedsVehicle) {
		t.Fatalf("expected ErrCapacityExceedsVehicle, got: %v", err)
	}

	if tripStore.CountTrips() != 0 {
		t.Error("expected no trip to be created")
	}
}

func TestCreateTrip_InvalidInput_Fails(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*service.CreateTripRequest)
		wantErr error
	}{
		{
			name:    "zero capacity",
			mutate:  func(r *service.CreateTripRequest) { r.Capacity = 0 },
			wantErr: service.ErrInvalidCapacity,
		},
		{
			name:    "negative capacity",
			mutate:  func(r *service.CreateTripRequest) { r.Capacity = -1 },
			wantErr: service.ErrInvalidCapacity,
		},
		{
			name:    "negative price",
			mutate:  func(r *service.CreateTripRequest) { r.Price = -0.5 },
			wantErr: service.ErrInvalidPrice,
		},
		{
			name:    "empty start point",
			mutate:  func(r *service.CreateTripRequest) { r.Route.StartPoint = "" },
			wantErr: service.ErrInvalidRoute,
		},
		{
			name:    "empty date",
			mutate:  func(r *service.CreateTripRequest) { r.Route.Date = "" },
			wantErr: service.ErrInvalidRoute,
		},
		{
			name:    "missing driver id",
			mutate:  func(r *service.CreateTripRequest) { r.DriverID = "" },
			wantErr: service.ErrInvalidDriverID,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tripStore := NewMockTripStore()
			tripService := newTripServiceWithCar(tripStore, "driver-1", 4)

			req := service.CreateTripRequest{
				DriverID: "driver-1",
				Route:    validRoute(),
				Price:    2,
				Capacity: 2,
			}
			tc.mutate(&req)

			_, err := tripService.CreateTrip(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
			if tripStore.CountTrips() != 0 {
				t.Error("expected no trip to be created")
			}
		})
	}
}

func TestCreateTrip_ZeroPrice_IsAllowed(t *testing.T) {
	t.Parallel()

	tripService := newTripServiceWithCar(NewMockTripStore(), "driver-1", 4)

	_, err := tripService.CreateTrip(context.Background(), service.CreateTripRequest{
		DriverID: "driver-1",
		Route:    validRoute(),
		Price:    0,
		Capacity: 1,
	})
	if err != nil {
		t.Fatalf("expected free trips to be allowed, got: %v", err)
	}
}
