package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP STORE
// ──────────────────────────────────────────────

// MockTripStore is an in-memory, revision-checked implementation of
// repository.TripStore. ConditionalUpdate performs a real compare-and-set
// under the mutex, so concurrency tests exercise the same lost-update
// semantics as the PostgreSQL store.
type MockTripStore struct {
	mu        sync.RWMutex
	trips     map[string]*domain.Trip
	revisions map[string]int64

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	GetError    error
	UpdateError error

	// ConflictsToInject forces that many ConditionalUpdate calls to fail
	// with ErrRevisionMismatch before behaving normally.
	ConflictsToInject int32
}

// NewMockTripStore creates a new mock trip store.
func NewMockTripStore() *MockTripStore {
	return &MockTripStore{
		trips:     make(map[string]*domain.Trip),
		revisions: make(map[string]int64),
	}
}

// AddTrip seeds a trip at revision 1.
func (m *MockTripStore) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = cloneTrip(trip)
	m.revisions[trip.ID] = 1
}

func (m *MockTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = cloneTrip(trip)
	m.revisions[trip.ID] = 1
	return nil
}

func (m *MockTripStore) GetByID(ctx context.Context, id string) (*domain.Trip, int64, error) {
	if m.GetError != nil {
		return nil, 0, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, 0, repository.ErrNotFound
	}
	return cloneTrip(trip), m.revisions[id], nil
}

func (m *MockTripStore) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		switch {
		case filter.DriverID != "":
			if t.DriverID != filter.DriverID {
				continue
			}
		case filter.RiderID != "" && filter.AcceptedOnly:
			if !t.HasAcceptedRider(filter.RiderID) {
				continue
			}
		case filter.RiderID != "":
			if !t.HasRider(filter.RiderID) {
				continue
			}
		}
		result = append(result, cloneTrip(t))
	}
	return result, nil
}

func (m *MockTripStore) ConditionalUpdate(ctx context.Context, trip *domain.Trip, revision int64) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if atomic.LoadInt32(&m.ConflictsToInject) > 0 {
		atomic.AddInt32(&m.ConflictsToInject, -1)
		return repository.ErrRevisionMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	if m.revisions[trip.ID] != revision {
		return repository.ErrRevisionMismatch
	}
	m.trips[trip.ID] = cloneTrip(trip)
	m.revisions[trip.ID] = revision + 1
	return nil
}

func (m *MockTripStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	delete(m.revisions, id)
	return nil
}

// GetTrip returns the stored trip for test assertions.
func (m *MockTripStore) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil
	}
	return cloneTrip(trip)
}

// CountTrips returns the number of stored trips.
func (m *MockTripStore) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// cloneTrip deep-copies a trip so callers never alias stored slices.
func cloneTrip(t *domain.Trip) *domain.Trip {
	copy := *t
	copy.PendingRequests = append([]domain.ReservationRequest(nil), t.PendingRequests...)
	copy.AcceptedRequests = append([]domain.ReservationRequest(nil), t.AcceptedRequests...)
	copy.RejectedRequests = append([]domain.ReservationRequest(nil), t.RejectedRequests...)
	return &copy
}

// Ensure MockTripStore implements repository.TripStore.
var _ repository.TripStore = (*MockTripStore)(nil)

// ──────────────────────────────────────────────
// MOCK CAR STORE
// ──────────────────────────────────────────────

// MockCarStore is a mock implementation of repository.CarStore.
type MockCarStore struct {
	mu   sync.RWMutex
	cars map[string]*domain.Car

	// Error injection
	CreateError error
}

// NewMockCarStore creates a new mock car store.
func NewMockCarStore() *MockCarStore {
	return &MockCarStore{cars: make(map[string]*domain.Car)}
}

// AddCar adds a car to the mock store.
func (m *MockCarStore) AddCar(car *domain.Car) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cars[car.ID] = car
}

func (m *MockCarStore) Create(ctx context.Context, car *domain.Car) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cars[car.ID] = car
	return nil
}

func (m *MockCarStore) GetByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, car := range m.cars {
		if car.Plate == plate {
			copy := *car
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCarStore) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Car
	for _, car := range m.cars {
		if car.OwnerID == ownerID {
			copy := *car
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockCarStore) DeleteByOwner(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := false
	for id, car := range m.cars {
		if car.OwnerID == ownerID {
			delete(m.cars, id)
			deleted = true
		}
	}
	if !deleted {
		return repository.ErrNotFound
	}
	return nil
}

// Ensure MockCarStore implements repository.CarStore.
var _ repository.CarStore = (*MockCarStore)(nil)

// ──────────────────────────────────────────────
// MOCK USER STORE
// ──────────────────────────────────────────────

// MockUserStore is a mock implementation of repository.UserStore.
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserStore creates a new mock user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// Ensure MockUserStore implements repository.UserStore.
var _ repository.UserStore = (*MockUserStore)(nil)
