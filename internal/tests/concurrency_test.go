package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// ──────────────────────────────────────────────
// 3. CONCURRENT RESERVATION RACES
// ──────────────────────────────────────────────

// Concurrency tests run against the mock store's real compare-and-set, so
// lost updates surface as revision mismatches exactly like in production.
// The attempt budget is raised so tests fail on broken invariants, not on
// exhausted retries.
func newRaceTripService(tripStore *MockTripStore) *service.TripService {
	return newTripService(tripStore, service.TripOptions{MaxUpdateAttempts: 100})
}

func TestConcurrentRequests_NeverOverbook(t *testing.T) {
	t.Parallel()

	const riders = 20
	const capacity = 3

	tripStore := NewMockTripStore()
	seedOpenTrip(tripStore, "trip-1", "driver-1", capacity)
	tripService := newRaceTripService(tripStore)
	ctx := context.Background()

	// All riders request concurrently.
	var wg sync.WaitGroup
	for i := 0; i < riders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := tripService.RequestReservation(ctx, "trip-1", fmt.Sprintf("rider-%d", i), "")
			if err != nil {
				t.Errorf("request %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	stored := tripStore.GetTrip("trip-1")
	if len(stored.PendingRequests) != riders {
		t.Fatalf("expected %d pending requests, got %d", riders, len(stored.PendingRequests))
	}
	checkCapacityLedger(t, stored)

	// Driver accepts everyone concurrently; only capacity accepts can win.
	var accepted, full int32
	for i := 0; i < riders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := tripService.DecideReservation(ctx, "trip-1", "driver-1", fmt.Sprintf("rider-%d", i), service.DecisionAccept)
			switch {
			case err == nil:
				atomic.AddInt32(&accepted, 1)
			case errors.Is(err, service.ErrTripFull):
				atomic.AddInt32(&full, 1)
			default:
				t.Errorf("unexpected error for rider %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if accepted != capacity {
		t.Errorf("expected exactly %d accepts to win, got %d", capacity, accepted)
	}
	if full != riders-capacity {
		t.Errorf("expected %d TripFull failures, got %d", riders-capacity, full)
	}

	stored = tripStore.GetTrip("trip-1")
	if stored.Availability != 0 {
		t.Errorf("expected availability 0, got %d", stored.Availability)
	}
	if stored.ReservationsCount != capacity {
		t.Errorf("expected %d reservations, got %d", capacity, stored.ReservationsCount)
	}
	if len(stored.AcceptedRequests) != capacity {
		t.Errorf("expected %d accepted requests, got %d", capacity, len(stored.AcceptedRequests))
	}
	// Losers stay pending for the driver to reject.
	if len(stored.PendingRequests) != riders-capacity {
		t.Errorf("expected %d still pending, got %d", riders-capacity, len(stored.PendingRequests))
	}
	checkCapacityLedger(t, stored)
}

func TestConcurrentAccepts_LastSeat_ExactlyOneWins(t *testing.T) {
	t.Parallel()

	tripStore := NewMockTripStore()
	tripStore.AddTrip(&domain.Trip{
		ID:                "trip-1",
		DriverID:          "driver-1",
		Route:             validRoute(),
		Capacity:          2,
		Availability:      1,
		ReservationsCount: 1,
		State:             domain.TripStateOpen,
		AcceptedRequests:  []domain.ReservationRequest{{RiderID: "rider-z"}},
		PendingRequests: []domain.ReservationRequest{
			{RiderID: "rider-a", Location: "Gate 1"},
			{RiderID: "rider-b", Location: "Gate 2"},
		},
	})
	tripService := newRaceTripService(tripStore)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, rider := range []string{"rider-a", "rider-b"} {
		wg.Add(1)
		go func(i int, rider string) {
			defer wg.Done()
			_, results[i] = tripService.DecideReservation(ctx, "trip-1", "driver-1", rider, service.DecisionAccept)
		}(i, rider)
	}
	wg.Wait()

	var wins, fulls int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrTripFull):
			fulls++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 || fulls != 1 {
		t.Fatalf("expected exactly one accept to win the last seat, got wins=%d fulls=%d", wins, fulls)
	}

	stored := tripStore.GetTrip("trip-1")
	if stored.Availability != 0 {
		t.Errorf("expected availability 0, got %d", stored.Availability)
	}
	// The loser's request is still pending.
	if len(stored.PendingRequests) != 1 {
		t.Errorf("expected losing request to remain pending, got %+v", stored.PendingRequests)
	}
	checkCapacityLedger(t, stored)
}

func TestConcurrentRequestAndAccept_LedgerHolds(t *testing.T) {
	t.Parallel()

	const capacity = 5
	tripStore := NewMockTripStore()
	seedOpenTrip(tripStore, "trip-1", "driver-1", capacity)
	tripService := newRaceTripService(tripStore)
	ctx := context.Background()

	// Riders request and the driver accepts in parallel, interleaved.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		rider := fmt.Sprintf("rider-%d", i)
		wg.Add(2)
		go func(rider string) {
			defer wg.Done()
			_, _ = tripService.RequestReservation(ctx, "trip-1", rider, "")
		}(rider)
		go func(rider string) {
			defer wg.Done()
			// The accept may race ahead of the request; both outcomes are
			// legal as long as the ledger holds.
			_, _ = tripService.DecideReservation(ctx, "trip-1", "driver-1", rider, service.DecisionAccept)
		}(rider)
	}
	wg.Wait()

	stored := tripStore.GetTrip("trip-1")
	checkCapacityLedger(t, stored)
	if len(stored.AcceptedRequests) > capacity {
		t.Errorf("overbooked: %d accepted with capacity %d", len(stored.AcceptedRequests), capacity)
	}
}

func TestUpdate_ExhaustedRetries_ReturnsContention(t *testing.T) {
	t.Parallel()

	tripStore := NewMockTripStore()
	seedOpenTrip(tripStore, "trip-1", "driver-1", 3)
	tripStore.ConflictsToInject = 3

	tripService := newTripService(tripStore, service.TripOptions{MaxUpdateAttempts: 3})

	_, err := tripService.RequestReservation(context.Background(), "trip-1", "rider-a", "")
	if !errors.Is(err, service.ErrContention) {
		t.Fatalf("expected ErrContention, got: %v", err)
	}

	// The failed update must not have landed.
	stored := tripStore.GetTrip("trip-1")
	if len(stored.PendingRequests) != 0 {
		t.Error("expected no pending request after contention failure")
	}
}

func TestUpdate_RecoversAfterTransientConflict(t *testing.T) {
	t.Parallel()

	tripStore := NewMockTripStore()
	seedOpenTrip(tripStore, "trip-1", "driver-1", 3)
	tripStore.ConflictsToInject = 2

	tripService := newTripService(tripStore, service.TripOptions{MaxUpdateAttempts: 5})

	trip, err := tripService.RequestReservation(context.Background(), "trip-1", "rider-a", "Gate 4")
	if err != nil {
		t.Fatalf("expected retry to succeed, got: %v", err)
	}
	if len(trip.PendingRequests) != 1 {
		t.Errorf("expected 1 pending request, got %d", len(trip.PendingRequests))
	}
	// Two conflicts then one success.
	if got := atomic.LoadInt32(&tripStore.UpdateCallCount); got != 3 {
		t.Errorf("expected 3 update attempts, got %d", got)
	}
}
