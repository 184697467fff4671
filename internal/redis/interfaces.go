package redis

import (
	"context"

	"carpool/internal/domain"
)

// TripCacheInterface defines the interface for trip read caching.
type TripCacheInterface interface {
	Get(ctx context.Context, tripID string) (*domain.Trip, error)
	Set(ctx context.Context, trip *domain.Trip) error
	Invalidate(ctx context.Context, tripID string) error
}

// Ensure concrete types implement interfaces.
var _ TripCacheInterface = (*TripCache)(nil)
