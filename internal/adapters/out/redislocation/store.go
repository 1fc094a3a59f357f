// Package redislocation keeps courier positions in a Redis geospatial index.
// It backs the low-latency side of location tracking; the courier row in
// Postgres remains the durable fallback.
package redislocation

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"

	redis "github.com/redis/go-redis/v9"
)

// locationsKey is the single geo set holding all courier positions, keyed by
// courier ID.
const locationsKey = "courier:locations"

// Store implements ports.LocationStore on a Redis geo set.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a location store on the given Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// NewStoreFromURL connects a store using a redis:// connection URL.
func NewStoreFromURL(url string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewStore(redis.NewClient(opt)), nil
}

// Set records a courier's latest position, replacing any previous one.
func (s *Store) Set(ctx context.Context, courierID kernel.UUID, position kernel.GeoPoint) error {
	return s.rdb.GeoAdd(ctx, locationsKey, &redis.GeoLocation{
		Name:      courierID.String(),
		Longitude: position.Longitude(),
		Latitude:  position.Latitude(),
	}).Err()
}

// Get returns a courier's last known position. The second return value is
// false when no position was ever recorded.
func (s *Store) Get(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, bool, error) {
	positions, err := s.rdb.GeoPos(ctx, locationsKey, courierID.String()).Result()
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}

	if len(positions) == 0 || positions[0] == nil {
		return kernel.GeoPoint{}, false, nil
	}

	// Redis geo coordinates come back with sub-meter drift from the
	// geohash encoding, still well within domain bounds.
	point, err := kernel.NewGeoPoint(positions[0].Latitude, positions[0].Longitude)
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}

	return point, true, nil
}

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
