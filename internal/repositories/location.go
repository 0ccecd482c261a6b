package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sylesh7/medinnovate/internal/logger"
)

const hostLocationKey = "host_location"

// LocationCacheRepository caches the dispatching host's resolved
// coordinates in Redis so repeated alerts don't re-query the geolocation
// API. Entries expire after the configured TTL.
type LocationCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewLocationCacheRepository creates a new repository instance with the given TTL.
func NewLocationCacheRepository(client *redis.Client, expiration time.Duration) *LocationCacheRepository {
	return &LocationCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetHostLocation returns the cached coordinate pair. The second return is
// false on a cache miss; transport errors are returned as errors.
func (r *LocationCacheRepository) GetHostLocation(ctx context.Context) (lat, lon float64, ok bool, err error) {
	val, err := r.client.Get(ctx, hostLocationKey).Result()

	logger.Log.Infow(
		"key", hostLocationKey,
		"result", val,
		"error", err,
	)

	if err == redis.Nil {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}

	if _, err := fmt.Sscanf(val, "%f,%f", &lat, &lon); err != nil {
		return 0, 0, false, err
	}
	return lat, lon, true, nil
}

// SetHostLocation caches a coordinate pair with expiration.
func (r *LocationCacheRepository) SetHostLocation(ctx context.Context, lat, lon float64) error {
	val := fmt.Sprintf("%f,%f", lat, lon)
	err := r.client.Set(ctx, hostLocationKey, val, r.exp).Err()

	logger.Log.Infow(
		"key", hostLocationKey,
		"value", val,
		"error", err,
	)

	return err
}
