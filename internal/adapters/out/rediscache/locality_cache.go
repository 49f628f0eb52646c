// Package rediscache provides Redis-backed caches for routing lookups.
// Locality names change rarely, so reverse-geocode results are kept hot
// to avoid repeating paid API calls on every allocation run.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"speedit/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const localityTTL = 24 * time.Hour

// RedisLocalityCache caches reverse-geocoded locality names keyed by
// rounded coordinates. Safe for concurrent use.
type RedisLocalityCache struct {
	client *redis.Client
}

// NewRedisLocalityCache creates a locality cache over the given client.
func NewRedisLocalityCache(client *redis.Client) (*RedisLocalityCache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisLocalityCache{client: client}, nil
}

// Get returns the cached locality name for the point. A miss returns
// found=false with no error.
func (c *RedisLocalityCache) Get(ctx context.Context, point kernel.GeoPoint) (string, bool, error) {
	val, err := c.client.Get(ctx, localityKey(point)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("locality cache get: %w", err)
	}
	return val, true, nil
}

// Put stores the locality name for the point with a daily expiry.
func (c *RedisLocalityCache) Put(ctx context.Context, point kernel.GeoPoint, name string) error {
	if err := c.client.Set(ctx, localityKey(point), name, localityTTL).Err(); err != nil {
		return fmt.Errorf("locality cache put: %w", err)
	}
	return nil
}

// localityKey rounds coordinates to ~1 meter so nearby lookups share an
// entry regardless of float noise.
func localityKey(point kernel.GeoPoint) string {
	return "locality:" +
		strconv.FormatFloat(point.Latitude(), 'f', 5, 64) + ":" +
		strconv.FormatFloat(point.Longitude(), 'f', 5, 64)
}
