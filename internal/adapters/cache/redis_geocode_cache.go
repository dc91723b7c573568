package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campus-ride-service/internal/domain"
	"campus-ride-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geo:addr:"

// RedisGeocodeCache stores coordinates as JSON under geo:addr:<address> with a TTL.
type RedisGeocodeCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisGeocodeCache returns a cache whose entries expire after ttl.
// A zero ttl keeps entries until evicted.
func NewRedisGeocodeCache(rdb redis.Cmdable, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{rdb: rdb, ttl: ttl}
}

func geocodeKey(address string) string {
	return geocodeKeyPrefix + address
}

func (c *RedisGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Get")(&err)

	raw, err := c.rdb.Get(ctx, geocodeKey(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis get %q: %w", address, err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode cached coordinates %q: %w", address, err)
	}
	return coords, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Put")(&err)

	raw, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("encode coordinates: %w", err)
	}
	if err := c.rdb.Set(ctx, geocodeKey(address), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", address, err)
	}
	return nil
}
