package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

const generationKey = "zones:generation"

// ZoneCache is a redis-backed read-through cache for aggregated zone lists.
// Entries are keyed by caller, viewport and a generation counter; committed
// location updates, visibility changes and deletes bump the counter, so a
// query issued after the commit can never hit a stale entry. Redis being down
// only disables caching, it never fails a query.
type ZoneCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewZoneCache(client *redis.Client, ttl time.Duration) *ZoneCache {
	return &ZoneCache{client: client, ttl: ttl}
}

func (c *ZoneCache) key(ctx context.Context, callerID string, bounds domain.MapBounds) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("zones:%d:%s:%.4f:%.4f:%.4f:%.4f",
		gen, callerID, bounds.North, bounds.South, bounds.East, bounds.West), nil
}

// GetZones returns a cached zone list for the viewport, if present, along
// with the key it was looked up under. On a miss the caller passes that same
// key to SetZones; the key pins the generation read here, before the store
// scan, so a list computed under generation G is never stored under G+1 when
// an invalidation lands in between. An empty key means redis is unavailable.
func (c *ZoneCache) GetZones(ctx context.Context, callerID string, bounds domain.MapBounds) ([]domain.MapZone, string, bool) {
	key, err := c.key(ctx, callerID, bounds)
	if err != nil {
		return nil, "", false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, key, false
	}
	var zones []domain.MapZone
	if err := json.Unmarshal(raw, &zones); err != nil {
		return nil, key, false
	}
	return zones, key, true
}

// SetZones stores a computed zone list under the key GetZones returned for
// the miss.
func (c *ZoneCache) SetZones(ctx context.Context, key string, zones []domain.MapZone) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(zones)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

// Invalidate bumps the generation counter, orphaning every cached entry.
func (c *ZoneCache) Invalidate(ctx context.Context) {
	c.client.Incr(ctx, generationKey)
}
