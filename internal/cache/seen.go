// Package cache provides a Redis-backed seen-set used as a fast path in front
// of the inbound-record idempotency check. It is advisory only: any cache
// failure degrades to the database check, never to double processing.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/redis/go-redis/v9"
)

// SeenCache remembers recently processed event ids.
type SeenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeenCache creates a seen-set with the given entry TTL.
func NewSeenCache(client *redis.Client, ttl time.Duration) *SeenCache {
	return &SeenCache{client: client, ttl: ttl}
}

func seenKey(kind, id string) string {
	return fmt.Sprintf("ingest:seen:%s:%s", kind, id)
}

// Seen reports whether the event id was recently processed. Errors (including
// a nil client) read as "not seen" so the caller falls through to the store.
func (c *SeenCache) Seen(ctx context.Context, kind, id string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, seenKey(kind, id)).Result()
	if err != nil {
		logger.GetLogger().Debugw("Seen-cache lookup failed, falling through to store", "error", err)
		return false
	}
	return n > 0
}

// Mark records the event id as processed. Failures are logged and ignored.
func (c *SeenCache) Mark(ctx context.Context, kind, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, seenKey(kind, id), 1, c.ttl).Err(); err != nil {
		logger.GetLogger().Debugw("Seen-cache mark failed", "error", err)
	}
}
