// Package cache defines the response cache injected into the ESPN client.
package cache

import (
	"context"
	"time"
)

// Cache stores raw upstream response bodies for a bounded time.
// Get reports false on a miss or an expired entry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
