package cache

import (
	"context"
	"time"
)

// Cache is a string key/value store with per-key expiry. The lifecycle
// service uses it to hold the provider's dynamic catalog payloads.
type Cache interface {
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}
