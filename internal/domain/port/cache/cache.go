package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// Store defines cache operations. The backing store is opaque; values are
// raw bytes and expiration is best effort.
type Store interface {
	// Get returns the value for key, or ErrCacheMiss if absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the value under key; ttl of zero means no expiration
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the value for key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}
