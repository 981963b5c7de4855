package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache stores JSON encoded values. Collection reads are cached per kind
// under a generation number that every write to that kind bumps, so an
// entry filled from a read older than the write is never served.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error

	// Generation is 0 until the first Bump of name.
	Generation(ctx context.Context, name string) (int64, error)
	Bump(ctx context.Context, name string) error
}

// Limiter counts attempts per key inside a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// CollectionKey is the cache key of a kind's full collection.
func CollectionKey(kind string) string { return "collection:" + kind }

// Versioned is key as of generation gen.
func Versioned(key string, gen int64) string { return key + "@" + strconv.FormatInt(gen, 10) }

func generationKey(name string) string { return "gen:" + name }
