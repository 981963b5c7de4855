package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process; used when no redis is configured.
type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *MemoryCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		m.c.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		m.c.Delete(key)
		return false, nil
	}
	return true, nil
}

func (m *MemoryCache) SetJSON(_ context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.c.Set(key, b, ttl)
	return nil
}

func (m *MemoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.c.Delete(k)
	}
	return nil
}

func (m *MemoryCache) Generation(_ context.Context, name string) (int64, error) {
	v, ok := m.c.Get(generationKey(name))
	if !ok {
		return 0, nil
	}
	n, _ := v.(int64)
	return n, nil
}

func (m *MemoryCache) Bump(_ context.Context, name string) error {
	k := generationKey(name)
	if err := m.c.Add(k, int64(1), gocache.NoExpiration); err == nil {
		return nil
	}
	_, err := m.c.IncrementInt64(k, 1)
	return err
}

// MemoryLimiter is the in-process counterpart of RedisLimiter.
type MemoryLimiter struct {
	c      *gocache.Cache
	limit  int
	window time.Duration
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{c: gocache.New(window, 2*window), limit: limit, window: window}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	if err := l.c.Add(key, 1, l.window); err == nil {
		return 1 <= l.limit, nil
	}
	n, err := l.c.IncrementInt(key, 1)
	if err != nil {
		// expired between Add and IncrementInt
		l.c.Set(key, 1, l.window)
		n = 1
	}
	return n <= l.limit, nil
}
