package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"taskboard/internal/core/port"
)

// MemoryCache keeps entries in process; it is the default response cache.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(defaultTTL time.Duration) port.CacheRepository {
	return &MemoryCache{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	m.store.Set(key, value, ttl)

	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := m.store.Get(key)

	if !found {
		return nil, nil
	}

	return value.([]byte), nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.store.Delete(key)

	return nil
}

func (m *MemoryCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range m.store.Items() {
		if strings.HasPrefix(key, prefix) {
			m.store.Delete(key)
		}
	}

	return nil
}

func (m *MemoryCache) Close() error {
	m.store.Flush()

	return nil
}
