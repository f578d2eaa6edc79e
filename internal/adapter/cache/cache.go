package cache

import (
	"context"
	"fmt"

	"taskboard/internal/core/port"
	"taskboard/pkg/config"
)

// New returns the cache selected by cfg.Driver.
func New(ctx context.Context, cfg config.CacheConfig) (port.CacheRepository, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryCache(cfg.TTL), nil
	case "redis":
		return NewRedisCache(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
