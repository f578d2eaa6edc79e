package config

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"taskboard/internal/core/telemetry"
	. "taskboard/pkg"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]RateLimitEndpointConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.RWMutex
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

const defaultRateLimitKey = "default"

// NewRateLimiter builds endpoint limits from configs. Requests matching no
// entry fall back to the "default" entry, 60 per minute per client ip unless
// configured.
func NewRateLimiter(logger *zap.Logger, metrics *telemetry.AppMetrics, configs map[string]RateLimitConfig) *RateLimiter {
	c := cache.New(5*time.Minute, 10*time.Minute)

	endpoints := map[string]RateLimitEndpointConfig{
		defaultRateLimitKey: {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
	}

	for path, cfg := range configs {
		keyFunc := GetClientIP

		if cfg.ByUser {
			keyFunc = getUserID
		}

		endpoints[path] = RateLimitEndpointConfig{
			Requests: cfg.Requests,
			Window:   cfg.Window,
			KeyFunc:  keyFunc,
		}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &RateLimiter{
		cache:   c,
		config:  endpoints,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		normalizedPath := path

		if path == "" {
			path = c.Request.URL.Path
			normalizedPath = rl.normalizePath(path)
		}

		methodPath := c.Request.Method + " " + normalizedPath
		config := rl.lookup(methodPath, normalizedPath)

		key := rl.generateKey(c, methodPath, config.KeyFunc)

		rl.logger.Debug("Rate limit check",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("normalizedPath", normalizedPath),
			zap.String("methodPath", methodPath),
			zap.String("key", key),
			zap.Int("limit", config.Requests),
			zap.Duration("window", config.Window))

		allowed, remaining, resetTime, err := rl.checkRateLimit(key, config)
		if err != nil {
			rl.logger.Error("Rate limit check failed",
				zap.String("key", key),
				zap.String("path", path),
				zap.Error(err))
			c.Next()
			return
		}

		keyType := "ip"
		if strings.Contains(key, "user_") {
			keyType = "user"
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, keyType)
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":       "RATE_LIMIT_EXCEEDED",
					"message":    fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
					"statusCode": http.StatusTooManyRequests,
				},
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, keyType)
		}

		c.Next()
	}
}

func (rl *RateLimiter) checkRateLimit(key string, config RateLimitEndpointConfig) (bool, int, time.Time, error) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if entry, found := rl.cache.Get(key); found {
		rateLimitEntry := entry.(RateLimitEntry)

		if now.After(rateLimitEntry.ResetTime) {

			resetTime := now.Add(config.Window)
			newEntry := RateLimitEntry{
				Count:     1,
				ResetTime: resetTime,
			}
			rl.cache.Set(key, newEntry, config.Window)
			return true, config.Requests - 1, resetTime, nil
		}

		if rateLimitEntry.Count >= config.Requests {
			return false, 0, rateLimitEntry.ResetTime, nil
		}

		rateLimitEntry.Count++
		rl.cache.Set(key, rateLimitEntry, cache.DefaultExpiration)

		return true, config.Requests - rateLimitEntry.Count, rateLimitEntry.ResetTime, nil
	}

	resetTime := now.Add(config.Window)
	newEntry := RateLimitEntry{
		Count:     1,
		ResetTime: resetTime,
	}
	rl.cache.Set(key, newEntry, config.Window)

	return true, config.Requests - 1, resetTime, nil
}

func (rl *RateLimiter) lookup(methodPath, normalizedPath string) RateLimitEndpointConfig {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	if config, ok := rl.config[methodPath]; ok {
		return config
	}

	if config, ok := rl.config[normalizedPath]; ok {
		return config
	}

	// "/todos/:id/move" falls back to the "/todos" entry
	if root := rootSegment(normalizedPath); root != normalizedPath {
		if config, ok := rl.config[root]; ok {
			return config
		}
	}

	return rl.config[defaultRateLimitKey]
}

// normalizePath replaces the id segment of unmatched paths such as
// /todos/123/move so they share one counter.
func (rl *RateLimiter) normalizePath(path string) string {
	parts := strings.Split(path, "/")

	if len(parts) >= 3 && parts[2] != "" {
		parts[2] = ":id"
		return strings.Join(parts, "/")
	}

	return path
}

func rootSegment(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)

	return "/" + parts[0]
}

func (rl *RateLimiter) generateKey(c *gin.Context, path string, keyFunc func(*gin.Context) string) string {
	identifier := keyFunc(c)
	return fmt.Sprintf("rate_limit:%s:%s", path, identifier)
}

func getUserID(c *gin.Context) string {
	if userID := c.GetString("x-user-id"); userID != "" {
		return "user_" + userID
	}
	return GetClientIP(c)
}
