package response

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"
	. "taskboard/pkg"
	"taskboard/pkg/auth"
	. "taskboard/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ResponseCache serves repeated GET requests from a CacheRepository. Any
// successful mutation drops every cached response under the same root path,
// so "POST /todos/1/move" invalidates "GET /todos?listId=...".
type ResponseCache struct {
	store   port.CacheRepository
	ttl     time.Duration
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
}

type CachedResponse struct {
	StatusCode  int       `json:"status_code"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewResponseCache(store port.CacheRepository, ttl time.Duration, logger *zap.Logger, metrics *telemetry.AppMetrics) *ResponseCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ResponseCache{
		store:   store,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			rc.invalidateAfter(c)
			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cacheKey := rc.generateCacheKey(c, path)

		if rc.serveCached(c, path, cacheKey) {
			return
		}

		ctx, span := CreateChildSpan(c.Request.Context(), "cache.response.miss",
			attribute.String("cache.key", cacheKey),
			attribute.String("cache.path", path),
		)
		defer span.End()

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(ctx, path)
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		status := writer.Status()

		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		payload, err := json.Marshal(CachedResponse{
			StatusCode:  status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
			Timestamp:   time.Now(),
		})

		if err != nil {
			AddSpanError(span, err)
			return
		}

		if err := rc.store.Set(ctx, cacheKey, payload, rc.ttl); err != nil {
			AddSpanError(span, err)
			rc.logger.Warn("Failed to store cached response", zap.String("cache_key", cacheKey), zap.Error(err))
		}
	}
}

func (rc *ResponseCache) serveCached(c *gin.Context, path, cacheKey string) bool {
	ctx := c.Request.Context()
	payload, err := rc.store.Get(ctx, cacheKey)

	if err != nil {
		rc.logger.Warn("Failed to read cached response", zap.String("cache_key", cacheKey), zap.Error(err))
		return false
	}

	if payload == nil {
		return false
	}

	var cached CachedResponse

	if err := json.Unmarshal(payload, &cached); err != nil {
		rc.store.Delete(ctx, cacheKey)
		return false
	}

	_, span := CreateChildSpan(ctx, "cache.response.hit",
		attribute.String("cache.key", cacheKey),
		attribute.String("cache.path", path),
		attribute.String("cache.age", time.Since(cached.Timestamp).String()),
	)
	defer span.End()

	if rc.metrics != nil {
		rc.metrics.RecordCacheHit(ctx, path)
	}

	rc.logger.Debug("Cache hit",
		zap.String("path", path),
		zap.String("cache_key", cacheKey),
		zap.Duration("age", time.Since(cached.Timestamp)))

	c.Header("X-Cache", "HIT")
	c.Header("X-Cache-Age", fmt.Sprintf("%.0f", time.Since(cached.Timestamp).Seconds()))

	c.Data(cached.StatusCode, cached.ContentType, cached.Body)
	c.Abort()

	return true
}

func (rc *ResponseCache) invalidateAfter(c *gin.Context) {
	status := c.Writer.Status()

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return
	}

	prefix := cachePrefix(c.Request.URL.Path)

	err := SpanWrapper(c.Request.Context(), "cache.response.invalidate",
		[]attribute.KeyValue{attribute.String("cache.prefix", prefix)},
		func(ctx context.Context) error {
			if err := rc.store.DeleteByPrefix(ctx, prefix); err != nil {
				return err
			}

			AddSpanEvent(trace.SpanFromContext(ctx), "cache.invalidated", attribute.String("method", c.Request.Method))

			return nil
		})

	if err != nil {
		rc.logger.Warn("Failed to invalidate cached responses", zap.String("prefix", prefix), zap.Error(err))
		return
	}

	rc.logger.Debug("Cache invalidated", zap.String("prefix", prefix))
}

// generateCacheKey scopes entries by query string and by the authenticated
// user, or the client ip for anonymous requests.
func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string) string {
	keyParts := []string{path}

	if c.Request.URL.RawQuery != "" {
		keyParts = append(keyParts, c.Request.URL.RawQuery)
	}

	if userID, ok := auth.UserIDFrom(c); ok {
		keyParts = append(keyParts, "user_"+userID)
	} else {
		keyParts = append(keyParts, "ip_"+GetClientIP(c))
	}

	// the concrete url keeps /todos/1 and /todos/2 apart under the same route
	keyParts = append(keyParts, c.Request.URL.Path)

	hash := md5.Sum([]byte(strings.Join(keyParts, "|")))

	return fmt.Sprintf("%s%x", cachePrefix(c.Request.URL.Path), hash)
}

func cachePrefix(path string) string {
	root := strings.SplitN(strings.Trim(path, "/"), "/", 2)[0]

	return "cache:/" + root + ":"
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
