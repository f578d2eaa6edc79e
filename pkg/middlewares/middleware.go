package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"
	"taskboard/pkg/auth"
	. "taskboard/pkg/config"
	. "taskboard/pkg/response"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Options struct {
	Config  *AppConfig
	Metrics *telemetry.AppMetrics
	Logger  *Logger
	// Cache backs the GET response cache when Config.Cache.Enabled is set.
	Cache port.CacheRepository
}

func MetricsMiddleware(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		path := c.FullPath()

		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

func CorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupGinMiddleware installs the middleware every route shares.
func SetupGinMiddleware(router *gin.Engine, opts Options) {
	httpsEnforcer := NewHTTPSEnforcer(opts.Logger.Zap(), opts.Config.EnforceHTTPS)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	if opts.Config.Telemetry.Enabled {
		router.Use(otelgin.Middleware(opts.Config.ServiceName))
	}

	router.Use(gin.Recovery())
	router.Use(CorsMiddleware())
	router.Use(LoggingMiddleware(opts.Logger))

	if opts.Metrics != nil {
		router.Use(MetricsMiddleware(opts.Metrics))
	}
}

// RouteMiddleware returns the chain for API route groups. It runs after the
// global middleware so the rate limiter and the response cache can key on
// the authenticated user.
func RouteMiddleware(opts Options, jwt *auth.JWT, requireAuth bool) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		auth.GinJwtMiddleware(jwt, requireAuth),
		middleware.CurrentMiddleware(),
	}

	if opts.Config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(opts.Logger.Zap(), opts.Metrics, opts.Config.RateLimitConfigs)
		chain = append(chain, rateLimiter.RateLimitMiddleware())
	}

	if opts.Config.Cache.Enabled && opts.Cache != nil {
		responseCache := NewResponseCache(opts.Cache, opts.Config.Cache.TTL, opts.Logger.Zap(), opts.Metrics)
		chain = append(chain, responseCache.CacheMiddleware())
	}

	return chain
}
