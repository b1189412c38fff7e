package middleware

import (
	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const rateLimitMessage = "Rate limit exceeded"

// RateLimitMiddleware limits requests per client IP with an in-memory
// token bucket store. A zero RequestsPerSecond disables it.
type RateLimitMiddleware struct {
	server  *server.Server
	metrics *MetricsMiddleware
}

func NewRateLimitMiddleware(s *server.Server, metrics *MetricsMiddleware) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server:  s,
		metrics: metrics,
	}
}

func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit.RequestsPerSecond > 0
}

// Limit returns the Echo rate limiter. Denied requests fail with 429.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server.RateLimit

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RequestsPerSecond),
		Burst:     cfg.Burst,
		ExpiresIn: cfg.ExpiresIn,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(rateLimitMessage)
		},
	})
}

// RecordRateLimitHit counts a denied request in Prometheus and, when
// enabled, New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.metrics != nil {
		r.metrics.rateLimitHits.WithLabelValues(endpoint).Inc()
	}

	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
