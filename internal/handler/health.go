package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports whether the service and its dependencies are
// reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth answers 200 when every check passes and 503 otherwise. Redis
// is only checked when the server is connected to it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"database":    string(h.server.DB.Driver),
		"checks":      checks,
	}

	isHealthy := true

	run := func(name string, ping func(ctx context.Context) error) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		checkStart := time.Now()
		err := ping(ctx)
		elapsed := time.Since(checkStart)

		if err != nil {
			isHealthy = false
			checks[name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().Err(err).Dur("response_time", elapsed).Msgf("%s health check failed", name)
			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			return
		}

		checks[name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
		logger.Debug().Dur("response_time", elapsed).Msgf("%s health check passed", name)
	}

	run("database", h.server.DB.Ping)

	if h.server.Redis != nil {
		run("redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
	}
}
