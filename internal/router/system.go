package router

import (
	"net/http"

	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerSystemRoutes registers the endpoints that are not part of the
// API resources.
func registerSystemRoutes(s *server.Server, r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.Handle(h.Sitemap.Handler, h.Sitemap.ListRoutes, http.StatusOK, &handler.EmptyPayload{}))
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{})))
}
