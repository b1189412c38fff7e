package handler

import (
	"net/http"
	"sort"

	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/labstack/echo/v4"
)

// SitemapHandler lists the routes registered on the Echo instance.
type SitemapHandler struct {
	Handler
}

func NewSitemapHandler(s *server.Server) *SitemapHandler {
	return &SitemapHandler{
		Handler: NewHandler(s),
	}
}

type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type SitemapResponse struct {
	Routes []Route `json:"routes"`
}

var sitemapMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// ListRoutes skips Echo's internal not-found routes and sorts by path.
func (h *SitemapHandler) ListRoutes(c echo.Context, _ *EmptyPayload) (*SitemapResponse, error) {
	seen := make(map[Route]bool)
	routes := []Route{}

	for _, r := range c.Echo().Routes() {
		route := Route{Method: r.Method, Path: r.Path}
		if !sitemapMethods[r.Method] || seen[route] {
			continue
		}
		seen[route] = true
		routes = append(routes, route)
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return &SitemapResponse{Routes: routes}, nil
}
