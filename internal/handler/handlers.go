package handler

import (
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	Sitemap  *SitemapHandler
	User     *UserHandler
	Person   *PersonHandler
	Planet   *PlanetHandler
	Favorite *FavoriteHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Sitemap:  NewSitemapHandler(s),
		User:     NewUserHandler(s, services.User),
		Person:   NewPersonHandler(s, services.Person),
		Planet:   NewPlanetHandler(s, services.Planet),
		Favorite: NewFavoriteHandler(s, services.Favorite),
	}
}

// EmptyPayload is the request type of endpoints without input.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}
