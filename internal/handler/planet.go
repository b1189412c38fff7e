package handler

import (
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/labstack/echo/v4"
)

type PlanetHandler struct {
	Handler
	planetService *service.PlanetService
}

func NewPlanetHandler(s *server.Server, planetService *service.PlanetService) *PlanetHandler {
	return &PlanetHandler{
		Handler:       NewHandler(s),
		planetService: planetService,
	}
}

type PlanetResponse struct {
	Message string        `json:"message,omitempty"`
	Planet  *model.Planet `json:"planet"`
}

type PlanetsResponse struct {
	Planets []model.Planet `json:"planets"`
}

func (h *PlanetHandler) CreatePlanet(c echo.Context, payload *model.CreatePlanetPayload) (*PlanetResponse, error) {
	planet, err := h.planetService.Create(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &PlanetResponse{
		Message: fmt.Sprintf("%s created!", planet.Name),
		Planet:  planet,
	}, nil
}

func (h *PlanetHandler) GetPlanet(c echo.Context, payload *model.PlanetIDPayload) (*PlanetResponse, error) {
	planet, err := h.planetService.Get(c.Request().Context(), payload.ID)
	if err != nil {
		return nil, err
	}
	return &PlanetResponse{Planet: planet}, nil
}

func (h *PlanetHandler) ListPlanets(c echo.Context, _ *EmptyPayload) (*PlanetsResponse, error) {
	planets, err := h.planetService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &PlanetsResponse{Planets: planets}, nil
}

func (h *PlanetHandler) DeletePlanet(c echo.Context, payload *model.PlanetIDPayload) (*MessageResponse, error) {
	planet, err := h.planetService.Delete(c.Request().Context(), payload.ID)
	if err != nil {
		return nil, err
	}
	return &MessageResponse{Message: fmt.Sprintf("%s deleted!", planet.Name)}, nil
}
