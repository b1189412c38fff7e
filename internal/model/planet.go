package model

import "github.com/deppfellow/starwars-api/internal/validation"

type Planet struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	OrbitalPeriod int    `json:"orbital_period"`
	Population    int64  `json:"population"`
}

type CreatePlanetPayload struct {
	Name          string `json:"name" validate:"required,max=250"`
	OrbitalPeriod *int   `json:"orbital_period" validate:"required"`
	Population    *int64 `json:"population" validate:"required"`
}

func (p *CreatePlanetPayload) Validate() error {
	return validation.Struct(p)
}

type PlanetIDPayload struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (p *PlanetIDPayload) Validate() error {
	return validation.Struct(p)
}
