package model

import "github.com/deppfellow/starwars-api/internal/validation"

// FavoritePerson links a user to a person. A (user, person) pair is
// stored at most once.
type FavoritePerson struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"user_id"`
	PeopleID int64 `json:"people_id"`
}

// FavoritePlanet links a user to a planet. A (user, planet) pair is
// stored at most once.
type FavoritePlanet struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"user_id"`
	PlanetID int64 `json:"planet_id"`
}

// Favorites groups both kinds of favorite rows.
type Favorites struct {
	People  []FavoritePerson `json:"people"`
	Planets []FavoritePlanet `json:"planets"`
}

type AddFavoritePersonPayload struct {
	UserID   *int64 `json:"user_id" validate:"required"`
	PeopleID *int64 `json:"people_id" validate:"required"`
}

func (p *AddFavoritePersonPayload) Validate() error {
	return validation.Struct(p)
}

type AddFavoritePlanetPayload struct {
	UserID   *int64 `json:"user_id" validate:"required"`
	PlanetID *int64 `json:"planet_id" validate:"required"`
}

func (p *AddFavoritePlanetPayload) Validate() error {
	return validation.Struct(p)
}

type RemoveFavoritePersonPayload struct {
	UserID   int64 `param:"id" validate:"gt=0"`
	PeopleID int64 `param:"peopleId" validate:"gt=0"`
}

func (p *RemoveFavoritePersonPayload) Validate() error {
	return validation.Struct(p)
}

type RemoveFavoritePlanetPayload struct {
	UserID   int64 `param:"id" validate:"gt=0"`
	PlanetID int64 `param:"planetId" validate:"gt=0"`
}

func (p *RemoveFavoritePlanetPayload) Validate() error {
	return validation.Struct(p)
}
