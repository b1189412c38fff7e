package service

import (
	"github.com/deppfellow/starwars-api/internal/lib/job"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
)

type Services struct {
	User     *UserService
	Person   *PersonService
	Planet   *PlanetService
	Favorite *FavoriteService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		User:     NewUserService(s, repos),
		Person:   NewPersonService(s, repos),
		Planet:   NewPlanetService(s, repos),
		Favorite: NewFavoriteService(s, repos),
		Job:      s.Job,
	}, nil
}
