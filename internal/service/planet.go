package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/sqlerr"
)

const msgPlanetNotFound = "Planet not found!"

type PlanetService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewPlanetService(s *server.Server, repos *repository.Repositories) *PlanetService {
	return &PlanetService{server: s, repos: repos}
}

func (s *PlanetService) Create(ctx context.Context, payload *model.CreatePlanetPayload) (*model.Planet, error) {
	planet := &model.Planet{
		Name:          payload.Name,
		OrbitalPeriod: *payload.OrbitalPeriod,
		Population:    *payload.Population,
	}

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Planet.GetByName(ctx, planet.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.NewConflictError(fmt.Sprintf("%s already exists!", planet.Name))
		}

		_, err = tx.Planet.Create(ctx, planet)
		return err
	})
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, errs.NewConflictError(fmt.Sprintf("%s already exists!", planet.Name))
		}
		return nil, sqlerr.HandleError(err)
	}

	return planet, nil
}

func (s *PlanetService) Get(ctx context.Context, id int64) (*model.Planet, error) {
	planet, err := s.repos.Planet.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(msgPlanetNotFound, true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return planet, nil
}

func (s *PlanetService) List(ctx context.Context) ([]model.Planet, error) {
	planets, err := s.repos.Planet.List(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return planets, nil
}

func (s *PlanetService) Delete(ctx context.Context, id int64) (*model.Planet, error) {
	var planet *model.Planet

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		var err error
		if planet, err = tx.Planet.GetByID(ctx, id); err != nil {
			return err
		}
		return tx.Planet.Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(msgPlanetNotFound, true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return planet, nil
}
