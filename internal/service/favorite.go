package service

import (
	"context"
	"errors"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/sqlerr"
)

const (
	msgPersonAlreadyFavorite = "Person is already a favorite"
	msgPlanetAlreadyFavorite = "Planet is already a favorite"
	msgPersonNotInFavorites  = "Person not in favorites"
	msgPlanetNotInFavorites  = "Planet not in favorites"

	codeAlreadyFavorited = "ALREADY_FAVORITED"
)

// FavoriteService keeps each (user, person) and (user, planet) pair in
// the favorites tables at most once.
type FavoriteService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewFavoriteService(s *server.Server, repos *repository.Repositories) *FavoriteService {
	return &FavoriteService{server: s, repos: repos}
}

func alreadyFavorited(message string) error {
	code := codeAlreadyFavorited
	return errs.NewBadRequestError(message, true, &code, nil, nil)
}

// notFound maps repository.ErrNotFound to a 404 with message.
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError(message, true, nil)
	}
	return err
}

// AddPerson marks personID as a favorite of userID. The existence checks
// and the insert share one transaction.
func (s *FavoriteService) AddPerson(ctx context.Context, userID, personID int64) (*model.FavoritePerson, error) {
	var fav *model.FavoritePerson

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Person.GetByID(ctx, personID); err != nil {
			return notFound(err, msgPersonNotFound)
		}
		if _, err := tx.User.GetByID(ctx, userID); err != nil {
			return notFound(err, msgUserNotFound)
		}

		existing, err := tx.Favorite.GetPerson(ctx, userID, personID)
		if err != nil {
			return err
		}
		if existing != nil {
			return alreadyFavorited(msgPersonAlreadyFavorite)
		}

		fav, err = tx.Favorite.AddPerson(ctx, userID, personID)
		return err
	})
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, alreadyFavorited(msgPersonAlreadyFavorite)
		}
		return nil, sqlerr.HandleError(err)
	}

	return fav, nil
}

func (s *FavoriteService) AddPlanet(ctx context.Context, userID, planetID int64) (*model.FavoritePlanet, error) {
	var fav *model.FavoritePlanet

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Planet.GetByID(ctx, planetID); err != nil {
			return notFound(err, msgPlanetNotFound)
		}
		if _, err := tx.User.GetByID(ctx, userID); err != nil {
			return notFound(err, msgUserNotFound)
		}

		existing, err := tx.Favorite.GetPlanet(ctx, userID, planetID)
		if err != nil {
			return err
		}
		if existing != nil {
			return alreadyFavorited(msgPlanetAlreadyFavorite)
		}

		fav, err = tx.Favorite.AddPlanet(ctx, userID, planetID)
		return err
	})
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, alreadyFavorited(msgPlanetAlreadyFavorite)
		}
		return nil, sqlerr.HandleError(err)
	}

	return fav, nil
}

func (s *FavoriteService) RemovePerson(ctx context.Context, userID, personID int64) error {
	if err := s.repos.Favorite.RemovePerson(ctx, userID, personID); err != nil {
		return sqlerr.HandleError(notFound(err, msgPersonNotInFavorites))
	}
	return nil
}

func (s *FavoriteService) RemovePlanet(ctx context.Context, userID, planetID int64) error {
	if err := s.repos.Favorite.RemovePlanet(ctx, userID, planetID); err != nil {
		return sqlerr.HandleError(notFound(err, msgPlanetNotInFavorites))
	}
	return nil
}

// List returns favorites of every user, or of userID when it is non-nil.
func (s *FavoriteService) List(ctx context.Context, userID *int64) (*model.Favorites, error) {
	if userID != nil {
		if _, err := s.repos.User.GetByID(ctx, *userID); err != nil {
			return nil, sqlerr.HandleError(notFound(err, msgUserNotFound))
		}
	}

	people, err := s.repos.Favorite.ListPeople(ctx, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	planets, err := s.repos.Favorite.ListPlanets(ctx, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &model.Favorites{People: people, Planets: planets}, nil
}
