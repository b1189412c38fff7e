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

const msgPersonNotFound = "Person not found!"

type PersonService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewPersonService(s *server.Server, repos *repository.Repositories) *PersonService {
	return &PersonService{server: s, repos: repos}
}

func (s *PersonService) Create(ctx context.Context, payload *model.CreatePersonPayload) (*model.Person, error) {
	person := &model.Person{
		Name:   payload.Name,
		Height: *payload.Height,
		Mass:   *payload.Mass,
	}

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Person.GetByName(ctx, person.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.NewConflictError(fmt.Sprintf("%s already exists!", person.Name))
		}

		_, err = tx.Person.Create(ctx, person)
		return err
	})
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, errs.NewConflictError(fmt.Sprintf("%s already exists!", person.Name))
		}
		return nil, sqlerr.HandleError(err)
	}

	return person, nil
}

func (s *PersonService) Get(ctx context.Context, id int64) (*model.Person, error) {
	person, err := s.repos.Person.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(msgPersonNotFound, true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return person, nil
}

func (s *PersonService) List(ctx context.Context) ([]model.Person, error) {
	people, err := s.repos.Person.List(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return people, nil
}

func (s *PersonService) Delete(ctx context.Context, id int64) (*model.Person, error) {
	var person *model.Person

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		var err error
		if person, err = tx.Person.GetByID(ctx, id); err != nil {
			return err
		}
		return tx.Person.Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(msgPersonNotFound, true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return person, nil
}
