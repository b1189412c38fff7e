package service

import (
	"context"
	"errors"
	"strings"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/sqlerr"

	"golang.org/x/crypto/bcrypt"
)

const (
	msgUserNotFound     = "User not found!"
	msgEmailInUse       = "Email already in use!"
	msgUsernameInUse    = "Username already in use!"
	defaultPasswordCost = bcrypt.DefaultCost
)

type UserService struct {
	server *server.Server
	repos  *repository.Repositories

	passwordCost int
}

func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{
		server:       s,
		repos:        repos,
		passwordCost: defaultPasswordCost,
	}
}

// Create registers a user. Email and username must both be unused; the
// password is stored as a bcrypt hash. When background jobs are enabled
// a welcome email is queued after the row is committed.
func (s *UserService) Create(ctx context.Context, payload *model.CreateUserPayload) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errs.NewBadRequestError("Password is too long", true, nil, []errs.FieldError{{
			Field: "password",
			Error: "must not exceed 72 bytes",
		}}, nil)
	}
	if err != nil {
		return nil, errs.NewInternalServerError()
	}

	user := &model.User{
		Username: payload.Username,
		Email:    payload.Email,
		Password: string(hash),
		IsActive: true,
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	err = s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.User.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.NewConflictError(msgEmailInUse)
		}

		existing, err = tx.User.GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.NewConflictError(msgUsernameInUse)
		}

		_, err = tx.User.Create(ctx, user)
		return err
	})
	if err != nil {
		if conflict := userConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, sqlerr.HandleError(err)
	}

	if s.server.Job != nil {
		if err := s.server.Job.EnqueueWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			s.server.Logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// userConflict maps a unique violation that slipped past the lookups,
// such as a concurrent insert, to the same message the lookups produce.
func userConflict(err error) error {
	sqlErr := sqlerr.Convert(err)
	if sqlErr == nil || sqlErr.Code != sqlerr.UniqueViolation {
		return nil
	}

	if sqlErr.ColumnName == "username" || strings.Contains(sqlErr.ConstraintName, "username") {
		return errs.NewConflictError(msgUsernameInUse)
	}
	return errs.NewConflictError(msgEmailInUse)
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(msgUserNotFound, true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repos.User.GetByEmail(ctx, email)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if user == nil {
		return nil, errs.NewNotFoundError(msgUserNotFound, true, nil)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return users, nil
}

// Delete removes a user and, through the foreign keys, their favorites.
// It returns the deleted user.
func (s *UserService) Delete(ctx context.Context, id int64) (*model.User, error) {
	var user *model.User

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		var err error
		if user, err = tx.User.GetByID(ctx, id); err != nil {
			return err
		}
		return tx.User.Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(msgUserNotFound, true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return user, nil
}
